package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/justyntemme/foldernav/internal/app"
	"github.com/justyntemme/foldernav/internal/config"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	path := flag.String("path", "", "Folder to open on start")
	configPath := flag.String("config", "", "Config file (default ~/.config/foldernav/config.json)")
	generate := flag.Bool("generate-config", false, "Write a default config, backing up the existing one, and exit")
	flag.Parse()

	if *generate {
		backup, err := config.GenerateConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate config: %v\n", err)
			os.Exit(1)
		}
		if backup != "" {
			fmt.Printf("Backed up existing config to %s\n", backup)
		}
		return
	}

	// Handle OS-specific console visibility
	manageConsole(*debug)

	app.Main(app.Options{
		Debug:      *debug,
		StartPath:  *path,
		ConfigPath: *configPath,
	})
}
