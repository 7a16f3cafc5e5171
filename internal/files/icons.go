package files

import "strings"

// Icon keys.
const (
	IconText    = "text"
	IconPDF     = "pdf"
	IconImage   = "image"
	IconGeneric = "generic"
)

var iconsByExt = map[string]string{
	".txt":  IconText,
	".pdf":  IconPDF,
	".jpg":  IconImage,
	".jpeg": IconImage,
	".png":  IconImage,
	".bmp":  IconImage,
}

// IconKey maps an extension (with leading dot, any case) to an icon key.
// Unknown extensions map to IconGeneric.
func IconKey(ext string) string {
	if key, ok := iconsByExt[strings.ToLower(ext)]; ok {
		return key
	}
	return IconGeneric
}

// IconGlyph is a short textual stand-in for the icon, used by the list view.
func IconGlyph(key string) string {
	switch key {
	case IconText:
		return "TXT"
	case IconPDF:
		return "PDF"
	case IconImage:
		return "IMG"
	}
	return "   "
}
