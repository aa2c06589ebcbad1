package extract

import (
	"mime"
	"strings"
)

// kind is the broad family of a media type.
type kind int

const (
	kindText kind = iota
	kindJSON
	kindHTML
	kindXML
	kindYAML
)

func classify(contentType string) kind {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	switch {
	case strings.Contains(mediaType, "json"):
		return kindJSON
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return kindHTML
	case strings.Contains(mediaType, "xml"):
		return kindXML
	case strings.Contains(mediaType, "yaml"):
		return kindYAML
	default:
		return kindText
	}
}

// DetectMode returns the default extraction mode for a content type.
// Archived pages without a recognised type fall back to regex.
func DetectMode(contentType string) string {
	switch classify(contentType) {
	case kindJSON, kindYAML:
		return ModeJQ
	case kindHTML:
		return ModeCSS
	case kindXML:
		return ModeXPath
	default:
		return ModeRegex
	}
}
