package processor

import (
	"strings"

	"imageproxy/internal/options"
)

// NegotiateFormat picks the output encoding. An explicit non-auto request
// wins verbatim; otherwise clients advertising webp support in their Accept
// header get webp, and everyone else gets jpeg. PNG is never auto-selected,
// only an explicit f_png produces it.
func NegotiateFormat(requested, acceptHeader string) string {
	if requested != "" && requested != options.FormatAuto {
		return requested
	}

	if strings.Contains(acceptHeader, "image/webp") {
		return options.FormatWebP
	}

	return options.FormatJPEG
}
