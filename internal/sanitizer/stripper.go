package sanitizer

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// HTMLStripperer removes markup from free text before it is stored.
type HTMLStripperer interface {
	StripHTML(s string) string
}

type HTMLStripper struct {
	bm *bluemonday.Policy
}

// NewHTMLStripper returns a stripper backed by a strict bluemonday policy.
func NewHTMLStripper() *HTMLStripper {
	return &HTMLStripper{
		bm: bluemonday.StrictPolicy(),
	}
}

// StripHTML removes all tags and trims surrounding whitespace.
func (hs *HTMLStripper) StripHTML(s string) string {
	return strings.TrimSpace(hs.bm.Sanitize(s))
}
