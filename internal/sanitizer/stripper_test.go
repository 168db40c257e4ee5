package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLStripper(t *testing.T) {
	s := NewHTMLStripper()

	assert.Equal(t, "Acme Systems", s.StripHTML("  <b>Acme</b> Systems "))
	assert.Equal(t, "", s.StripHTML(`<script>alert("x")</script>`))
	assert.Equal(t, "Plain", s.StripHTML("Plain"))

	var _ HTMLStripperer = s
}
