package application

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// titlePolicy strips every tag; WordPress titles arrive as rendered HTML.
var titlePolicy = bluemonday.StrictPolicy()

// plainTitle turns a rendered title into display text.
func plainTitle(rendered string) string {
	text := titlePolicy.Sanitize(rendered)
	// StrictPolicy leaves entities escaped; the template escapes again on output
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
