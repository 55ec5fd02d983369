// Package recolor rewrites annotation markup into display text: coordinate
// groups disappear and every grounded phrase becomes a colored HTML span.
package recolor

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ironsheep/groundviz/internal/palette"
)

var (
	groupPattern   = regexp.MustCompile(`\{[^{}]*\}`)
	integerPattern = regexp.MustCompile(`-?\d+`)
	phrasePattern  = regexp.MustCompile(`<p>(.*?)</p>`)
)

// Delimiter separates chained coordinate groups.
const Delimiter = "<delim>"

// Recolorize strips coordinate groups and delimiters from text and wraps each
// <p>phrase</p> in a span colored by the phrase's category in pal.
//
// A coordinate group is any brace pair holding exactly four signed integers,
// whatever separates them, the same groups the parser turns into boxes.
//
// Phrases are looked up with the leading article removed and case folded;
// unknown phrases get palette.DefaultTextColor. The phrase itself is kept as
// written and HTML-escaped. A nil pal uses the default palette.
func Recolorize(text string, pal *palette.Palette) string {
	if pal == nil {
		pal = palette.Default()
	}

	text = groupPattern.ReplaceAllStringFunc(text, func(g string) string {
		if len(integerPattern.FindAllString(g, -1)) == 4 {
			return ""
		}
		return g
	})
	text = strings.ReplaceAll(text, Delimiter, "")

	return phrasePattern.ReplaceAllStringFunc(text, func(m string) string {
		phrase := phrasePattern.FindStringSubmatch(m)[1]
		return Span(phrase, pal.TextColor(phrase))
	})
}

// Span returns phrase as an HTML span in color c.
func Span(phrase string, c palette.RGB) string {
	return fmt.Sprintf(`<span style="color:%s">%s</span>`, c.CSS(), html.EscapeString(phrase))
}

var (
	markdownEscaper   = strings.NewReplacer("<", `\<`, ">", `\>`)
	markdownUnescaper = strings.NewReplacer(`\<`, "<", `\>`, ">")
)

// EscapeMarkdown backslash-escapes angle brackets so a chat view renders the
// markup literally instead of as HTML.
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// UnescapeMarkdown reverses EscapeMarkdown.
func UnescapeMarkdown(text string) string {
	return markdownUnescaper.Replace(text)
}
