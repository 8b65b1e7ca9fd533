package render

import (
	"html"
	"regexp"
	"strings"
)

// Transform is one step of the text-to-markup pipeline.
type Transform func(string) string

var (
	boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
	// escaped quotes and brackets end a URL; an escaped & inside a query does not
	urlRe = regexp.MustCompile(`https?://(?:[^\s<&]|&amp;)+`)
)

// Escape neutralizes markup in raw text. It runs before every other step so
// that user input can never inject tags.
func Escape(s string) string { return html.EscapeString(s) }

// Bold converts **text** spans to <strong>.
func Bold(s string) string { return boldRe.ReplaceAllString(s, "<strong>$1</strong>") }

// LineBreaks converts newlines to <br>.
func LineBreaks(s string) string { return strings.ReplaceAll(s, "\n", "<br>") }

// Linkify wraps bare URLs in anchors. Text already inside an anchor is left
// alone, so running it twice does not double-wrap.
func Linkify(s string) string {
	var b strings.Builder
	rest := s
	for {
		start := strings.Index(rest, "<a ")
		if start < 0 {
			b.WriteString(linkifyPlain(rest))
			return b.String()
		}
		end := strings.Index(rest[start:], "</a>")
		if end < 0 {
			b.WriteString(linkifyPlain(rest))
			return b.String()
		}
		end += start + len("</a>")
		b.WriteString(linkifyPlain(rest[:start]))
		b.WriteString(rest[start:end])
		rest = rest[end:]
	}
}

func linkifyPlain(s string) string {
	return urlRe.ReplaceAllString(s, `<a href="$0" target="_blank" rel="noopener">$0</a>`)
}

// Pipeline applies transforms in order.
func Pipeline(steps ...Transform) Transform {
	return func(s string) string {
		for _, step := range steps {
			s = step(s)
		}
		return s
	}
}

var (
	htmlPipeline     = Pipeline(Escape, Bold, LineBreaks, Linkify)
	telegramPipeline = Pipeline(Escape, boldTag("b"))
)

func boldTag(tag string) Transform {
	repl := "<" + tag + ">$1</" + tag + ">"
	return func(s string) string { return boldRe.ReplaceAllString(s, repl) }
}

// Format turns reply text into the widget's markup: escape, bold, line
// breaks, then links.
func Format(text string) string { return htmlPipeline(text) }

// TelegramHTML keeps newlines, which Telegram's HTML mode renders itself.
func TelegramHTML(text string) string {
	return telegramPipeline(text)
}
