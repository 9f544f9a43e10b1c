package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderMarkdown turns journal markdown into HTML. Raw HTML in the source
// is skipped.
func renderMarkdown(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(src))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})
	return template.HTML(markdown.Render(doc, renderer))
}

// excerpt is the first lines of an entry rendered as markdown
func excerpt(src string, maxRunes int) template.HTML {
	runes := []rune(src)
	if len(runes) > maxRunes {
		src = string(runes[:maxRunes]) + "…"
	}
	return renderMarkdown(src)
}
