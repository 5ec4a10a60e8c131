package web

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizerStrict = bluemonday.StrictPolicy()
var sanitizerUGC = bluemonday.UGCPolicy()

// safeTitle strips any markup from a title before it reaches a page.
func safeTitle(title string) string {
	return sanitizerStrict.Sanitize(title)
}

// safeMarkdown renders post content to HTML and sanitizes the result. The
// editor's markup is treated as untrusted user content.
func safeMarkdown(content string) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(content))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	return sanitizerUGC.SanitizeBytes(markdown.Render(doc, renderer))
}
