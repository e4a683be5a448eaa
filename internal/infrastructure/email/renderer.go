package email

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// bodyRenderer turns the markdown bodies built from outbox payloads into the
// HTML alternative of an email.
type bodyRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newBodyRenderer() *bodyRenderer {
	// Payloads carry customer supplied names, so raw HTML never reaches the
	// output even before sanitizing.
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	policy := bluemonday.UGCPolicy()
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	return &bodyRenderer{md: md, policy: policy}
}

func (r *bodyRenderer) render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return "<html><body>" + r.policy.Sanitize(buf.String()) + "</body></html>", nil
}
