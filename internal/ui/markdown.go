package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const helpMargin = 2

// RenderMarkdown renders a help topic for the terminal, wrapped to width.
// The result ends with exactly one newline.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(helpMarkdownStyle()),
		glamour.WithWordWrap(width-helpMargin),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// helpMarkdownStyle is glamour's dark style with the session accent applied
// to headings and inline code, and flat headings with no background.
func helpMarkdownStyle() ansi.StyleConfig {
	style := styles.DarkStyleConfig

	var accent *string
	if color, ok := AccentColor(); ok {
		accent = &color
	}
	bold := true
	margin := uint(helpMargin)

	style.Document.Margin = &margin
	style.Heading = ansi.StyleBlock{
		StylePrimitive: ansi.StylePrimitive{BlockSuffix: "\n", Color: accent, Bold: &bold},
	}
	style.H1 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# "}}
	style.H2 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}}
	style.H3 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "### "}}
	style.Code = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: accent}}
	return style
}

// PlainMarkdown strips markdown syntax for output that is not a terminal:
// headings and paragraphs become plain lines, list items keep a "- " marker
// and code blocks stay indented.
func PlainMarkdown(content string) string {
	src := []byte(content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.List:
			if !entering {
				b.WriteString("\n")
				if n.Kind() != ast.KindList {
					b.WriteString("\n")
				}
			}
		case *ast.ListItem:
			if entering {
				b.WriteString("- ")
			} else if !strings.HasSuffix(b.String(), "\n") {
				b.WriteString("\n")
			}
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if !entering {
				return ast.WalkContinue, nil
			}
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.WriteString("    ")
				b.Write(seg.Value(src))
			}
			b.WriteString("\n")
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				b.Write(n.Segment.Value(src))
				if n.SoftLineBreak() || n.HardLineBreak() {
					b.WriteString("\n")
				}
			}
		case *ast.String:
			if entering {
				b.Write(n.Value)
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String()) + "\n"
}
