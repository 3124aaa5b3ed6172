package application

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const (
	maxSummaryLength = 160
	staticPrefix     = "/static"
)

// SectionContent is a static section rendered from markdown.
type SectionContent struct {
	Title   string
	Summary string
	HTML    template.HTML
}

// relativeLinkTransformer points relative image sources at the static
// asset route and relative links at site sections.
type relativeLinkTransformer struct {
	prefix string
}

func (t *relativeLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Image:
			dest := string(v.Destination)
			if isRelativeLink(dest) {
				v.Destination = []byte(t.prefix + "/images/" + path.Base(dest))
			}
		case *ast.Link:
			dest := string(v.Destination)
			if isRelativeLink(dest) && !strings.HasPrefix(dest, "#") {
				name := strings.TrimSuffix(path.Base(dest), ".md")
				if domain.IsSection(name) {
					v.Destination = []byte("/?section=" + name)
				}
			}
		}
		return ast.WalkContinue, nil
	})
}

func isRelativeLink(dest string) bool {
	if strings.HasPrefix(dest, "//") {
		return false
	}
	if strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "./") || strings.HasPrefix(dest, "../") {
		return true
	}
	return !strings.Contains(dest, ":")
}

// MarkdownRenderer converts section markdown to HTML.
type MarkdownRenderer interface {
	Render(markdown []byte) (*SectionContent, error)
}

type MarkdownRendererImpl struct {
	renderer goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRendererImpl {
	renderer := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&relativeLinkTransformer{prefix: staticPrefix}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &MarkdownRendererImpl{renderer: renderer}
}

func (r *MarkdownRendererImpl) Render(markdown []byte) (*SectionContent, error) {
	var buf bytes.Buffer
	if err := r.renderer.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	return &SectionContent{
		Title:   extractTitle(markdown),
		Summary: extractSummary(markdown),
		// goldmark escapes raw HTML without WithUnsafe, so the output is trusted
		HTML: template.HTML(buf.String()),
	}, nil
}

// LoadSections renders `<section>.md` from fsys for every section that has
// one. The news and contact sections are generated, so files for them are
// ignored.
func LoadSections(fsys fs.FS, renderer MarkdownRenderer) (map[string]*SectionContent, error) {
	sections := make(map[string]*SectionContent)
	for _, name := range domain.Sections {
		if name == domain.SectionNews || name == domain.SectionContact {
			continue
		}

		raw, err := fs.ReadFile(fsys, name+".md")
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("reading section %s: %w", name, err)
		}

		content, err := renderer.Render(raw)
		if err != nil {
			return nil, fmt.Errorf("rendering section %s: %w", name, err)
		}
		sections[name] = content
	}
	return sections, nil
}

func extractTitle(markdown []byte) string {
	firstLine, _, _ := strings.Cut(string(markdown), "\n")
	title, found := strings.CutPrefix(strings.TrimSpace(firstLine), "# ")
	if !found {
		return ""
	}
	return strings.TrimSpace(title)
}

func extractSummary(markdown []byte) string {
	var paragraph []string

	for _, line := range strings.Split(string(markdown), "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			if len(paragraph) > 0 {
				break
			}
			continue
		}

		if strings.HasPrefix(trimmed, "```") ||
			strings.HasPrefix(trimmed, "---") ||
			strings.HasPrefix(trimmed, "- ") ||
			strings.HasPrefix(trimmed, "* ") ||
			strings.HasPrefix(trimmed, "|") ||
			strings.HasPrefix(trimmed, "![") {
			if len(paragraph) > 0 {
				break
			}
			continue
		}

		paragraph = append(paragraph, trimmed)
	}

	summary := []rune(strings.Join(paragraph, " "))
	if len(summary) <= maxSummaryLength {
		return string(summary)
	}

	cut := string(summary[:maxSummaryLength])
	if lastSpace := strings.LastIndexAny(cut, " \t"); lastSpace > 0 {
		cut = cut[:lastSpace]
	}
	return cut + "..."
}
