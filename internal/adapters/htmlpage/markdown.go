package htmlpage

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"onepage/internal/domain"
)

// md renders Markdown with auto heading ids so every section gets a
// stable fragment identifier.
var md = goldmark.New(
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// ParseMarkdown renders a Markdown document to HTML and splits it into
// sections at top-level headings. The navigation list is synthesized
// from the headings, so linkers and sections match by construction.
func ParseMarkdown(r io.Reader) (*domain.Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading markdown: %w", err)
	}

	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("parsing rendered markdown: %w", err)
	}

	var sections []*domain.Section
	var linkers []*domain.Linker
	var media []*domain.Media

	doc.Find("h1,h2").Each(func(i int, h *goquery.Selection) {
		id, _ := h.Attr("id")
		title := strings.TrimSpace(h.Text())

		sec := &domain.Section{ID: id, Title: title}
		for sib := h.Next(); sib.Length() > 0 && !sib.Is("h1,h2"); sib = sib.Next() {
			for _, line := range strings.Split(sib.Text(), "\n") {
				if s := strings.TrimSpace(line); s != "" {
					sec.Body = append(sec.Body, s)
				}
			}
			sib.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
				src, _ := img.Attr("src")
				alt, _ := img.Attr("alt")
				media = append(media, &domain.Media{
					Kind:    domain.MediaImage,
					Source:  src,
					Alt:     alt,
					Section: i,
				})
			})
		}
		sections = append(sections, sec)
		linkers = append(linkers, &domain.Linker{TargetID: id, Label: title})
	})

	return domain.NewPage(sections, linkers, media)
}
