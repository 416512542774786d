package htmlpage

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"onepage/internal/domain"
)

// Parse reads a single-page HTML document into a domain.Page.
//
// Document contract: a <nav> holding N anchors with #fragment hrefs, N
// <section id=...> elements in matching order, and any number of media
// elements: <img data-src=...> for deferred images, elements carrying
// the "emoji" class for placeholders.
func Parse(r io.Reader) (*domain.Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	var linkers []*domain.Linker
	doc.Find("nav a[href^='#']").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		linkers = append(linkers, &domain.Linker{
			TargetID: strings.TrimPrefix(href, "#"),
			Label:    strings.TrimSpace(a.Text()),
		})
	})

	var sections []*domain.Section
	var media []*domain.Media
	doc.Find("section[id]").Each(func(i int, sec *goquery.Selection) {
		id, _ := sec.Attr("id")
		title := strings.TrimSpace(sec.Find("h1,h2,h3").First().Text())
		if title == "" {
			title = id
		}
		sections = append(sections, &domain.Section{
			ID:    id,
			Title: title,
			Body:  bodyLines(sec),
		})

		sec.Find("img[data-src]").Each(func(_ int, img *goquery.Selection) {
			src, _ := img.Attr("data-src")
			alt, _ := img.Attr("alt")
			media = append(media, &domain.Media{
				Kind:    domain.MediaImage,
				Source:  src,
				Alt:     alt,
				Section: i,
			})
		})
		sec.Find(".emoji").Each(func(_ int, em *goquery.Selection) {
			media = append(media, &domain.Media{
				Kind:    domain.MediaEmoji,
				Alt:     strings.TrimSpace(em.Text()),
				Section: i,
			})
		})
	})

	return domain.NewPage(sections, linkers, media)
}

// bodyLines flattens a section's textual content into trimmed,
// non-empty lines, headings excluded (the title is rendered separately).
func bodyLines(sec *goquery.Selection) []string {
	var lines []string
	sec.Find("p,li,blockquote,pre").Each(func(_ int, el *goquery.Selection) {
		for _, line := range strings.Split(el.Text(), "\n") {
			if s := strings.TrimSpace(line); s != "" {
				lines = append(lines, s)
			}
		}
	})
	return lines
}
