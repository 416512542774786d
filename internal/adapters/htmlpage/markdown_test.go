package htmlpage

import (
	"strings"
	"testing"

	"onepage/internal/domain"
)

const sampleMarkdown = `# Intro

Hello there.

![portrait](https://example.com/a.png)

# Work

First thing.

Second thing.
`

func TestParseMarkdown(t *testing.T) {
	p, err := ParseMarkdown(strings.NewReader(sampleMarkdown))
	if err != nil {
		t.Fatal(err)
	}

	if p.Len() != 2 {
		t.Fatalf("sections = %d, want 2", p.Len())
	}

	// Linkers are synthesized from the headings, so the pairing
	// invariant holds by construction.
	if len(p.Linkers) != 2 {
		t.Fatalf("linkers = %d, want 2", len(p.Linkers))
	}
	if p.Sections[0].ID != "intro" || p.Sections[1].ID != "work" {
		t.Errorf("auto heading ids = %q, %q", p.Sections[0].ID, p.Sections[1].ID)
	}
	if p.Linkers[0].TargetID != "intro" {
		t.Errorf("linker target = %q", p.Linkers[0].TargetID)
	}
	if p.Sections[0].Title != "Intro" {
		t.Errorf("title = %q", p.Sections[0].Title)
	}

	if len(p.Sections[1].Body) != 2 {
		t.Errorf("work body = %q", p.Sections[1].Body)
	}
}

func TestParseMarkdown_Media(t *testing.T) {
	p, err := ParseMarkdown(strings.NewReader(sampleMarkdown))
	if err != nil {
		t.Fatal(err)
	}

	if len(p.Media) != 1 {
		t.Fatalf("media = %d, want 1", len(p.Media))
	}
	m := p.Media[0]
	if m.Kind != domain.MediaImage {
		t.Error("markdown image should be deferred media")
	}
	if m.Source != "https://example.com/a.png" {
		t.Errorf("source = %q", m.Source)
	}
	if m.Section != 0 {
		t.Errorf("image attributed to section %d", m.Section)
	}
}
