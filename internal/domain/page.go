package domain

import (
	"errors"
	"fmt"
)

// ErrCountMismatch reports a document whose navigation list and section
// list disagree in length. Past the parser this invariant is assumed.
var ErrCountMismatch = errors.New("linker/section count mismatch")

// MediaKind distinguishes fetched media from timed-reveal placeholders.
type MediaKind int

const (
	MediaImage MediaKind = iota
	MediaEmoji
)

// MediaState is the visual lifecycle of a media element.
type MediaState int

const (
	MediaPending MediaState = iota
	MediaLoading
	MediaLoaded
)

func (s MediaState) String() string {
	switch s {
	case MediaLoading:
		return "loading"
	case MediaLoaded:
		return "loaded"
	default:
		return "pending"
	}
}

// Section is a scrollable content block with a stable identifier,
// tracked 1:1 with a navigation entry.
type Section struct {
	Index    int
	ID       string
	Title    string
	Body     []string
	Selected bool
}

// Linker is the navigation-list entry corresponding to a section.
type Linker struct {
	Index    int
	TargetID string
	Label    string
	Selected bool
}

// Media is an element whose source is deferred until explicitly loaded.
// Source holds the deferred URL; Live is rebound to the cached data URI
// once loading completes. Emoji placeholders carry no Source.
type Media struct {
	Kind    MediaKind
	Source  string
	Live    string
	Alt     string
	State   MediaState
	Section int
}

// Page is the parsed single-page document: N linkers and N sections in
// matching order, plus any deferred media elements.
type Page struct {
	Sections []*Section
	Linkers  []*Linker
	Media    []*Media

	anchors map[string]*Section
}

// NewPage assembles a page and verifies the linker/section pairing
// invariant. Sections are indexed in document order.
func NewPage(sections []*Section, linkers []*Linker, media []*Media) (*Page, error) {
	if len(sections) != len(linkers) {
		return nil, fmt.Errorf("%w: %d linkers, %d sections", ErrCountMismatch, len(linkers), len(sections))
	}
	anchors := make(map[string]*Section, len(sections))
	for i, s := range sections {
		s.Index = i
		linkers[i].Index = i
		anchors[s.ID] = s
	}
	return &Page{Sections: sections, Linkers: linkers, Media: media, anchors: anchors}, nil
}

// Len returns the number of sections (equal to the number of linkers).
func (p *Page) Len() int { return len(p.Sections) }

// Anchor resolves a section identifier. Returns nil for unknown or
// currently masked identifiers.
func (p *Page) Anchor(id string) *Section {
	return p.anchors[id]
}

// MaskAnchor temporarily removes id from the anchor index so fragment
// watchers cannot resolve it mid-write. The returned restore function
// re-registers it.
func (p *Page) MaskAnchor(id string) func() {
	s, ok := p.anchors[id]
	if !ok {
		return func() {}
	}
	delete(p.anchors, id)
	return func() { p.anchors[id] = s }
}
