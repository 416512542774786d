package tui

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"onepage/internal/application"
	"onepage/internal/config"
	"onepage/internal/domain"
)

type memLocation struct {
	fragment string
}

func (m *memLocation) Fragment() string        { return m.fragment }
func (m *memLocation) CanReplace() bool        { return true }
func (m *memLocation) Replace(id string) error { m.fragment = id; return nil }
func (m *memLocation) Assign(id string) error  { m.fragment = id; return nil }

func newTestApp(t *testing.T, media []*domain.Media, ids ...string) (*App, *memLocation) {
	t.Helper()

	sections := make([]*domain.Section, len(ids))
	linkers := make([]*domain.Linker, len(ids))
	for i, id := range ids {
		body := make([]string, 8)
		for j := range body {
			body[j] = "body " + id
		}
		sections[i] = &domain.Section{ID: id, Title: id, Body: body}
		linkers[i] = &domain.Linker{TargetID: id, Label: id}
	}
	page, err := domain.NewPage(sections, linkers, media)
	if err != nil {
		t.Fatal(err)
	}

	loc := &memLocation{}
	sel := application.NewSelection(page, loc)
	app := NewApp(config.DefaultConfig(), page, sel, nil, loc, zerolog.Nop())
	return app, loc
}

func load(app *App, width, height int) {
	app.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

func TestApp_LoadSelectsFirstSection(t *testing.T) {
	app, loc := newTestApp(t, nil, "a", "b", "c")

	load(app, 120, 40)

	if got := app.sel.Current(); got != 0 {
		t.Fatalf("selection after load = %d, want 0", got)
	}
	if loc.fragment != "a" {
		t.Errorf("fragment = %q, want a", loc.fragment)
	}
	if app.watch != watchAttached {
		t.Error("scroll watch should be attached after load")
	}
}

func TestApp_KeydownNavigation(t *testing.T) {
	app, loc := newTestApp(t, nil, "a", "b", "c", "d")
	load(app, 120, 40)

	// Left at the first section is a no-op.
	app.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := app.sel.Current(); got != 0 {
		t.Fatalf("left at 0 moved selection to %d", got)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := app.sel.Current(); got != 1 {
		t.Fatalf("right from 0 = %d, want 1", got)
	}
	if loc.fragment != "b" {
		t.Errorf("fragment = %q, want b", loc.fragment)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyRight})
	app.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := app.sel.Current(); got != 3 {
		t.Fatalf("selection = %d, want 3", got)
	}

	// Right at the last section is a no-op.
	app.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := app.sel.Current(); got != 3 {
		t.Fatalf("right at last moved selection to %d", got)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := app.sel.Current(); got != 2 {
		t.Fatalf("left from 3 = %d, want 2", got)
	}
}

func TestApp_AnimationDetachesScrollWatch(t *testing.T) {
	app, _ := newTestApp(t, nil, "a", "b", "c")
	// Small viewport so the content actually scrolls as far as the
	// last section's top.
	load(app, 120, 10)

	cmd := app.activate(2)
	if cmd == nil {
		t.Fatal("activate should start the frame loop")
	}
	if app.watch != watchDetached {
		t.Error("watch should be detached during animation")
	}
	if !app.anim.Animating() {
		t.Fatal("animator should be animating")
	}

	// Drive frames until the animation terminates.
	for i := 0; i < 100 && app.anim.Animating(); i++ {
		app.Update(frameMsg{})
	}
	if app.anim.Animating() {
		t.Fatal("animation never terminated")
	}
	if app.watch != watchAttached {
		t.Error("watch should be re-attached after animation")
	}
	if app.vp.YOffset != app.tops[2] {
		t.Errorf("offset = %d, want %d", app.vp.YOffset, app.tops[2])
	}
}

func TestApp_ActivateDuringAnimationKeepsFlight(t *testing.T) {
	app, _ := newTestApp(t, nil, "a", "b", "c")
	load(app, 120, 40)

	if cmd := app.activate(1); cmd == nil {
		t.Fatal("first activate should animate")
	}
	target := app.target

	// A second activation selects but must not preempt the in-flight
	// animation.
	if cmd := app.activate(2); cmd != nil {
		t.Error("second activate should not start a new frame loop")
	}
	if app.target != target {
		t.Errorf("animation target changed to %d", app.target)
	}
	if got := app.sel.Current(); got != 2 {
		t.Errorf("selection = %d, want 2", got)
	}
}

func TestApp_ThinScreenDefersMedia(t *testing.T) {
	media := []*domain.Media{{Kind: domain.MediaImage, Source: "https://example.com/a.png"}}
	app, _ := newTestApp(t, media, "a", "b")

	load(app, 60, 40) // below the default thin-screen threshold of 80
	if app.mediaFired {
		t.Fatal("thin screen must not trigger media loads")
	}

	load(app, 120, 40)
	if !app.mediaFired {
		t.Fatal("wide resize should trigger media loads")
	}

	// Runs at most once with effect.
	app.mediaFired = true
	load(app, 140, 40)
	if !app.mediaFired {
		t.Fatal("flag lost")
	}
}

func TestApp_RailClickActivates(t *testing.T) {
	app, loc := newTestApp(t, nil, "a", "b", "c")
	load(app, 120, 40)

	app.Update(tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := app.sel.Current(); got != 1 {
		t.Fatalf("selection after click = %d, want 1", got)
	}
	if loc.fragment != "b" {
		t.Errorf("fragment = %q, want b", loc.fragment)
	}
}

func TestApp_ModifiedClickIgnored(t *testing.T) {
	app, _ := newTestApp(t, nil, "a", "b", "c")
	load(app, 120, 40)

	app.Update(tea.MouseMsg{X: 2, Y: 1, Ctrl: true, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := app.sel.Current(); got != 0 {
		t.Fatalf("modified click changed selection to %d", got)
	}
}

func TestApp_WheelGestureDetachesWatch(t *testing.T) {
	app, _ := newTestApp(t, nil, "a", "b", "c")
	load(app, 120, 40)

	app.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if app.watch != watchDetached {
		t.Fatal("wheel should detach the watch")
	}
	gen := app.wheelGen

	// A stale settle message from an earlier gesture is ignored.
	app.Update(wheelSettledMsg{gen: gen - 1})
	if app.watch != watchDetached {
		t.Fatal("stale settle re-attached the watch")
	}

	app.Update(wheelSettledMsg{gen: gen})
	if app.watch != watchAttached {
		t.Fatal("settle should re-attach the watch")
	}
}

func TestApp_DeferredPassSuppressedDuringAnimation(t *testing.T) {
	// A document tall enough that the resume animation outlives the
	// delayed secondary pass.
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = fmt.Sprintf("s%02d", i)
	}
	app, loc := newTestApp(t, nil, ids...)
	loc.fragment = "s19"

	load(app, 120, 10)
	if got := app.sel.Current(); got != 19 {
		t.Fatalf("selection after resume = %d, want 19", got)
	}
	if !app.anim.Animating() {
		t.Fatal("resume should animate toward the stored section")
	}

	// The secondary pass lands while the animation is still in flight;
	// it must not recompute the selection from the transient offset.
	app.Update(frameMsg{})
	app.Update(secondaryPassMsg{})
	if got := app.sel.Current(); got != 19 {
		t.Fatalf("mid-animation pass moved selection to %d", got)
	}
	if loc.fragment != "s19" {
		t.Fatalf("mid-animation pass rewrote fragment to %q", loc.fragment)
	}

	// So does a throttled relocate enqueued before the animation began.
	app.Update(relocateMsg{})
	if got := app.sel.Current(); got != 19 {
		t.Fatalf("mid-animation relocate moved selection to %d", got)
	}

	for i := 0; i < 100 && app.anim.Animating(); i++ {
		app.Update(frameMsg{})
	}
	if app.anim.Animating() {
		t.Fatal("animation never terminated")
	}
	if app.vp.YOffset != app.tops[19] {
		t.Errorf("offset = %d, want %d", app.vp.YOffset, app.tops[19])
	}
	if got := app.sel.Current(); got != 19 {
		t.Errorf("selection after landing = %d, want 19", got)
	}
	if loc.fragment != "s19" {
		t.Errorf("fragment after landing = %q, want s19", loc.fragment)
	}
	if app.watch != watchAttached {
		t.Error("watch should be re-attached after animation")
	}
}

func TestApp_RailTruncatesLabelsByRunes(t *testing.T) {
	long := strings.Repeat("é", 30)
	app, _ := newTestApp(t, nil, long, "b")
	load(app, 120, 40)

	rail := app.renderRail()
	if !utf8.ValidString(rail) {
		t.Fatal("rail output is not valid UTF-8")
	}
	if strings.Contains(rail, long) {
		t.Error("overlong label was not truncated")
	}
	if want := strings.Repeat("é", railWidth-2); !strings.Contains(rail, want) {
		t.Errorf("truncated label missing from rail %q", rail)
	}
}

func TestApp_ResumeAtStoredFragment(t *testing.T) {
	app, loc := newTestApp(t, nil, "a", "b", "c")
	loc.fragment = "c"

	load(app, 120, 40)

	if got := app.sel.Current(); got != 2 {
		t.Fatalf("selection after resume = %d, want 2", got)
	}
	if !app.anim.Animating() {
		t.Error("resume should animate toward the stored section")
	}
}
