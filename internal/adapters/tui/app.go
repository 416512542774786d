package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"onepage/internal/application"
	"onepage/internal/config"
	"onepage/internal/domain"
	"onepage/internal/ports"
)

// watchState tracks whether scroll-driven selection is active. The
// animator detaches the watch for its duration so its own scrolling
// never re-enters selection logic; wheel gestures detach it to avoid
// thrash during momentum scrolling.
type watchState int

const (
	watchAttached watchState = iota
	watchDetached
)

// railWidth is the fixed width of the navigation rail.
const railWidth = 24

// App is the main TUI model. It wires terminal lifecycle and input
// events to the locator, the selection controller, the animator and
// the media loader.
type App struct {
	cfg    *config.Config
	page   *domain.Page
	sel    *application.Selection
	anim   *application.Animator
	loader *application.Loader
	loc    ports.Location
	log    zerolog.Logger

	vp     viewport.Model
	ready  bool
	width  int
	height int

	tops       []int
	watch      watchState
	target     int
	mediaFired bool
	wheelGen   int

	throttle   *application.Throttle
	relocateCh chan struct{}
	mediaCh    chan struct{}

	status string
}

// NewApp assembles the viewer over a parsed page.
func NewApp(cfg *config.Config, page *domain.Page, sel *application.Selection, loader *application.Loader, loc ports.Location, log zerolog.Logger) *App {
	a := &App{
		cfg:    cfg,
		page:   page,
		sel:    sel,
		anim:   application.NewAnimator(cfg.StepCap),
		loader: loader,
		loc:    loc,
		log:    log,
		watch:  watchAttached,

		relocateCh: make(chan struct{}, 1),
		mediaCh:    make(chan struct{}, 1),
	}
	a.throttle = application.NewThrottle(func() {
		select {
		case a.relocateCh <- struct{}{}:
		default:
		}
	})
	if loader != nil {
		loader.Notify(func() {
			select {
			case a.mediaCh <- struct{}{}:
			default:
			}
		})
	}
	return a
}

type (
	relocateMsg      struct{}
	secondaryPassMsg struct{}
	frameMsg         struct{}
	mediaChangedMsg  struct{}
	mediaStartMsg    struct{ index int }
	mediaDoneMsg     struct {
		index int
		err   error
	}
	wheelSettledMsg struct{ gen int }
)

// Init registers the channel listeners; everything else waits for the
// first window size report, which doubles as the load event.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.listenRelocate(), a.listenMedia())
}

func (a *App) listenRelocate() tea.Cmd {
	return func() tea.Msg {
		<-a.relocateCh
		return relocateMsg{}
	}
}

func (a *App) listenMedia() tea.Cmd {
	return func() tea.Msg {
		<-a.mediaCh
		return mediaChangedMsg{}
	}
}

func (a *App) frame() tea.Cmd {
	return tea.Tick(time.Duration(a.cfg.FrameMS)*time.Millisecond, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

// Update handles messages for the viewer.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.onResize(msg)

	case tea.KeyMsg:
		return a.onKey(msg)

	case tea.MouseMsg:
		return a.onMouse(msg)

	case relocateMsg:
		a.relocatePass()
		return a, a.listenRelocate()

	case secondaryPassMsg:
		// Corrects for layout shifts shortly after load.
		a.layout()
		a.relocatePass()
		return a, nil

	case frameMsg:
		return a.onFrame()

	case mediaChangedMsg:
		a.layout()
		return a, a.listenMedia()

	case mediaStartMsg:
		return a, a.loadMedia(msg.index)

	case mediaDoneMsg:
		if msg.err != nil {
			a.status = fmt.Sprintf("media %d failed", msg.index)
		}
		a.layout()
		return a, nil

	case wheelSettledMsg:
		if msg.gen != a.wheelGen {
			return a, nil
		}
		if !a.anim.Animating() {
			a.watch = watchAttached
			a.throttle.Call()
		}
		return a, nil
	}

	return a, nil
}

// onResize handles the first size report as the load event and every
// later one as a resize.
func (a *App) onResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height

	vpWidth := msg.Width - railWidth - 3
	vpHeight := msg.Height - 3
	if vpWidth < 1 {
		vpWidth = 1
	}
	if vpHeight < 1 {
		vpHeight = 1
	}

	first := !a.ready
	if first {
		a.ready = true
		a.vp = viewport.New(vpWidth, vpHeight)
	} else {
		a.vp.Width = vpWidth
		a.vp.Height = vpHeight
	}
	a.layout()

	var cmds []tea.Cmd
	if first {
		// Read the stored fragment before the first selection pass
		// overwrites it.
		frag := a.loc.Fragment()
		a.relocatePass()
		cmds = append(cmds, tea.Tick(time.Duration(a.cfg.RevealDelayMS)*time.Millisecond, func(time.Time) tea.Msg {
			return secondaryPassMsg{}
		}))
		// Resume at the stored fragment, animated.
		if frag != "" {
			if s := a.page.Anchor(frag); s != nil && s.Index != a.sel.Current() {
				cmds = append(cmds, a.activate(s.Index))
			}
		}
	}

	// Thin screens defer media; the load fires at most once with effect.
	if !a.mediaFired && a.width >= a.cfg.ThinWidth {
		a.mediaFired = true
		cmds = append(cmds, a.staggeredLoads()...)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, Keys.Prev):
		return a, a.stepSelection(-1)

	case key.Matches(msg, Keys.Next):
		return a, a.stepSelection(1)

	case key.Matches(msg, Keys.Up):
		a.vp.LineUp(1)
		a.scrolled()
		return a, nil

	case key.Matches(msg, Keys.Down):
		a.vp.LineDown(1)
		a.scrolled()
		return a, nil

	case key.Matches(msg, Keys.PageUp):
		a.vp.ViewUp()
		a.scrolled()
		return a, nil

	case key.Matches(msg, Keys.PageDown):
		a.vp.ViewDown()
		a.scrolled()
		return a, nil

	case key.Matches(msg, Keys.Yank):
		return a, a.yank()
	}

	// Unrecognized and modifier-carrying keys fall through untouched.
	return a, nil
}

func (a *App) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if a.anim.Animating() {
			return a, nil
		}
		if msg.Button == tea.MouseButtonWheelUp {
			a.vp.LineUp(3)
		} else {
			a.vp.LineDown(3)
		}
		// Hold relocation until the wheel settles; momentum scrolling
		// would otherwise thrash the selection.
		a.watch = watchDetached
		a.wheelGen++
		gen := a.wheelGen
		return a, tea.Tick(150*time.Millisecond, func(time.Time) tea.Msg {
			return wheelSettledMsg{gen: gen}
		})

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		// "Open in new context" modifiers keep their default meaning.
		if msg.Ctrl || msg.Shift {
			return a, nil
		}
		if msg.X < railWidth && msg.Y < a.page.Len() {
			return a, a.activate(msg.Y)
		}
	}
	return a, nil
}

// onFrame advances the scroll animation by one step.
func (a *App) onFrame() (tea.Model, tea.Cmd) {
	if !a.anim.Animating() || a.target >= len(a.tops) {
		return a, nil
	}
	delta, done := a.anim.Step(a.vp.YOffset, a.tops[a.target])
	if done {
		a.watch = watchAttached
		return a, nil
	}
	a.vp.SetYOffset(a.vp.YOffset + delta)
	return a, a.frame()
}

// stepSelection moves the selection by delta sections; out-of-bounds
// moves are ignored.
func (a *App) stepSelection(delta int) tea.Cmd {
	cur := a.sel.Current()
	if cur == application.Unset {
		return nil
	}
	next := cur + delta
	if next < 0 || next >= a.page.Len() {
		return nil
	}
	return a.activate(next)
}

// activate selects a section, mirrors its id into the fragment and
// starts the animated scroll toward it. A scroll already in flight is
// left alone.
func (a *App) activate(index int) tea.Cmd {
	if err := a.sel.Select(index); err != nil {
		a.log.Error().Err(err).Int("index", index).Msg("select failed")
		return nil
	}
	if err := a.sel.SetFragment(a.page.Sections[index].ID); err != nil {
		a.log.Error().Err(err).Msg("fragment update failed")
	}
	a.layout()
	if !a.anim.Start() {
		return nil
	}
	a.watch = watchDetached
	a.target = index
	return a.frame()
}

// scrolled requests a throttled relocation pass after any user scroll.
func (a *App) scrolled() {
	if a.watch == watchAttached {
		a.throttle.Call()
	}
}

// relocatePass recomputes the active section from the live offset and
// applies it when it changed. Passes scheduled before an animation
// started are dropped here: the animator owns the selection until it
// lands, and a mid-flight offset must not overwrite it.
func (a *App) relocatePass() {
	if !a.ready || a.page.Len() == 0 {
		return
	}
	if a.anim.Animating() || a.watch == watchDetached {
		return
	}
	index := domain.Locate(a.tops, a.vp.YOffset, a.vp.Height/2)
	if index == a.sel.Current() {
		return
	}
	if err := a.sel.Select(index); err != nil {
		a.log.Error().Err(err).Int("index", index).Msg("select failed")
		return
	}
	if err := a.sel.SetFragment(a.page.Sections[index].ID); err != nil {
		a.log.Error().Err(err).Msg("fragment update failed")
	}
	a.layout()
}

// staggeredLoads schedules one load per media element at fixed
// increasing offsets so network and storage are not saturated at once.
func (a *App) staggeredLoads() []tea.Cmd {
	stagger := time.Duration(a.cfg.StaggerMS) * time.Millisecond
	cmds := make([]tea.Cmd, 0, len(a.page.Media))
	for i := range a.page.Media {
		index := i
		cmds = append(cmds, tea.Tick(time.Duration(i+1)*stagger, func(time.Time) tea.Msg {
			return mediaStartMsg{index: index}
		}))
	}
	return cmds
}

func (a *App) loadMedia(index int) tea.Cmd {
	if a.loader == nil || index >= len(a.page.Media) {
		return nil
	}
	m := a.page.Media[index]
	timeout := time.Duration(a.cfg.FetchTimeoutMS) * time.Millisecond
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return mediaDoneMsg{index: index, err: a.loader.Load(ctx, m)}
	}
}

func (a *App) yank() tea.Cmd {
	cur := a.sel.Current()
	if cur == application.Unset {
		return nil
	}
	anchor := "#" + a.page.Sections[cur].ID
	if err := clipboard.WriteAll(anchor); err != nil {
		a.status = "clipboard unavailable"
		return nil
	}
	a.status = "yanked " + anchor
	return nil
}
