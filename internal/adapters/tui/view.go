package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"onepage/internal/adapters/tui/styles"
	"onepage/internal/domain"
)

// layout rebuilds the viewport content and the live section top
// offsets. Tops are recomputed on every pass rather than cached across
// layout changes.
func (a *App) layout() {
	if !a.ready {
		return
	}

	var lines []string
	tops := make([]int, 0, a.page.Len())

	for _, s := range a.page.Sections {
		tops = append(tops, len(lines))

		title := styles.SectionTitle
		if s.Selected {
			title = styles.SectionSelected
		}
		lines = append(lines, title.Render(s.Title))

		for _, body := range s.Body {
			lines = append(lines, styles.Body.Render(body))
		}
		for _, m := range a.page.Media {
			if m.Section == s.Index {
				lines = append(lines, renderMedia(m))
			}
		}
		lines = append(lines, "")
	}

	a.tops = tops
	a.vp.SetContent(strings.Join(lines, "\n"))
}

// renderMedia draws a media element in its current transition state.
func renderMedia(m *domain.Media) string {
	if m.Kind == domain.MediaEmoji {
		if m.State == domain.MediaLoaded {
			return m.Alt
		}
		return styles.MediaPending.Render("·")
	}

	label := m.Alt
	if label == "" {
		label = m.Source
	}
	switch m.State {
	case domain.MediaLoading:
		return styles.MediaLoading.Render("◌ " + label)
	case domain.MediaLoaded:
		return styles.MediaLoaded.Render(fmt.Sprintf("▪ %s [%d bytes cached]", label, len(m.Live)))
	default:
		return styles.MediaPending.Render("▫ " + label)
	}
}

// View renders the navigation rail, the content viewport and the
// status bar.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Rail.Render(a.renderRail()),
		a.vp.View(),
	)

	return styles.App.Render(main + "\n" + a.renderStatus() + "\n" + a.renderHelpLine())
}

// renderRail draws the linker list; exactly one entry carries the
// selected marker once the first pass ran.
func (a *App) renderRail() string {
	var b strings.Builder
	for i, l := range a.page.Linkers {
		label := l.Label
		// Truncate by runes so multi-byte labels stay valid UTF-8.
		if r := []rune(label); len(r) > railWidth-2 {
			label = string(r[:railWidth-2])
		}
		if l.Selected {
			b.WriteString(styles.LinkerSelected.Render(label))
		} else {
			b.WriteString(styles.Linker.Render(label))
		}
		if i < len(a.page.Linkers)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a *App) renderStatus() string {
	fragment := ""
	if cur := a.sel.Current(); cur >= 0 {
		fragment = "#" + a.page.Sections[cur].ID
	}

	loaded := 0
	for _, m := range a.page.Media {
		if m.State == domain.MediaLoaded {
			loaded++
		}
	}

	parts := []string{styles.StatusFragment.Render(fragment)}
	if len(a.page.Media) > 0 {
		parts = append(parts, styles.StatusText.Render(fmt.Sprintf("media %d/%d", loaded, len(a.page.Media))))
	}
	if a.status != "" {
		parts = append(parts, styles.StatusText.Render(a.status))
	}
	return styles.StatusBar.Width(a.width - 2).Render(strings.Join(parts, " "))
}

func (a *App) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"←/→", "sections"},
		{"↑/↓", "scroll"},
		{"y", "yank"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}
	return strings.Join(parts, "  ")
}
