package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	tuiactions "github.com/glabrego/relwin/internal/tui/actions"
	tuiplatform "github.com/glabrego/relwin/internal/tui/platform"
	tuirows "github.com/glabrego/relwin/internal/tui/rows"
	tuistate "github.com/glabrego/relwin/internal/tui/state"
	tuitheme "github.com/glabrego/relwin/internal/tui/theme"
	tuiview "github.com/glabrego/relwin/internal/tui/view"

	"github.com/glabrego/relwin/internal/release"
	"github.com/glabrego/relwin/internal/window"
)

type Service = tuiactions.Service

type Preferences struct {
	RelativeTime bool
	ShowNumbers  bool
}

// Model browses the release catalog through a window controller: only the
// releases around the current one are listed, with "more" rows that reveal
// the rest.
type Model struct {
	service Service
	list    *tuirows.List
	ctrl    *window.Controller
	items   []tuiview.Item
	cursor  int

	relativeTime bool
	showNumbers  bool
	showHelp     bool
	width        int
	height       int
	loading      bool
	status       string
	statusID     int
	err          error

	keys              keyMap
	theme             tuitheme.Theme
	openURLFn         func(string) error
	copyURLFn         func(string) error
	nowFn             func() time.Time
	savePreferencesFn func(Preferences) error
}

func NewModel(service Service, releases []release.Release) Model {
	m := Model{
		service:   service,
		keys:      defaultKeyMap(),
		theme:     tuitheme.Default(),
		openURLFn: tuiplatform.OpenURLInBrowser,
		copyURLFn: tuiplatform.CopyURLToClipboard,
		nowFn:     time.Now,
	}
	m.setReleases(releases)
	return m
}

func (m *Model) ApplyPreferences(prefs Preferences) {
	m.relativeTime = prefs.RelativeTime
	m.showNumbers = prefs.ShowNumbers
}

func (m *Model) SetPreferencesSaver(saveFn func(Preferences) error) {
	m.savePreferencesFn = saveFn
}

func (m Model) preferences() Preferences {
	return Preferences{RelativeTime: m.relativeTime, ShowNumbers: m.showNumbers}
}

func (m Model) persistPreferencesCmd() tea.Cmd {
	if m.savePreferencesFn == nil {
		return nil
	}
	save, prefs := m.savePreferencesFn, m.preferences()
	return tuiactions.PersistPreferencesCmd(func() error { return save(prefs) })
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tuiactions.ReloadCmd(m.service, "init")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tuiactions.ReloadSuccessMsg:
		m.loading = false
		m.err = nil
		m.setReleases(msg.Releases)
		if msg.Source != "init" {
			return m.setStatus(fmt.Sprintf("Loaded %d releases", len(msg.Releases)), 3*time.Second)
		}
		return m, nil
	case tuiactions.ReloadErrorMsg:
		m.loading = false
		m.status = ""
		m.err = msg.Err
		return m, nil
	case tuiactions.SetCurrentSuccessMsg:
		m.loading = false
		m.err = nil
		m.setReleases(msg.Releases)
		return m.setStatus(msg.Status, 3*time.Second)
	case tuiactions.SetCurrentErrorMsg:
		m.loading = false
		m.status = ""
		m.err = msg.Err
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		m.err = nil
		return m.setStatus(msg.Status, 3*time.Second)
	case tuiactions.OpenURLErrorMsg:
		m.err = nil
		return m.setStatus(msg.Err.Error(), 4*time.Second)
	case tuiactions.PreferenceSaveErrorMsg:
		m.err = msg.Err
		m.status = "Could not persist UI preferences"
		return m, nil
	case tuiactions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.First):
		m.cursor = 0
	case key.Matches(msg, m.keys.Last):
		m.cursor = tuistate.ClampCursor(len(m.items)-1, len(m.items))
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-tuistate.PageStep(m.height, m.status != ""))
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(tuistate.PageStep(m.height, m.status != ""))
	case key.Matches(msg, m.keys.ExpandTop):
		m.expand(window.ExpandTop)
	case key.Matches(msg, m.keys.ExpandBottom):
		m.expand(window.ExpandBottom)
	case key.Matches(msg, m.keys.Select):
		return m.selectItem()
	case key.Matches(msg, m.keys.Open):
		return m.openSelectedURL()
	case key.Matches(msg, m.keys.Copy):
		return m.copySelectedURL()
	case key.Matches(msg, m.keys.RelativeTime):
		m.relativeTime = !m.relativeTime
		return m.togglePreference(onOff("Relative dates", m.relativeTime))
	case key.Matches(msg, m.keys.Numbers):
		m.showNumbers = !m.showNumbers
		return m.togglePreference(onOff("Numbering", m.showNumbers))
	case key.Matches(msg, m.keys.Reload):
		if m.service == nil {
			return m, nil
		}
		m.loading = true
		m.status = ""
		m.err = nil
		return m, tuiactions.ReloadCmd(m.service, "manual")
	}
	return m, nil
}

// setReleases rebuilds the controller over releases. The cursor lands on the
// current release, or the first row when there is none.
func (m *Model) setReleases(releases []release.Release) {
	m.list = tuirows.New(releases)
	ctrl, err := window.New(m.list)
	if err != nil {
		m.ctrl = nil
		m.items = nil
		m.cursor = 0
		m.err = err
		return
	}
	m.ctrl = ctrl
	m.items = m.list.Items()
	m.cursor = 0
	if ctrl.HasCurrent() {
		if row := tuistate.IndexOfRelease(m.items, ctrl.CurrentIndex()); row >= 0 {
			m.cursor = row
		}
	}
}

// expand forwards req to the controller and keeps the cursor on the same row.
// When that row was the control that just disappeared, the cursor moves to
// the first release it revealed.
func (m *Model) expand(req window.Request) {
	if m.ctrl == nil || len(m.items) == 0 {
		return
	}
	anchor := m.items[tuistate.ClampCursor(m.cursor, len(m.items))]
	before := m.ctrl.Window()

	m.ctrl.Handle(req)
	m.items = m.list.Items()

	if row := tuistate.IndexOfItem(m.items, anchor); row >= 0 {
		m.cursor = row
		return
	}
	target := -1
	switch anchor.Kind {
	case tuiview.ItemMoreTop:
		target = before.Top - 1
	case tuiview.ItemMoreBottom:
		target = before.Bottom + 1
	}
	if row := tuistate.IndexOfRelease(m.items, target); row >= 0 {
		m.cursor = row
		return
	}
	m.cursor = tuistate.ClampCursor(tuistate.IndexOfRelease(m.items, tuistate.NearestRelease(m.items, m.cursor)), len(m.items))
}

func (m *Model) moveCursor(delta int) {
	m.cursor = tuistate.ClampCursor(m.cursor+delta, len(m.items))
}

func (m Model) selectedItem() (tuiview.Item, bool) {
	if len(m.items) == 0 {
		return tuiview.Item{}, false
	}
	return m.items[tuistate.ClampCursor(m.cursor, len(m.items))], true
}

func (m Model) selectedRelease() (release.Release, bool) {
	item, ok := m.selectedItem()
	if !ok || item.Kind != tuiview.ItemRelease {
		return release.Release{}, false
	}
	return m.list.Release(item.Index)
}

func (m Model) selectItem() (tea.Model, tea.Cmd) {
	item, ok := m.selectedItem()
	if !ok {
		return m, nil
	}
	switch item.Kind {
	case tuiview.ItemMoreTop:
		m.expand(window.ExpandTop)
		return m, nil
	case tuiview.ItemMoreBottom:
		m.expand(window.ExpandBottom)
		return m, nil
	}

	r, _ := m.list.Release(item.Index)
	if r.Current {
		return m.setStatus(fmt.Sprintf("%s is already current", tuiview.ReleaseLabel(r)), 2*time.Second)
	}
	if strings.TrimSpace(r.Version) == "" {
		return m.setStatus("Release has no version to mark", 3*time.Second)
	}
	if m.service == nil {
		return m.setStatus("No catalog attached", 3*time.Second)
	}
	m.loading = true
	m.err = nil
	return m, tuiactions.SetCurrentCmd(m.service, r.Version)
}

func (m Model) openSelectedURL() (tea.Model, tea.Cmd) {
	r, ok := m.selectedRelease()
	if !ok {
		return m, nil
	}
	u, err := tuiplatform.ValidateReleaseURL(r.URL)
	if err != nil {
		return m.setStatus(err.Error(), 3*time.Second)
	}
	return m, tuiactions.OpenURLCmd(u, m.openURLFn, m.copyURLFn)
}

func (m Model) copySelectedURL() (tea.Model, tea.Cmd) {
	r, ok := m.selectedRelease()
	if !ok {
		return m, nil
	}
	u, err := tuiplatform.ValidateReleaseURL(r.URL)
	if err != nil {
		return m.setStatus(err.Error(), 3*time.Second)
	}
	return m, tuiactions.CopyURLCmd(u, m.copyURLFn)
}

func (m Model) togglePreference(status string) (tea.Model, tea.Cmd) {
	m.err = nil
	updated, clearCmd := m.setStatus(status, 2*time.Second)
	return updated, tea.Batch(clearCmd, updated.(Model).persistPreferencesCmd())
}

func (m Model) setStatus(status string, ttl time.Duration) (tea.Model, tea.Cmd) {
	m.status = status
	m.statusID++
	return m, tuiactions.ClearStatusCmd(m.statusID, ttl)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Releases"))
	b.WriteString(" ")
	b.WriteString(m.theme.ModePill.Render(m.mode()))
	b.WriteString("\n")
	b.WriteString(tuiview.Toolbar(m.showHelp))
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		b.WriteString(strings.Join(tuiview.HelpLines(), "\n"))
		b.WriteString("\n")
	case m.loading && len(m.items) == 0:
		b.WriteString("Loading releases...\n")
	case len(m.items) == 0:
		b.WriteString("No releases available.\n")
	default:
		start, end := tuistate.CenteredWindow(len(m.items), m.cursor, m.listHeight())
		b.WriteString(tuiview.RenderListBody(tuiview.ListRenderInput{
			Items:         m.items,
			Start:         start,
			End:           end,
			Cursor:        tuistate.ClampCursor(m.cursor, len(m.items)),
			RenderRelease: m.renderRelease,
			RenderControl: m.renderControl,
		}))
	}

	b.WriteString("\n")
	b.WriteString(tuiview.Message(m.loading, m.err != nil, m.status, m.warning(), m.theme))
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderRelease(index int, active bool) string {
	r, _ := m.list.Release(index)
	return tuiview.RenderReleaseLine(tuiview.ReleaseLineParams{
		Release:      r,
		Now:          m.nowFn(),
		RelativeTime: m.relativeTime,
		ShowNumbers:  m.showNumbers,
		Index:        index,
		Active:       active,
		Width:        m.contentWidth(),
	}, m.theme)
}

func (m Model) renderControl(kind tuiview.ItemKind, active bool) string {
	hidden := m.list.HiddenBelow()
	if kind == tuiview.ItemMoreTop {
		hidden = m.list.HiddenAbove()
	}
	return tuiview.RenderMoreLine(kind, hidden, active, m.theme)
}

func (m Model) footer() string {
	if m.ctrl == nil {
		return tuiview.Footer(0, -1, 0, "", m.theme)
	}
	w := m.ctrl.Window()
	current := ""
	if m.ctrl.HasCurrent() {
		if r, ok := m.list.Release(m.ctrl.CurrentIndex()); ok {
			current = tuiview.ReleaseLabel(r)
		}
	}
	return tuiview.Footer(w.Top, w.Bottom, m.ctrl.Len(), current, m.theme)
}

func (m Model) mode() string {
	if m.showHelp {
		return "help"
	}
	if m.ctrl == nil || m.ctrl.Len() == 0 {
		return "empty"
	}
	if !m.ctrl.TopControlVisible() && !m.ctrl.BottomControlVisible() {
		return "all"
	}
	return "window"
}

func (m Model) warning() string {
	if m.err == nil {
		return ""
	}
	return m.err.Error()
}

func (m Model) listHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func onOff(label string, on bool) string {
	if on {
		return label + ": on"
	}
	return label + ": off"
}
