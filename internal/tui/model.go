package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/carousel-cli/internal/catalog"
	"github.com/glabrego/carousel-cli/internal/listctl"
	"github.com/glabrego/carousel-cli/internal/tui/actions"
	"github.com/glabrego/carousel-cli/internal/tui/platform"
	tuistate "github.com/glabrego/carousel-cli/internal/tui/state"
	tuitheme "github.com/glabrego/carousel-cli/internal/tui/theme"
	"github.com/glabrego/carousel-cli/internal/tui/view"
)

const (
	appTitle            = "Carousel"
	defaultPrefetchRows = 3

	// header, search bar and bottom panels around the list body
	chromeLines = 9
	minListRows = 3
)

type Service interface {
	LoadBytes(ctx context.Context) ([]byte, error)
	Decode(data []byte) error
	SourceName() string
	Controller() *listctl.Controller
}

type Options struct {
	PrefetchRows int
}

type clearStatusMsg struct {
	id int
}

type Model struct {
	service      Service
	ctrl         *listctl.Controller
	keys         keyMap
	help         help.Model
	search       textinput.Model
	spinner      spinner.Model
	theme        tuitheme.Theme
	scroll       tuistate.ScrollTracker
	cursor       int
	offset       int
	prefetchRows int
	showHelp     bool
	width        int
	height       int
	loading      bool
	status       string
	statusID     int
	err          error
	openURLFn    func(string) error
	copyURLFn    func(string) error
}

// NewModel builds the carousel screen over service's controller. A nil
// service gives an empty controller and disables loading.
func NewModel(service Service, opts Options) Model {
	var ctrl *listctl.Controller
	if service != nil {
		ctrl = service.Controller()
	}
	if ctrl == nil {
		ctrl, _ = listctl.New(nil)
	}
	prefetch := opts.PrefetchRows
	if prefetch <= 0 {
		prefetch = defaultPrefetchRows
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "filter titles"
	ti.CharLimit = 200

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		service:      service,
		ctrl:         ctrl,
		keys:         defaultKeyMap(),
		help:         help.New(),
		search:       ti,
		spinner:      s,
		theme:        tuitheme.Default(),
		prefetchRows: prefetch,
		loading:      service != nil,
		openURLFn:    platform.OpenURLInBrowser,
		copyURLFn:    platform.CopyURLToClipboard,
	}
}

func (m Model) Init() tea.Cmd {
	if m.service == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, actions.LoadCmd(m.service, "startup"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 12; w > 0 {
			m.search.Width = w
		}
		m.syncScroll()
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case actions.LoadSuccessMsg:
		m.loading = false
		if m.service == nil {
			return m, nil
		}
		if err := m.service.Decode(msg.Data); err != nil {
			m.err = err
			m.status = "Could not decode catalog, press r to retry"
			return m, nil
		}
		m.err = nil
		m.search.SetValue("")
		m.resetList()
		m.status = fmt.Sprintf("Loaded %d images from %s in %s", m.ctrl.ImageCount(), m.service.SourceName(), msg.Duration.Round(time.Millisecond))
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case actions.LoadErrorMsg:
		m.loading = false
		m.err = msg.Err
		m.status = "Load failed, press r to retry"
		return m, nil
	case actions.OpenURLSuccessMsg:
		m.err = nil
		m.status = msg.Status
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case actions.OpenURLErrorMsg:
		m.status = msg.Err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ExitSearch):
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.ClearSearch):
		m.search.SetValue("")
		m.applySearch("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != m.ctrl.SearchText() {
		m.applySearch(value)
	}
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-tuistate.PageStep(m.listHeight()))
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(tuistate.PageStep(m.listHeight()))
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-m.cursor)
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(m.ctrl.DisplayedCount() - 1 - m.cursor)
	case key.Matches(msg, m.keys.PrevImage):
		m.stepImage(-1)
	case key.Matches(msg, m.keys.NextImage):
		m.stepImage(1)
	case key.Matches(msg, m.keys.Search):
		if m.ctrl.ImageCount() == 0 {
			return m, nil
		}
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.ClearSearch):
		m.search.SetValue("")
		m.applySearch("")
	case key.Matches(msg, m.keys.More):
		if !m.ctrl.LoadMore() {
			m.status = "All items loaded"
		} else {
			m.status = fmt.Sprintf("Loaded page %d", m.ctrl.Page()+1)
		}
		m.statusID++
		return m, clearStatusCmd(m.statusID, 3*time.Second)
	case key.Matches(msg, m.keys.Reload):
		if m.service == nil || m.loading {
			return m, nil
		}
		m.loading = true
		m.err = nil
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, actions.LoadCmd(m.service, "reload"))
	case key.Matches(msg, m.keys.Copy):
		return m.copyCurrentURL()
	case key.Matches(msg, m.keys.Open):
		return m.openCurrentURL()
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor = tuistate.ClampCursor(m.cursor+delta, m.ctrl.DisplayedCount())
	if m.ctrl.HasMore() && tuistate.ShouldLoadMore(m.cursor, m.ctrl.DisplayedCount(), m.prefetchRows) {
		m.ctrl.LoadMore()
	}
	m.syncScroll()
}

func (m *Model) stepImage(delta int) {
	count := m.ctrl.ImageCount()
	if count == 0 {
		return
	}
	next := tuistate.ClampCursor(m.ctrl.SelectedIndex()+delta, count)
	if next == m.ctrl.SelectedIndex() {
		return
	}
	if err := m.ctrl.SelectImage(next); err != nil {
		m.err = err
		return
	}
	m.search.SetValue("")
	m.resetList()
}

func (m *Model) applySearch(text string) {
	m.ctrl.SetSearchText(text)
	m.resetList()
}

func (m *Model) resetList() {
	m.cursor = 0
	m.offset = 0
	m.scroll.Reset()
}

func (m *Model) syncScroll() {
	m.offset = tuistate.ScrollOffset(m.offset, m.cursor, m.listHeight(), m.ctrl.DisplayedCount())
	m.scroll.Track(m.offset)
}

// listHeight is the number of item rows that fit on screen, or 0 while the
// terminal size is unknown.
func (m Model) listHeight() int {
	if m.height <= 0 {
		return 0
	}
	rows := m.height - chromeLines
	if !m.scroll.Pinned() && m.ctrl.ImageCount() > 0 {
		rows -= view.CarouselLines
	}
	if rows < minListRows {
		rows = minListRows
	}
	return rows
}

func (m Model) currentItem() (catalog.Item, bool) {
	items := m.ctrl.DisplayedItems()
	if len(items) == 0 {
		return catalog.Item{}, false
	}
	return items[tuistate.ClampCursor(m.cursor, len(items))], true
}

func (m Model) currentImageURL() (string, error) {
	item, ok := m.currentItem()
	if !ok {
		return "", fmt.Errorf("no item selected")
	}
	return platform.ValidateImageURL(item.ImageURL)
}

func (m Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	u, err := m.currentImageURL()
	if err != nil {
		m.status = err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, actions.CopyURLCmd(u, m.copyURLFn)
}

func (m Model) openCurrentURL() (tea.Model, tea.Cmd) {
	u, err := m.currentImageURL()
	if err != nil {
		m.status = err.Error()
		m.statusID++
		return m, clearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, actions.OpenURLCmd(u, m.openURLFn, m.copyURLFn)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(view.Header(appTitle, m.mode(), m.theme))
	b.WriteString("\n\n")

	if m.showHelp {
		full := m.help
		full.ShowAll = true
		b.WriteString(full.View(m.keys))
		b.WriteString("\n\n")
		b.WriteString(m.messagePanel())
		b.WriteString("\n")
		b.WriteString(m.footer())
		b.WriteString("\n")
		return b.String()
	}

	switch {
	case m.loading && m.ctrl.ImageCount() == 0:
		b.WriteString(fmt.Sprintf("%s Loading catalog from %s...\n", m.spinner.View(), m.sourceName()))
	case m.ctrl.ImageCount() == 0:
		b.WriteString("No images in catalog.\n")
	default:
		if !m.scroll.Pinned() {
			b.WriteString(view.RenderCarousel(view.CarouselParams{
				Images:   m.ctrl.Images(),
				Selected: m.ctrl.SelectedIndex(),
				Width:    m.contentWidth(),
			}, m.theme))
		}
		b.WriteString(view.SearchLine(m.search.View(), m.scroll.Pinned(), m.contentWidth(), m.theme))
		b.WriteString("\n\n")
		b.WriteString(m.listBody())
	}

	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) listBody() string {
	items := m.ctrl.DisplayedItems()
	if len(items) == 0 {
		if text := m.ctrl.SearchText(); text != "" {
			return fmt.Sprintf("No items match %q.\n", text)
		}
		return "No items for this image.\n"
	}

	start, end := 0, len(items)
	if h := m.listHeight(); h > 0 {
		start = tuistate.ClampCursor(m.offset, len(items))
		end = min(start+h, len(items))
	}
	trailer := ""
	if end == len(items) && m.ctrl.HasMore() {
		trailer = m.theme.MetaLabel.Render(fmt.Sprintf("    %d of %d shown, scroll for more", len(items), m.ctrl.FilteredCount()))
	}
	width := m.contentWidth()
	return view.RenderListBody(view.ListRenderInput{
		Count:   len(items),
		Start:   start,
		End:     end,
		Cursor:  m.cursor,
		Trailer: trailer,
		RenderItemLine: func(index int, active bool) string {
			return view.RenderItemLine(view.ItemLineParams{
				Item:        items[index],
				Position:    index,
				ShowNumbers: true,
				Active:      active,
				Width:       width,
			}, m.theme)
		},
	})
}

func (m Model) mode() string {
	switch {
	case m.showHelp:
		return "help"
	case m.search.Focused():
		return "search"
	default:
		return "list"
	}
}

func (m Model) messagePanel() string {
	warning := ""
	if m.err != nil {
		warning = m.err.Error()
	}
	return view.Message(m.loading, m.err != nil, m.status, warning, m.theme)
}

func (m Model) footer() string {
	image := 0
	if m.ctrl.ImageCount() > 0 {
		image = m.ctrl.SelectedIndex() + 1
	}
	return view.Footer(view.FooterParams{
		Image:     image,
		Images:    m.ctrl.ImageCount(),
		Page:      m.ctrl.Page() + 1,
		Displayed: m.ctrl.DisplayedCount(),
		Filtered:  m.ctrl.FilteredCount(),
		Search:    m.ctrl.SearchText(),
	}, m.theme)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m Model) sourceName() string {
	if m.service == nil {
		return "nowhere"
	}
	return m.service.SourceName()
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
