package ui

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/abook/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	FilterView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	view     ViewState
	book     *models.AddressBook
	source   *models.AddressBook
	query    string
	page     int
	hasNext  bool
	contacts list.Model
	filter   textinput.Model
	selected *models.Record
	status   string
	clock    clock.Clock
	width    int
	height   int
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model browsing book.
func NewModel(book *models.AddressBook, clk clock.Clock) *Model {
	if clk == nil {
		clk = clock.New()
	}

	contacts := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	contacts.Title = "Contacts"
	contacts.SetFilteringEnabled(false)
	contacts.SetShowHelp(false)
	contacts.DisableQuitKeybindings()

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "name or phone"

	return &Model{
		view:     ListView,
		book:     book,
		source:   book,
		contacts: contacts,
		filter:   filter,
		clock:    clk,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init loads the first page of contacts.
func (m *Model) Init() tea.Cmd {
	return m.loadPage(0)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.contacts.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case FilterView:
			return m.handleFilterKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		switch msg.kind {
		case MsgPageLoaded:
			return m.applyPage(msg.data.(pageData))
		case MsgFilterApplied:
			data := msg.data.(filterData)
			m.query = data.query
			m.source = data.results
			return m, m.loadPage(0)
		}
	}

	var cmd tea.Cmd
	m.contacts, cmd = m.contacts.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ListView:
		return m.renderList()
	case FilterView:
		return fmt.Sprintf("%s\n\n%s", m.contacts.View(), m.filter.View())
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		if !m.hasNext {
			m.status = "Last page"
			return m, nil
		}
		return m, m.loadPage(m.page + 1)
	case key.Matches(msg, m.keys.prev):
		if m.page == 0 {
			m.status = "First page"
			return m, nil
		}
		return m, m.loadPage(m.page - 1)
	case key.Matches(msg, m.keys.filter):
		m.view = FilterView
		m.filter.SetValue(m.query)
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.contacts.SelectedItem().(contactItem); ok {
			m.selected = item.record
			m.view = DetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		if m.query == "" {
			return m, nil
		}
		m.query = ""
		m.source = m.book
		return m, m.loadPage(0)
	}

	var cmd tea.Cmd
	m.contacts, cmd = m.contacts.Update(msg)
	return m, cmd
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.view = ListView
		m.filter.Blur()
		return m, m.applyFilter(strings.TrimSpace(m.filter.Value()))
	case tea.KeyEsc:
		m.view = ListView
		m.filter.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.view = ListView
		m.selected = nil
	}
	return m, nil
}

func (m *Model) applyPage(data pageData) (tea.Model, tea.Cmd) {
	if !data.ok && data.number > 0 {
		m.status = "No more pages"
		return m, nil
	}

	items := make([]list.Item, len(data.records))
	for i, r := range data.records {
		items[i] = contactItem{record: r}
	}

	m.page = data.number
	m.hasNext = data.hasNext
	m.status = ""
	m.contacts.Title = m.title()
	return m, m.contacts.SetItems(items)
}

func (m *Model) title() string {
	pages := (m.source.Len() + m.source.PageSize() - 1) / m.source.PageSize()
	title := fmt.Sprintf("Contacts · page %d of %d", m.page+1, max(pages, 1))
	if m.query != "" {
		title = fmt.Sprintf("%s · matching %q", title, m.query)
	}
	return title
}

// loadPage walks a fresh paginator over the current source up to page n.
func (m *Model) loadPage(n int) tea.Cmd {
	source := m.source
	return func() tea.Msg {
		pages := source.Iterate()
		for i := 0; ; i++ {
			records, ok := pages.Next()
			if !ok {
				return pageLoadedMsg(n, nil, false, false)
			}
			if i == n {
				hasNext := (n+1)*source.PageSize() < source.Len()
				return pageLoadedMsg(n, records, true, hasNext)
			}
		}
	}
}

func (m *Model) applyFilter(query string) tea.Cmd {
	book := m.book
	return func() tea.Msg {
		if query == "" {
			return filterAppliedMsg("", book)
		}
		return filterAppliedMsg(query, book.SearchRecords(query))
	}
}

func (m *Model) renderList() string {
	var body string
	if m.source.Len() == 0 {
		if m.query != "" {
			body = styles.warn.Render(fmt.Sprintf("No matches for %s", m.query))
		} else {
			body = styles.warn.Render("No contacts found.")
		}
		body = fmt.Sprintf("%s\n%s", styles.title.Render(m.contacts.Title), body)
	} else {
		body = m.contacts.View()
	}

	if m.status != "" {
		body = fmt.Sprintf("%s\n%s", body, styles.help.Render(m.status))
	}

	helpKeys := []key.Binding{m.keys.next, m.keys.prev, m.keys.filter, m.keys.enter, m.keys.quit}
	if m.query != "" {
		helpKeys = append(helpKeys, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")))
	}
	return fmt.Sprintf("%s\n\n%s", body, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No contact selected")
	}

	var sb strings.Builder
	sb.WriteString(styles.title.Render(m.selected.Name().String()))
	sb.WriteString("\n")

	phones := phoneValues(m.selected)
	if len(phones) == 0 {
		sb.WriteString(styles.warn.Render("No phone numbers"))
		sb.WriteString("\n")
	}
	for _, p := range phones {
		sb.WriteString(fmt.Sprintf("  • %s\n", styles.phone.Render(p)))
	}

	if b, ok := m.selected.Birthday(); ok {
		sb.WriteString(fmt.Sprintf("\nBirthday: %s\n", b))
		if days, err := m.selected.DaysToBirthday(m.clock.Now()); err == nil {
			sb.WriteString(styles.birthday.Render(fmt.Sprintf("%d days until next birthday", days)))
			sb.WriteString("\n")
		}
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s", sb.String(), m.help.ShortHelpView(helpKeys))
}
