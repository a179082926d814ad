// Package tui implements a terminal catalog browser using Bubble Tea.
// The user enters an uploader name, browses the listing with play counts
// and opens any item to resolve its description and audio URL.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/litescript/soundlist/internal/config"
	"github.com/litescript/soundlist/internal/scraper"
	"go.uber.org/zap"
)

const requestTimeout = 60 * time.Second

// View modes
type viewMode int

const (
	viewList viewMode = iota
	viewDetails
)

// ClientFactory builds a scraper client for a configuration
type ClientFactory func(config.Config) *scraper.Client

// row is a listing entry with its position on the uploader's page
type row struct {
	item scraper.AudioItem
	pos  int
}

// Model is the main application state
type Model struct {
	cfg        config.Config
	configPath string // empty disables saving preferences
	newClient  ClientFactory
	client     *scraper.Client
	log        *zap.Logger

	// Components
	input   textinput.Model
	spinner spinner.Model
	styles  Styles

	// State
	mode       viewMode
	uploader   scraper.Uploader
	rows       []row
	cursor     int
	loading    bool
	byPlays    bool
	totalPlays int
	detail     *scraper.AudioItem
	detailBusy bool
	err        error
	statusMsg  string

	// Dimensions
	width  int
	height int
}

// Messages
type listingMsg struct {
	uploader scraper.Uploader
	items    []scraper.AudioItem
	err      error
}

type detailMsg struct {
	url  string
	item *scraper.AudioItem
	err  error
}

// ConfigChangedMsg carries a configuration reloaded from disk
type ConfigChangedMsg struct {
	Config config.Config
	Err    error
}

// NewModel creates the initial model. If the config remembers an uploader,
// its listing is loaded on start.
func NewModel(cfg config.Config, configPath string, newClient ClientFactory, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Uploader name..."
	ti.CharLimit = 128
	ti.Width = 40

	styles := NewStyles(DefaultPalette())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Plays

	m := Model{
		cfg:        cfg,
		configPath: configPath,
		newClient:  newClient,
		client:     newClient(cfg),
		log:        log,
		input:      ti,
		spinner:    sp,
		styles:     styles,
		mode:       viewList,
		byPlays:    cfg.TUI.SortByPlays,
	}

	if name := cfg.TUI.LastUploader; name != "" {
		m.input.SetValue(name)
		m.uploader = scraper.Uploader{Name: name}
		m.loading = true
		m.statusMsg = "Loading " + name + "..."
	} else {
		m.input.Focus()
	}

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if m.loading {
		return tea.Batch(m.spinner.Tick, m.loadListing(m.uploader))
	}
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.detailBusy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case listingMsg:
		return m.applyListing(msg), nil

	case detailMsg:
		if !m.awaitingDetail(msg.url) {
			return m, nil
		}
		m.detailBusy = false
		if msg.err != nil {
			m.err = msg.err
			m.statusMsg = fmt.Sprintf("Failed to resolve item: %v", msg.err)
			m.mode = viewList
			return m, nil
		}
		m.detail = msg.item
		m.statusMsg = ""
		return m, nil

	case ConfigChangedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Config reload failed: %v", msg.Err)
			return m, nil
		}
		if msg.Config == m.cfg {
			// our own save
			return m, nil
		}
		m.cfg = msg.Config
		m.client = m.newClient(m.cfg)
		if m.byPlays != m.cfg.TUI.SortByPlays {
			m.byPlays = m.cfg.TUI.SortByPlays
			sortRows(m.rows, m.byPlays)
		}
		m.statusMsg = "Config reloaded"
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// awaitingDetail reports whether a details response for url is still wanted
func (m Model) awaitingDetail(url string) bool {
	if m.mode != viewDetails || !m.detailBusy || len(m.rows) == 0 {
		return false
	}
	return m.rows[m.cursor].item.PostURL == url
}

func (m Model) applyListing(msg listingMsg) Model {
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		m.statusMsg = fmt.Sprintf("Failed to load %s: %v", msg.uploader.Name, msg.err)
		m.log.Warn("listing failed", zap.String("uploader", msg.uploader.Name), zap.Error(msg.err))
		return m
	}

	m.err = nil
	m.uploader = msg.uploader
	m.rows = make([]row, len(msg.items))
	m.totalPlays = 0
	for i, item := range msg.items {
		m.rows[i] = row{item: item, pos: i}
		n, _ := item.Plays()
		m.totalPlays += n
	}
	sortRows(m.rows, m.byPlays)
	m.cursor = 0
	m.mode = viewList
	m.detail = nil

	if len(m.rows) == 0 {
		m.statusMsg = msg.uploader.Name + " has no uploads"
	} else {
		m.statusMsg = fmt.Sprintf("Loaded %d uploads", len(m.rows))
	}

	if m.cfg.TUI.LastUploader != msg.uploader.Name {
		m.cfg.TUI.LastUploader = msg.uploader.Name
		m.saveConfig()
	}
	return m
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global quit - always works
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// Uploader input has focus: only enter and esc are ours
	if m.input.Focused() {
		switch key {
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" || m.loading {
				return m, nil
			}
			m.input.Blur()
			m.loading = true
			m.err = nil
			m.statusMsg = "Loading " + name + "..."
			return m, tea.Batch(m.spinner.Tick, m.loadListing(scraper.Uploader{Name: name}))
		case "esc":
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.mode == viewDetails {
		switch key {
		case "esc", "backspace", "h", "left":
			m.mode = viewList
			m.detail = nil
			m.detailBusy = false
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "/", "u":
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
	case "s":
		m.byPlays = !m.byPlays
		sortRows(m.rows, m.byPlays)
		m.cursor = 0
		m.cfg.TUI.SortByPlays = m.byPlays
		m.saveConfig()
	case "r":
		if m.uploader.Name != "" && !m.loading {
			m.loading = true
			m.statusMsg = "Reloading " + m.uploader.Name + "..."
			return m, tea.Batch(m.spinner.Tick, m.loadListing(m.uploader))
		}
	case "enter", "l", "right":
		if len(m.rows) > 0 {
			m.mode = viewDetails
			m.detail = nil
			m.detailBusy = true
			m.err = nil
			m.statusMsg = ""
			return m, tea.Batch(m.spinner.Tick, m.loadDetails(m.rows[m.cursor].item))
		}
	}

	return m, nil
}

// loadListing fetches the uploader's listing without audio URLs
func (m Model) loadListing(u scraper.Uploader) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var items []scraper.AudioItem
		for item, err := range client.ListAudios(ctx, u, false) {
			if err != nil {
				return listingMsg{uploader: u, err: err}
			}
			items = append(items, item)
		}
		return listingMsg{uploader: u, items: items}
	}
}

// loadDetails resolves the item page and carries over the listing's play count
func (m Model) loadDetails(listed scraper.AudioItem) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		url := listed.PostURL
		item, err := client.ResolveItem(ctx, url)
		if err != nil {
			return detailMsg{url: url, err: err}
		}
		item.PlayCount = listed.PlayCount
		if _, err := client.ResolvePlayCount(ctx, item, true); err != nil {
			return detailMsg{url: url, err: err}
		}
		return detailMsg{url: url, item: item}
	}
}

func (m Model) saveConfig() {
	if m.configPath == "" {
		return
	}
	if err := config.SaveTo(m.configPath, m.cfg); err != nil {
		m.log.Warn("saving config failed", zap.Error(err))
	}
}

// sortRows orders rows by descending plays, or by page position
func sortRows(rows []row, byPlays bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if byPlays {
			pi, _ := rows[i].item.Plays()
			pj, _ := rows[j].item.Plays()
			if pi != pj {
				return pi > pj
			}
		}
		return rows[i].pos < rows[j].pos
	})
}

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.styles.Prompt.Render("Uploader: ") + m.input.View())
	b.WriteString("\n\n")

	contentHeight := m.height - 8
	if contentHeight < 5 {
		contentHeight = 5
	}

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " " + m.statusMsg)
	case m.mode == viewDetails:
		b.WriteString(m.renderDetails())
	case m.err != nil && len(m.rows) == 0:
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	default:
		b.WriteString(m.renderList(contentHeight))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("soundlist")
	site := m.styles.Muted.Render(m.client.BaseURL())
	if m.uploader.Name == "" || m.loading {
		return title + "  " + site
	}
	summary := fmt.Sprintf("%s  %d uploads  %s plays",
		m.uploader.Name, len(m.rows), formatPlays(&m.totalPlays))
	return title + "  " + site + "  " + m.styles.Plays.Render(summary)
}

func (m Model) renderList(height int) string {
	if len(m.rows) == 0 {
		return m.styles.Muted.Render("No uploads")
	}

	var b strings.Builder

	const playsWidth = 9
	titleWidth := m.width - 2 - playsWidth - 2
	if titleWidth < 20 {
		titleWidth = 20
	}

	order := "page order"
	if m.byPlays {
		order = "most played"
	}
	header := "  " + PadRight("TITLE ("+order+")", titleWidth) + " " + PadLeft("PLAYS", playsWidth)
	b.WriteString(m.styles.TableHeader.Render(header))
	b.WriteString("\n")

	visibleRows := height - 2
	if visibleRows < 1 {
		visibleRows = 1
	}
	start := 0
	if m.cursor >= visibleRows {
		start = m.cursor - visibleRows + 1
	}
	end := start + visibleRows
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		item := m.rows[i].item
		title := PadRight(TruncateString(item.Title, titleWidth), titleWidth)
		plays := PadLeft(formatPlays(item.PlayCount), playsWidth)

		if i == m.cursor {
			b.WriteString(m.styles.TableSelected.Render("> " + title + " " + plays))
		} else {
			b.WriteString("  " + m.styles.TableRow.Render(title) + " " + m.styles.Plays.Render(plays))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderDetails() string {
	if m.detailBusy {
		return m.spinner.View() + " Resolving item..."
	}
	if m.detail == nil {
		return m.styles.Muted.Render("Nothing selected")
	}

	d := m.detail
	width := m.width - 4
	if width < 40 {
		width = 40
	}

	field := func(label, value string) string {
		return m.styles.Muted.Render(PadRight(label, 10)) + value + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(field("Uploader", d.Uploader.Name))
	b.WriteString(field("Plays", m.styles.Plays.Render(formatPlays(d.PlayCount))))
	b.WriteString(field("Page", d.PostURL))
	b.WriteString(field("Audio", d.AudioURL))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width - 4).Render(d.Description))

	return m.styles.Panel.Width(width).Render(b.String())
}

func (m Model) renderStatusBar() string {
	var help []string
	add := func(key, desc string) {
		help = append(help, m.styles.HelpKey.Render(key)+" "+m.styles.HelpDesc.Render(desc))
	}

	switch {
	case m.input.Focused():
		add("enter", "load")
		add("esc", "cancel")
	case m.mode == viewDetails:
		add("esc", "back")
		add("q", "quit")
	default:
		add("enter", "details")
		add("s", "sort")
		add("r", "reload")
		add("/", "uploader")
		add("q", "quit")
	}

	line := strings.Join(help, "  ")
	if m.statusMsg != "" && !m.loading {
		style := m.styles.Muted
		if m.err != nil {
			style = m.styles.Error
		}
		line = style.Render(m.statusMsg) + "  " + line
	}
	return line
}
