package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/vardbx/internal/clipboard"
	"github.com/gubarz/vardbx/internal/vardb"
)

// ============================================================================
// Package Item
// ============================================================================

// pkgItem wraps a Package with precomputed search text
type pkgItem struct {
	pkg    vardb.Package
	search string
}

func newPkgItem(pkg vardb.Package) pkgItem {
	search := strings.ToLower(strings.Join([]string{
		pkg.Category, pkg.Package, pkg.Version, pkg.Description, pkg.Slot, pkg.Repository,
	}, " "))
	return pkgItem{pkg: pkg, search: search}
}

// matchesQuery checks if the item matches all search words
// Uses case-insensitive substring matching
func (item *pkgItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !strings.Contains(item.search, word) {
			return false
		}
	}
	return true
}

// ============================================================================
// Browse Model
// ============================================================================

type browseModel struct {
	items    []pkgItem
	filtered []int // indexes into items
	cursor   int
	offset   int
	width    int
	height   int

	input      textinput.Model
	showDetail bool
	status     string

	clip clipboard.Clipboard
}

func newBrowseModel(packages []vardb.Package, initialQuery string) browseModel {
	items := make([]pkgItem, 0, len(packages))
	for _, pkg := range packages {
		items = append(items, newPkgItem(pkg))
	}

	input := textinput.New()
	input.Prompt = "❯ "
	input.Placeholder = "filter packages"
	input.SetValue(initialQuery)
	input.Focus()

	m := browseModel{
		items: items,
		input: input,
		clip:  &clipboard.System{},
	}
	m.applyFilter()
	return m
}

func (m browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
			return m, tea.Quit
		case "enter", "tab":
			if len(m.filtered) > 0 {
				m.showDetail = !m.showDetail
			}
			return m, nil
		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil
		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil
		case "pgup":
			m.moveCursor(-m.listHeight())
			return m, nil
		case "pgdown":
			m.moveCursor(m.listHeight())
			return m, nil
		case "ctrl+y":
			m.copySelected()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

// applyFilter recomputes the visible items from the query
func (m *browseModel) applyFilter() {
	words := strings.Fields(strings.ToLower(m.input.Value()))
	m.filtered = m.filtered[:0]
	for i := range m.items {
		if m.items[i].matchesQuery(words) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampWindow()
	m.status = ""
}

func (m *browseModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampWindow()
}

// clampWindow scrolls the visible window so the cursor stays inside it
func (m *browseModel) clampWindow() {
	visible := m.listHeight()
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *browseModel) copySelected() {
	pkg, ok := m.selected()
	if !ok {
		return
	}
	atom := pkg.Atom()
	if err := m.clip.Copy(atom); err != nil {
		m.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied %s", atom)
}

func (m *browseModel) selected() (vardb.Package, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return vardb.Package{}, false
	}
	return m.items[m.filtered[m.cursor]].pkg, true
}

// listHeight is how many package rows fit between the filter line and
// the footer
func (m *browseModel) listHeight() int {
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

// ============================================================================
// Rendering
// ============================================================================

func (m browseModel) View() string {
	if m.showDetail {
		return m.detailView()
	}
	return m.listView()
}

func (m browseModel) listView() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	visible := m.listHeight()
	end := m.offset + visible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.offset; i < end; i++ {
		item := m.items[m.filtered[i]]
		line := m.renderItem(item, i == m.cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}

	footer := fmt.Sprintf("%d/%d packages • enter detail • ctrl+y copy atom • esc quit",
		len(m.filtered), len(m.items))
	if m.status != "" {
		footer = m.status
	}
	b.WriteString(styles.Dim.Render(footer))

	return b.String()
}

func (m browseModel) renderItem(item pkgItem, selected bool) string {
	pkg := item.pkg

	cursor := "  "
	category := styles.Category.Render(pkg.Category + "/")
	name := styles.Name.Render(pkg.Package)
	version := styles.Version.Render("-" + pkg.Version)
	if pkg.Version == "" {
		version = ""
	}

	desc := pkg.Description
	if maxDesc := m.width - len(pkg.Atom()) - 8; maxDesc > 3 {
		desc = truncate(desc, maxDesc)
	}

	line := category + name + version
	if desc != "" {
		line += "  " + styles.Desc.Render(desc)
	}

	if selected {
		cursor = styles.Cursor.Render("▶ ")
		line = styles.WithSelection(lipgloss.NewStyle()).Render(line)
	}
	return cursor + line
}

// truncate shortens s to at most max runes, replacing the tail with an
// ellipsis. Cutting on rune boundaries keeps multi-byte text intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func (m browseModel) detailView() string {
	pkg, ok := m.selected()
	if !ok {
		return "no selection"
	}

	rows := []struct{ key, value string }{
		{"Atom", pkg.Atom()},
		{"Category", pkg.Category},
		{"Package", pkg.Package},
		{"Version", pkg.Version},
		{"Build time", pkg.BuildTime},
		{"Description", pkg.Description},
		{"Homepage", pkg.Homepage},
		{"IUSE", pkg.IUse},
		{"Keywords", pkg.Keywords},
		{"License", pkg.License},
		{"RDEPEND", pkg.RDepend},
		{"Repository", pkg.Repository},
		{"Slot", pkg.Slot},
		{"USE", pkg.Use},
		{"EAPI", pkg.EAPI},
		{"BINPKGMD5", pkg.BinPkgMD5},
	}

	var b strings.Builder
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		b.WriteString(styles.DetailKey.Render(fmt.Sprintf("%-12s", row.key)))
		b.WriteString(" ")
		b.WriteString(styles.DetailValue.Render(row.value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render("esc back • ctrl+y copy atom"))

	body := b.String()
	if m.width > 4 {
		return styles.Border.Width(m.width - 2).Render(body)
	}
	return body
}

// ============================================================================
// Entry point
// ============================================================================

// Run launches the interactive package browser
func Run(packages []vardb.Package, initialQuery string) error {
	RefreshStyles()
	model := newBrowseModel(packages, initialQuery)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
