package main

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"battlepets/petlookup"
)

// Focus is the part of the screen receiving keys
type Focus int

const (
	FocusID Focus = iota
	FocusType
	FocusResults
	focusCount
)

// Model is the root Bubble Tea model
type Model struct {
	ctx     context.Context
	ctrl    *petlookup.Controller
	changes <-chan struct{}
	state   petlookup.LookupState

	idInput textinput.Model
	spinner spinner.Model
	details DetailsModel

	focus     Focus
	cursor    int
	statusMsg string

	width, height int
}

// NewModel creates a model rendering ctrl. changes must receive a value
// whenever ctrl's state changes.
func NewModel(ctx context.Context, ctrl *petlookup.Controller, changes <-chan struct{}) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter pet ID"
	ti.CharLimit = 12
	ti.Width = 14
	ti.Prompt = ""
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		changes: changes,
		idInput: ti,
		spinner: sp,
		details: NewDetailsModel(),
	}
	m.applyState(ctrl.Snapshot())
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForChange(m.changes))
}

// waitForChange blocks until the controller signals, then asks for a redraw
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StateChangedMsg{}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case StateChangedMsg:
		m.applyState(m.ctrl.Snapshot())
		return m, waitForChange(m.changes)

	case LookupDoneMsg:
		// state arrives through StateChangedMsg
		return m, nil

	case BrowserOpenedMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Could not open %s: %v", msg.URL, msg.Err)
		} else {
			m.statusMsg = "Opened " + msg.URL
		}
		return m, nil

	case spinner.TickMsg:
		// Always process spinner ticks so it doesn't stop.
		// View() only shows the spinner while loading.
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		// wheel scrolls the results panel
		m.details.Update(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.idInput, cmd = m.idInput.Update(msg)
	return m, cmd
}

func (m *Model) applyState(s petlookup.LookupState) {
	m.state = s
	if m.cursor >= len(s.CounterResults) {
		m.cursor = len(s.CounterResults) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	cursor := -1
	if m.focus == FocusResults {
		cursor = m.cursor
	}
	m.details.SetContent(renderResults(s, cursor))
	m.recalcLayout()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, globalKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, globalKeys.NextFocus):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case key.Matches(msg, globalKeys.PrevFocus):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	}

	switch m.focus {
	case FocusID:
		return m.handleIDKey(msg)
	case FocusType:
		return m.handleTypeKey(msg)
	case FocusResults:
		return m.handleResultsKey(msg)
	}
	return m, nil
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusID {
		m.idInput.Focus()
	} else {
		m.idInput.Blur()
	}
	m.statusMsg = ""
	m.applyState(m.state)
}

func (m Model) handleIDKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, formKeys.Submit) {
		return m.submitPet()
	}

	// numeric field: drop anything that is not a digit
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if !unicode.IsDigit(r) {
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.idInput, cmd = m.idInput.Update(msg)
	m.ctrl.SetPetIDInput(m.idInput.Value())
	m.state = m.ctrl.Snapshot()
	return m, cmd
}

func (m Model) handleTypeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, formKeys.Submit):
		return m.submitCounters()
	case key.Matches(msg, formKeys.PrevType):
		m.ctrl.CyclePetType(-1)
	case key.Matches(msg, formKeys.NextType):
		m.ctrl.CyclePetType(1)
	case key.Matches(msg, resultsKeys.Quit):
		return m, tea.Quit
	default:
		return m, nil
	}
	m.state = m.ctrl.Snapshot()
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, resultsKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, resultsKeys.Down):
		if m.cursor < len(m.state.CounterResults)-1 {
			m.cursor++
		}
	case key.Matches(msg, resultsKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, resultsKeys.ScrollDown):
		m.details.ScrollDown()
		return m, nil
	case key.Matches(msg, resultsKeys.ScrollUp):
		m.details.ScrollUp()
		return m, nil
	case key.Matches(msg, resultsKeys.Open):
		if len(m.state.CounterResults) == 0 {
			m.statusMsg = "No counter selected"
			return m, nil
		}
		pet := m.state.CounterResults[m.cursor]
		return m, openURL(petlookup.ReferenceURL(pet.ID))
	default:
		return m, nil
	}
	m.applyState(m.state)
	return m, nil
}

func (m Model) submitPet() (tea.Model, tea.Cmd) {
	if !m.state.CanFetchPet() {
		if m.state.Loading {
			m.statusMsg = "A lookup is already running"
		} else {
			m.statusMsg = "Enter a pet ID first"
		}
		return m, nil
	}
	m.statusMsg = ""
	pending := m.ctrl.BeginPetLookup(m.idInput.Value())
	m.applyState(m.ctrl.Snapshot())
	return m, runPending(m.ctx, pending)
}

func (m Model) submitCounters() (tea.Model, tea.Cmd) {
	if !m.state.CanFetchCounters() {
		m.statusMsg = "A lookup is already running"
		return m, nil
	}
	m.statusMsg = ""
	m.cursor = 0
	pending := m.ctrl.BeginCounterLookup(m.state.PetTypeInput)
	m.applyState(m.ctrl.Snapshot())
	return m, runPending(m.ctx, pending)
}

func runPending(ctx context.Context, pending petlookup.Pending) tea.Cmd {
	return func() tea.Msg {
		pending(ctx)
		return LookupDoneMsg{}
	}
}

func (m *Model) recalcLayout() {
	if m.width == 0 {
		return
	}
	chrome := lipgloss.Height(m.viewStatusBar()) +
		lipgloss.Height(m.viewForm()) +
		lipgloss.Height(m.viewSeparator()) +
		lipgloss.Height(m.viewHelpBar())
	if e := m.viewError(); e != "" {
		chrome += lipgloss.Height(e)
	}

	contentHeight := m.height - chrome
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.details.SetSize(m.width, contentHeight)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Starting..."
	}

	sections := []string{
		m.viewStatusBar(),
		m.viewForm(),
		m.viewSeparator(),
		m.details.View(),
	}
	if e := m.viewError(); e != "" {
		sections = append(sections, e)
	}
	sections = append(sections, m.viewHelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewStatusBar() string {
	title := statusStyle.Render("Battle Pet Lookup")

	var info string
	switch {
	case m.state.Loading:
		info = "  " + m.spinner.View() + loadingStyle.Render("Loading...")
	case m.statusMsg != "":
		info = "  " + m.statusMsg
	}
	return title + info
}

func (m Model) viewForm() string {
	idLabel, typeLabel := labelStyle, labelStyle
	switch m.focus {
	case FocusID:
		idLabel = labelFocusedStyle
	case FocusType:
		typeLabel = labelFocusedStyle
	}

	idRow := idLabel.Render("Pet ID") + " " + m.idInput.View() + "  " +
		button("Get Pet By ID", m.state.CanFetchPet(), m.state.Loading)

	pt := m.state.PetTypeInput
	var hint string
	if counters := petlookup.CounterTypes(pt); len(counters) > 0 {
		names := make([]string, len(counters))
		for i, c := range counters {
			names[i] = string(c)
		}
		hint = "  " + hintStyle.Render("countered by "+strings.Join(names, ", "))
	}
	typeRow := typeLabel.Render("Pet type") + " " +
		arrowStyle.Render("◀ ") + renderType(pt) + arrowStyle.Render(" ▶") + "  " +
		button("Find Double Counters", m.state.CanFetchCounters(), m.state.Loading) + hint

	return idRow + "\n" + typeRow
}

func button(label string, enabled, loading bool) string {
	if loading {
		return buttonDisabledStyle.Render("Loading...")
	}
	if !enabled {
		return buttonDisabledStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m Model) viewSeparator() string {
	return separatorStyle.Render(strings.Repeat("─", m.width))
}

func (m Model) viewError() string {
	if m.state.Err == nil {
		return ""
	}
	return errorStyle.Render("Error: " + m.state.ErrorMessage())
}

func (m Model) viewHelpBar() string {
	var pairs []string
	switch m.focus {
	case FocusID:
		pairs = []string{"0-9", "id", "enter", "lookup"}
	case FocusType:
		pairs = []string{"h/l", "type", "enter", "counters"}
	case FocusResults:
		pairs = []string{"j/k", "select", "o", "open link", "J/K", "scroll"}
	}
	pairs = append(pairs, "tab", "focus", "esc", "quit")

	var parts []string
	for i := 0; i < len(pairs)-1; i += 2 {
		parts = append(parts, helpKeyStyle.Render(pairs[i])+":"+helpDescStyle.Render(pairs[i+1]))
	}

	return strings.Join(parts, "  ")
}
