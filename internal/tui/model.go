package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/kondate/internal/chat"
	"github.com/diogo/kondate/internal/models"
	"github.com/diogo/kondate/internal/recipe"
	"github.com/diogo/kondate/internal/render"
)

// requestDoneMsg is sent when a submit or follow-up returns.
// seq ties it to the request that produced it.
type requestDoneMsg struct {
	seq int
	err error
}

// SessionInterface defines the chat session operations needed by the TUI
type SessionInterface interface {
	SubmitIngredients(ctx context.Context, editor *recipe.Editor) error
	SendFollowUp(ctx context.Context, text string) error
	Reset()
	State() chat.State
	Loading() bool
	Messages() []models.Message
	Input() string
	SetInput(text string)
}

// ingredientRow holds the two inputs of one editor row
type ingredientRow struct {
	id     string
	name   textinput.Model
	amount textinput.Model
}

// Model represents the TUI state
type Model struct {
	ctx        context.Context
	session    SessionInterface
	editor     *recipe.Editor
	modelName  string
	renderOpts render.Options

	// UI components
	rows     []ingredientRow
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// focus indexes row fields (name, amount, name, amount, ...) and then
	// the follow-up textarea at 2*len(rows)
	focus int

	loading bool
	seq     int
	ready   bool

	width  int
	height int
}

// NewChatModel creates the form + transcript model
func NewChatModel(ctx context.Context, session SessionInterface, editor *recipe.Editor, modelName string, opts render.Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	ta := textarea.New()
	ta.Placeholder = "レシピについて質問する..."
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	m := Model{
		ctx:        ctx,
		session:    session,
		editor:     editor,
		modelName:  modelName,
		renderOpts: opts,
		textarea:   ta,
		spinner:    s,
		viewport:   viewport.New(76, 10),
	}
	for _, ing := range editor.Rows() {
		m.rows = append(m.rows, newIngredientRow(ing))
	}
	m.applyFocus()
	return m
}

func newIngredientRow(ing models.Ingredient) ingredientRow {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "食材名"
	name.CharLimit = 40
	name.Width = 20
	name.SetValue(ing.Name)

	amount := textinput.New()
	amount.Prompt = ""
	amount.Placeholder = "0"
	amount.CharLimit = 6
	amount.Width = 6
	amount.SetValue(ing.Amount)

	return ingredientRow{id: ing.ID, name: name, amount: amount}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, textarea.Blink)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.syncTranscript()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case requestDoneMsg:
		if msg.seq != m.seq {
			return m, nil // reset while in flight
		}
		m.loading = false
		m.textarea.SetValue(m.session.Input())
		m.syncTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.busy() {
			m.spinner, cmd = m.spinner.Update(msg)
			// the follow-up's user message is appended once the request starts
			m.syncTranscript()
			return m, cmd
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+s":
		return m.submit()

	case "ctrl+r":
		m.reset()
		return m, nil

	case "ctrl+n":
		m.addRow()
		return m, nil

	case "ctrl+d":
		m.removeFocusedRow()
		return m, nil

	case "tab":
		m.moveFocus(1)
		return m, nil

	case "shift+tab":
		m.moveFocus(-1)
		return m, nil

	case "pgup", "pgdown":
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "up", "down":
		if !m.inputFocused() {
			step := 2
			if msg.String() == "up" {
				step = -2
			}
			m.moveFocusBy(step)
			return m, nil
		}

	case "alt+enter":
		if m.inputFocused() && !m.busy() {
			m.textarea.InsertString("\n")
		}
		return m, nil

	case "enter":
		if m.inputFocused() {
			return m.sendFollowUp()
		}
		return m.submit()
	}

	if m.inputFocused() {
		if m.busy() {
			return m, nil
		}
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m.updateRow(msg)
}

// updateRow forwards a key to the focused row input and mirrors the value
// into the editor. Amounts accept digits only.
func (m Model) updateRow(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx, field := m.focusedField()
	if idx < 0 {
		return m, nil
	}
	row := &m.rows[idx]

	var cmd tea.Cmd
	if field == recipe.FieldAmount {
		if msg.Type == tea.KeyRunes && !allDigits(msg.Runes) {
			return m, nil
		}
		row.amount, cmd = row.amount.Update(msg)
		m.editor.Update(row.id, recipe.FieldAmount, row.amount.Value())
	} else {
		row.name, cmd = row.name.Update(msg)
		m.editor.Update(row.id, recipe.FieldName, row.name.Value())
	}
	return m, cmd
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (m Model) busy() bool {
	return m.loading || m.session.Loading()
}

// CanSubmit reports whether the submit control is enabled
func (m Model) CanSubmit() bool {
	return !m.busy() && m.editor.HasNamedIngredient()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.CanSubmit() {
		return m, nil
	}
	m.loading = true
	m.seq++

	ctx, session, editor, seq := m.ctx, m.session, m.editor, m.seq
	return m, tea.Batch(
		func() tea.Msg {
			return requestDoneMsg{seq: seq, err: session.SubmitIngredients(ctx, editor)}
		},
		m.spinner.Tick,
	)
}

func (m Model) sendFollowUp() (tea.Model, tea.Cmd) {
	text := m.textarea.Value()
	if m.busy() || strings.TrimSpace(text) == "" || m.session.State() != chat.Active {
		return m, nil
	}
	m.session.SetInput(text)
	m.loading = true
	m.seq++

	ctx, session, seq := m.ctx, m.session, m.seq
	return m, tea.Batch(
		func() tea.Msg {
			return requestDoneMsg{seq: seq, err: session.SendFollowUp(ctx, text)}
		},
		m.spinner.Tick,
	)
}

func (m *Model) reset() {
	m.session.Reset()
	m.loading = false
	m.seq++
	m.textarea.Reset()
	m.syncTranscript()
}

func (m *Model) addRow() {
	ing := m.editor.Add()
	m.rows = append(m.rows, newIngredientRow(ing))
	m.focus = 2 * (len(m.rows) - 1)
	m.applyFocus()
	m.layout()
}

func (m *Model) removeFocusedRow() {
	idx, _ := m.focusedField()
	if idx < 0 {
		return
	}
	m.editor.Remove(m.rows[idx].id)
	m.rows = append(m.rows[:idx], m.rows[idx+1:]...)
	if m.focus > m.inputIndex() {
		m.focus = m.inputIndex()
	}
	if idx >= len(m.rows) && len(m.rows) > 0 {
		m.focus = 2 * (len(m.rows) - 1)
	}
	m.applyFocus()
	m.layout()
}

func (m Model) inputIndex() int {
	return 2 * len(m.rows)
}

func (m Model) inputFocused() bool {
	return m.focus == m.inputIndex()
}

// focusedField returns the focused row index and field, or -1
func (m Model) focusedField() (int, string) {
	if m.inputFocused() {
		return -1, ""
	}
	field := recipe.FieldName
	if m.focus%2 == 1 {
		field = recipe.FieldAmount
	}
	return m.focus / 2, field
}

// moveFocus cycles through every field and the follow-up input
func (m *Model) moveFocus(delta int) {
	n := m.inputIndex() + 1
	m.focus = ((m.focus+delta)%n + n) % n
	m.applyFocus()
}

// moveFocusBy moves without wrapping
func (m *Model) moveFocusBy(delta int) {
	next := m.focus + delta
	switch {
	case next < 0:
		return
	case next >= m.inputIndex():
		next = m.inputIndex()
	}
	m.focus = next
	m.applyFocus()
}

func (m *Model) applyFocus() {
	for i := range m.rows {
		m.rows[i].name.Blur()
		m.rows[i].amount.Blur()
	}
	m.textarea.Blur()

	if m.inputFocused() {
		m.textarea.Focus()
		return
	}
	idx, field := m.focusedField()
	if field == recipe.FieldAmount {
		m.rows[idx].amount.Focus()
	} else {
		m.rows[idx].name.Focus()
	}
}

const (
	headerHeight = 3
	inputHeight  = 5
	statusHeight = 1
)

func (m Model) formHeight() int {
	return len(m.rows) + 4 // border, title, submit line
}

func (m *Model) layout() {
	if !m.ready {
		return
	}
	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}
	vpHeight := m.height - headerHeight - m.formHeight() - inputHeight - statusHeight - 2
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = contentWidth
	m.viewport.Height = vpHeight
	m.textarea.SetWidth(contentWidth - 4)
}

// syncTranscript renders the session transcript into the viewport
func (m *Model) syncTranscript() {
	messages := m.session.Messages()
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}

	var content strings.Builder
	for i, msg := range messages {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderMessage(msg, bubbleWidth))
		content.WriteString("\n")
	}
	m.viewport.SetContent(content.String())
}

func (m Model) renderMessage(msg models.Message, width int) string {
	switch {
	case msg.IsIngredientList:
		var list strings.Builder
		for i, item := range strings.Split(msg.Text, recipe.ListSeparator) {
			if i > 0 {
				list.WriteString("\n")
			}
			list.WriteString("• " + item)
		}
		return userLabelStyle.Render(msg.Label()) + "\n" + userBubbleStyle.Width(width).Render(list.String())

	case msg.IsUser():
		return userLabelStyle.Render(msg.Label()) + "\n" + userBubbleStyle.Width(width).Render(msg.Text)

	default:
		rendered, err := render.Markdown(msg.Text, m.renderOpts.WithWidth(width-4))
		if err != nil {
			rendered = msg.Text
		}
		return assistantLabelStyle.Render("✦ "+msg.Label()) + "\n" + assistantBubbleStyle.Width(width).Render(rendered)
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	sections := []string{
		m.renderHeader(contentWidth),
		m.renderForm(contentWidth),
	}

	var transcript string
	if len(m.session.Messages()) == 0 {
		transcript = m.renderWelcome()
	} else {
		transcript = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.Width(contentWidth).Height(m.viewport.Height).Render(transcript))

	var input string
	if m.busy() {
		input = m.spinner.View() + loadingStyle.Render(" シェフが考えています...")
	} else {
		input = lipgloss.JoinVertical(lipgloss.Left, inputLabelStyle.Render("質問"), m.textarea.View())
	}
	sections = append(sections,
		inputPanelStyle.Width(contentWidth).Render(input),
		m.renderStatusBar(contentWidth),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(width int) string {
	content := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ kondate"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.modelName),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.session.State().String()),
	)
	return headerStyle.Width(width).Render(content)
}

func (m Model) renderForm(width int) string {
	lines := []string{fieldLabelStyle.Render("食材と分量")}
	focusedRow, _ := m.focusedField()

	for i, row := range m.rows {
		cursor := "  "
		if i == focusedRow {
			cursor = rowCursorStyle.Render("▸ ")
		}
		lines = append(lines, cursor+row.name.View()+"  "+row.amount.View()+unitStyle.Render(" g"))
	}

	submit := "ctrl+s  レシピを提案"
	if m.CanSubmit() {
		lines = append(lines, submitReadyStyle.Render(submit))
	} else {
		lines = append(lines, submitMutedStyle.Render(submit))
	}
	return formPanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeTitleStyle.Width(width).Render("今日の献立"),
		"",
		welcomeStyle.Width(width).Render("食材と分量を入力して ctrl+s でレシピを提案します"),
	)
	top := (m.viewport.Height - lipgloss.Height(content)) / 2
	if top < 0 {
		top = 0
	}
	return strings.Repeat("\n", top) + content
}

func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"ctrl+n", "追加"},
		{"ctrl+d", "削除"},
		{"tab", "移動"},
		{"ctrl+s", "提案"},
		{"ctrl+r", "リセット"},
		{"esc", "終了"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunChat starts the TUI and blocks until the user quits
func RunChat(ctx context.Context, session SessionInterface, editor *recipe.Editor, modelName string, opts render.Options) error {
	m := NewChatModel(ctx, session, editor, modelName, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
