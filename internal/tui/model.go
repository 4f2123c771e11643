// Package tui is the interactive checklist editor.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"nenkin/internal/checklist"
	"nenkin/internal/output"
	"nenkin/internal/service"
)

// FlashDuration is how long the saved confirmation stays visible.
const FlashDuration = 2 * time.Second

const (
	savedText       = "✓ 保存しました"
	savingText      = "保存中..."
	waitForSave     = "保存中です。完了してから終了してください"
	unsavedWarning  = "未保存の変更があります。もう一度 q を押すと終了します"
	nothingToSave   = "保存する項目がありません"
	placeholderText = "ここに確認内容や回答を入力してください"
)

// saveDoneMsg carries the result of an asynchronous save.
type saveDoneMsg struct {
	version int
	result  service.SaveResult
	err     error
}

// flashExpiredMsg clears the flash it was scheduled for.
type flashExpiredMsg struct {
	seq int
}

// Model is the Bubble Tea model of the editor.
type Model struct {
	ctx     context.Context
	backend service.Backend
	keys    keyMap
	help    help.Model

	items  []checklist.Item
	cursor int // index into display order

	editing bool
	editID  string
	editor  textarea.Model

	// version counts edits; savedVersion is the version last persisted.
	version      int
	savedVersion int
	saving       bool

	flash      string
	flashSeq   int
	status     string
	quitWarned bool

	width int
}

// New creates the editor over items as loaded from b. loadErr, if set, is
// shown in the status line.
func New(ctx context.Context, b service.Backend, items []checklist.Item, loadErr error) Model {
	ta := textarea.New()
	ta.Placeholder = placeholderText
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(3)

	m := Model{
		ctx:     ctx,
		backend: b,
		keys:    defaultKeys(),
		help:    help.New(),
		items:   items,
		editor:  ta,
		width:   80,
	}
	if loadErr != nil {
		m.status = loadStatus(loadErr)
	}
	return m
}

func loadStatus(err error) string {
	if errors.Is(err, service.ErrParse) {
		return fmt.Sprintf("warning: %v (showing the default checklist)", err)
	}
	return fmt.Sprintf("error: %v", err)
}

// Items returns the current in-memory checklist.
func (m Model) Items() []checklist.Item { return m.items }

// Dirty reports whether there are edits not yet saved.
func (m Model) Dirty() bool { return m.version != m.savedVersion }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor.SetWidth(max(msg.Width-6, 20))
		m.help.Width = msg.Width
		return m, nil

	case saveDoneMsg:
		return m.saveDone(msg)

	case flashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Abort) {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateEditor(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ordered := checklist.DisplayOrder(m.items)

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.saving {
			m.status = waitForSave
			return m, nil
		}
		if m.Dirty() && !m.quitWarned {
			m.quitWarned = true
			m.status = unsavedWarning
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(ordered)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if len(ordered) == 0 {
			return m, nil
		}
		m.items, _ = checklist.Toggle(m.items, ordered[m.cursor].ID)
		m.touch()

	case key.Matches(msg, m.keys.Edit):
		if len(ordered) == 0 {
			return m, nil
		}
		it := ordered[m.cursor]
		m.editing = true
		m.editID = it.ID
		m.editor.SetValue(it.Answer)
		return m, m.editor.Focus()

	case key.Matches(msg, m.keys.Save):
		return m.save()
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.items, _ = checklist.SetAnswer(m.items, m.editID, m.editor.Value())
		m.touch()
		m.closeEditor()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.closeEditor()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) closeEditor() {
	m.editing = false
	m.editID = ""
	m.editor.Blur()
	m.editor.Reset()
}

func (m *Model) touch() {
	m.version++
	m.quitWarned = false
}

// save starts an asynchronous save. Only one save runs at a time.
func (m Model) save() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	if len(m.items) == 0 {
		m.status = nothingToSave
		return m, nil
	}

	m.saving = true
	m.status = savingText
	b, ctx, version := m.backend, m.ctx, m.version
	snapshot := append([]checklist.Item(nil), m.items...)
	return m, func() tea.Msg {
		res, err := b.Save(ctx, snapshot)
		return saveDoneMsg{version: version, result: res, err: err}
	}
}

func (m Model) saveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.status = fmt.Sprintf("error: %v (%s)", msg.err, msg.result)
		return m, nil
	}

	m.savedVersion = msg.version
	m.status = ""
	m.quitWarned = false
	m.flash = savedText
	m.flashSeq++
	seq := m.flashSeq
	return m, tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}

func (m Model) View() string {
	var b strings.Builder

	done, total := checklist.Progress(m.items)
	b.WriteString(titleStyle.Render(checklist.Title) + "\n")
	b.WriteString(mutedStyle.Render(checklist.Subtitle) + "\n")
	b.WriteString(deadlineStyle.Render("⏰ "+checklist.Deadline) + "\n")
	fmt.Fprintf(&b, "%d/%d %s\n", done, total, output.ProgressBar(done, total, output.BarWidth))

	if len(m.items) == 0 {
		b.WriteString("\n" + mutedStyle.Render("(no items)") + "\n")
	}

	i := 0
	for _, g := range checklist.GroupBySection(m.items) {
		b.WriteString("\n" + sectionStyle.Render(g.Section) + "\n")
		for _, it := range g.Items {
			b.WriteString(m.renderItem(it, i == m.cursor))
			if m.editing && it.ID == m.editID {
				b.WriteString(editorStyle.Render(m.editor.View()) + "\n")
			}
			i++
		}
	}

	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString(flashStyle.Render(m.flash) + "\n")
	}
	if m.status != "" {
		style := mutedStyle
		if strings.HasPrefix(m.status, "error:") || m.status == unsavedWarning {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	if m.editing {
		b.WriteString(m.help.ShortHelpView(m.keys.editorHelp()))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderItem(it checklist.Item, selected bool) string {
	box := mutedStyle.Render(boxUnchecked)
	title := it.Title
	if it.Checked {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}

	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s\n", prefix, box, title)
	fmt.Fprintf(&b, "     %s\n", mutedStyle.Render(it.Question))
	if answer := strings.TrimSpace(it.Answer); answer != "" && !(m.editing && it.ID == m.editID) {
		for _, line := range strings.Split(answer, "\n") {
			fmt.Fprintf(&b, "     %s\n", line)
		}
	}
	return b.String()
}

// Run starts the editor full screen and blocks until the user quits.
func Run(ctx context.Context, b service.Backend, items []checklist.Item, loadErr error, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, b, items, loadErr), opts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
