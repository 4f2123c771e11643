package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nenkin/internal/checklist"
	"nenkin/internal/service"
	"nenkin/internal/testutil"
)

func items() []checklist.Item {
	return []checklist.Item{
		{ID: "hospital-1", Section: "病院", Title: "診断書", Question: "作成済み？"},
		{ID: "pension-1", Section: "年金", Title: "加入状況", Question: "どちら？"},
		{ID: "hospital-2", Section: "病院", Title: "診療記録", Question: "5年分？"},
	}
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	space  = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter  = tea.KeyMsg{Type: tea.KeyEnter}
	escKey = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlS  = tea.KeyMsg{Type: tea.KeyCtrlS}
	ctrlC  = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNavigationFollowsDisplayOrder(t *testing.T) {
	m := New(context.Background(), testutil.NewFakeBackend(nil), items(), nil)

	// display order: hospital-1, hospital-2, pension-1
	m, _ = send(t, m, runes("j"), space)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, space)

	got, _ := checklist.Find(m.Items(), "hospital-2")
	assert.True(t, got.Checked)
	got, _ = checklist.Find(m.Items(), "pension-1")
	assert.True(t, got.Checked, "cursor stops at the last item")
	got, _ = checklist.Find(m.Items(), "hospital-1")
	assert.False(t, got.Checked)

	m, _ = send(t, m, runes("k"), runes("k"), runes("k"), space)
	got, _ = checklist.Find(m.Items(), "hospital-1")
	assert.True(t, got.Checked, "cursor stops at the first item")
	assert.True(t, m.Dirty())
}

func TestToggleTwiceRestores(t *testing.T) {
	m := New(context.Background(), testutil.NewFakeBackend(nil), items(), nil)

	m, _ = send(t, m, space, space)

	assert.Equal(t, items(), m.Items())
}

func TestEditAnswer(t *testing.T) {
	m := New(context.Background(), testutil.NewFakeBackend(nil), items(), nil)

	m, _ = send(t, m, enter)
	require.True(t, m.editing)
	m, _ = send(t, m, runes("受け取り済み"), ctrlS)

	assert.False(t, m.editing)
	got, _ := checklist.Find(m.Items(), "hospital-1")
	assert.Equal(t, "受け取り済み", got.Answer)
	assert.True(t, m.Dirty())
}

func TestEditCancelKeepsAnswer(t *testing.T) {
	m := New(context.Background(), testutil.NewFakeBackend(nil), items(), nil)

	m, _ = send(t, m, enter, runes("draft"), escKey)

	assert.False(t, m.editing)
	assert.Equal(t, items(), m.Items())
	assert.False(t, m.Dirty())
}

func TestKeysGoToEditorWhileEditing(t *testing.T) {
	m := New(context.Background(), testutil.NewFakeBackend(nil), items(), nil)

	m, cmd := send(t, m, enter, runes("q"), runes("s"))

	assert.False(t, isQuit(cmd))
	assert.False(t, m.saving)
	assert.Equal(t, "qs", m.editor.Value())
}

func TestSaveSuccessShowsFlash(t *testing.T) {
	fb := testutil.NewFakeBackend(items())
	m := New(context.Background(), fb, items(), nil)

	m, _ = send(t, m, space)
	m, cmd := send(t, m, runes("s"))
	require.NotNil(t, cmd)
	assert.True(t, m.saving)

	// a second press while saving is ignored
	_, again := send(t, m, runes("s"))
	assert.Nil(t, again)

	m, tick := send(t, m, cmd())
	assert.False(t, m.saving)
	assert.False(t, m.Dirty())
	assert.Equal(t, savedText, m.flash)
	assert.NotNil(t, tick)
	assert.Contains(t, m.View(), savedText)
	assert.Equal(t, 1, fb.Saves)
	assert.Equal(t, m.Items(), fb.Items())

	m, _ = send(t, m, flashExpiredMsg{seq: m.flashSeq})
	assert.Empty(t, m.flash)
	assert.NotContains(t, m.View(), savedText)
}

func TestStaleFlashExpiryIgnored(t *testing.T) {
	m := New(context.Background(), testutil.NewFakeBackend(items()), items(), nil)

	m, cmd := send(t, m, runes("s"))
	m, _ = send(t, m, cmd())
	m, cmd = send(t, m, runes("s"))
	m, _ = send(t, m, cmd())

	m, _ = send(t, m, flashExpiredMsg{seq: m.flashSeq - 1})
	assert.Equal(t, savedText, m.flash)
}

func TestEditDuringSaveStaysDirty(t *testing.T) {
	m := New(context.Background(), testutil.NewFakeBackend(items()), items(), nil)

	m, cmd := send(t, m, space, runes("s"))
	done := cmd()
	m, _ = send(t, m, runes("j"), space, done)

	assert.True(t, m.Dirty(), "edits made while saving are not covered by that save")
}

func TestSaveFailureKeepsState(t *testing.T) {
	fb := testutil.NewFakeBackend(items())
	fb.SaveErr = errors.New("unavailable")
	fb.SaveRes = service.SaveResult{Succeeded: []string{"hospital-1"}, FailedID: "hospital-2", Remaining: []string{"pension-1"}}
	m := New(context.Background(), fb, items(), nil)

	m, _ = send(t, m, space)
	edited := m.Items()
	m, cmd := send(t, m, runes("s"))
	m, _ = send(t, m, cmd())

	assert.False(t, m.saving)
	assert.True(t, m.Dirty())
	assert.Empty(t, m.flash)
	assert.Equal(t, edited, m.Items())
	assert.Contains(t, m.status, "unavailable")
	assert.Contains(t, m.status, "not attempted: pension-1")

	// retry after the condition clears
	fb.SaveErr = nil
	m, cmd = send(t, m, runes("s"))
	m, _ = send(t, m, cmd())
	assert.False(t, m.Dirty())
	assert.Equal(t, edited, fb.Items())
}

func TestSaveEmptyRefused(t *testing.T) {
	fb := testutil.NewFakeBackend(nil)
	m := New(context.Background(), fb, []checklist.Item{}, errors.New("load failed"))

	m, cmd := send(t, m, runes("s"))

	assert.Nil(t, cmd)
	assert.Equal(t, nothingToSave, m.status)
	assert.Equal(t, 0, fb.Saves)
}

func TestQuitWarnsOnceWhenDirty(t *testing.T) {
	m := New(context.Background(), testutil.NewFakeBackend(nil), items(), nil)

	m, cmd := send(t, m, space, runes("q"))
	assert.False(t, isQuit(cmd))
	assert.Equal(t, unsavedWarning, m.status)

	_, cmd = send(t, m, runes("q"))
	assert.True(t, isQuit(cmd))
}

func TestQuitCleanAndAbort(t *testing.T) {
	m := New(context.Background(), testutil.NewFakeBackend(nil), items(), nil)

	_, cmd := send(t, m, runes("q"))
	assert.True(t, isQuit(cmd))

	_, cmd = send(t, m, space, ctrlC)
	assert.True(t, isQuit(cmd))
}

func TestViewGroupsSections(t *testing.T) {
	in := items()
	in[2].Answer = "5年分あり"
	m := New(context.Background(), testutil.NewFakeBackend(nil), in, nil)

	v := m.View()

	assert.Contains(t, v, checklist.Title)
	assert.Contains(t, v, "0/3")
	h := strings.Index(v, "診断書")
	r := strings.Index(v, "診療記録")
	p := strings.Index(v, "加入状況")
	require.True(t, h >= 0 && p >= 0 && r >= 0)
	assert.Less(t, h, r)
	assert.Less(t, r, p, "hospital-2 renders in the first section")
	assert.Contains(t, v, "5年分あり")
}

func TestLoadErrorShown(t *testing.T) {
	m := New(context.Background(), testutil.NewFakeBackend(nil), []checklist.Item{}, service.ErrLoadTimeout)

	v := m.View()

	assert.Contains(t, v, "error: load timed out")
	assert.Contains(t, v, "(no items)")

	m = New(context.Background(), testutil.NewFakeBackend(nil), checklist.Seed(), service.ErrParse)
	assert.Contains(t, m.status, "warning:")
}

func TestQuitIgnoredWhileSaving(t *testing.T) {
	fb := testutil.NewFakeBackend(items())
	m := New(context.Background(), fb, items(), nil)

	m, save := send(t, m, runes("s"))
	require.NotNil(t, save)
	require.False(t, m.Dirty())

	m, cmd := send(t, m, runes("q"))
	assert.False(t, isQuit(cmd))
	assert.Equal(t, waitForSave, m.status)

	m, _ = send(t, m, save())
	_, cmd = send(t, m, runes("q"))
	assert.True(t, isQuit(cmd))
}
