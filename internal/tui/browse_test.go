package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/rosterbot/internal/nav"
	"github.com/rshade/rosterbot/internal/pager"
	"github.com/rshade/rosterbot/internal/roster"
	"github.com/rshade/rosterbot/internal/source"
)

func newTestModel(t *testing.T, count int) *BrowseModel {
	t.Helper()

	src := source.NewMemorySource()
	records := make([]pager.Record, count)
	for i := range records {
		records[i] = &roster.Participant{
			ID:        int64(i + 1),
			FirstName: "Test",
			LastName:  fmt.Sprintf("Person-%02d", i),
			Role:      roster.RoleGuest,
		}
	}
	src.SetRecords(pager.FilterAll, records)

	formatter := roster.NewFormatter("en", nil)
	manager := nav.NewManager(src, formatter, formatter.Envelope(), nav.DefaultLimits(), zerolog.Nop())
	return NewBrowseModel(manager, formatter)
}

// drain runs the model's pending command and feeds the message back in.
func drain(t *testing.T, m *BrowseModel, cmd tea.Cmd) *BrowseModel {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	updated, _ := m.Update(msg)
	model, ok := updated.(*BrowseModel)
	require.True(t, ok)
	return model
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func TestBrowseModelInitialPage(t *testing.T) {
	m := newTestModel(t, 10)
	m = drain(t, m, m.Init())

	view := m.View()
	assert.Contains(t, view, "Roster")
	assert.Contains(t, view, "filter: everyone")
	assert.Contains(t, view, "Person-00")
	assert.Contains(t, view, "next page")
}

func TestBrowseModelLoadingState(t *testing.T) {
	m := newTestModel(t, 10)
	_ = m.Init() // command not yet executed
	assert.Contains(t, m.View(), "loading")
}

// ---------------------------------------------------------------------------
// Key handling
// ---------------------------------------------------------------------------

func TestBrowseModelNextPrev(t *testing.T) {
	m := newTestModel(t, 200)
	m = drain(t, m, m.Init())
	require.True(t, m.page.HasNext)
	firstView := m.page.Text

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	m = drain(t, m, cmd)
	assert.True(t, m.page.HasPrev)
	assert.NotEqual(t, firstView, m.page.Text)

	_, cmd = m.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	m = drain(t, m, cmd)
	assert.Equal(t, firstView, m.page.Text)
}

func TestBrowseModelPrevIgnoredOnFirstPage(t *testing.T) {
	m := newTestModel(t, 10)
	m = drain(t, m, m.Init())
	require.False(t, m.page.HasPrev)

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd)
}

func TestBrowseModelFilterCycles(t *testing.T) {
	m := newTestModel(t, 10)
	m = drain(t, m, m.Init())

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	m = drain(t, m, cmd)
	assert.Contains(t, m.View(), "filter: guest")

	// No guests registered under the role filter key in the memory
	// source, so the empty state shows.
	assert.Contains(t, m.View(), "No participants match this view.")
}

func TestBrowseModelQuitEndsSession(t *testing.T) {
	m := newTestModel(t, 10)
	m = drain(t, m, m.Init())

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBrowseModelIgnoresNavigationWhileLoading(t *testing.T) {
	m := newTestModel(t, 200)
	m = drain(t, m, m.Init())

	// First press kicks off a render; second press while loading is dropped.
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, cmd)
	_, second := m.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, second)

	m = drain(t, m, cmd)
	ids := m.page.Text
	assert.True(t, strings.Contains(ids, "Person-"))
}

// ---------------------------------------------------------------------------
// Window sizing
// ---------------------------------------------------------------------------

func TestBrowseModelResize(t *testing.T) {
	m := newTestModel(t, 10)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model, ok := updated.(*BrowseModel)
	require.True(t, ok)
	assert.Equal(t, 120, model.width)
	assert.Equal(t, 40, model.height)
}
