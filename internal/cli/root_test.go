package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args against a temp database.
func runCommand(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ROSTERBOT_DB", dbPath)

	cmd := NewRootCmd("test")
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// ---------------------------------------------------------------------------
// Command wiring
// ---------------------------------------------------------------------------

func TestRootCmdHasSubcommands(t *testing.T) {
	cmd := NewRootCmd("1.2.3")

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["browse"])
	assert.True(t, names["list"])
	assert.True(t, names["seed"])
	assert.Equal(t, "1.2.3", cmd.Version)
}

// ---------------------------------------------------------------------------
// seed + list round trip
// ---------------------------------------------------------------------------

func TestSeedThenList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "roster.db")

	out, err := runCommand(t, dbPath, "seed", "--count", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 12 participants")

	out, err = runCommand(t, dbPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "of 12")
	assert.Contains(t, out, "<b>")
}

func TestListAllWalksEveryPage(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "roster.db")

	_, err := runCommand(t, dbPath, "seed", "--count", "45")
	require.NoError(t, err)

	out, err := runCommand(t, dbPath, "list", "--all")
	require.NoError(t, err)

	// Every seeded participant appears exactly once across the pages.
	for i := 0; i < 45; i++ {
		email := fmt.Sprintf("participant%02d@example.com", i)
		assert.Equal(t, 1, strings.Count(out, email), "participant %d", i)
	}
}

func TestListRejectsUnknownRole(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "roster.db")

	_, err := runCommand(t, dbPath, "seed", "--count", "4")
	require.NoError(t, err)

	_, err = runCommand(t, dbPath, "list", "--role", "vip")
	assert.Error(t, err)
}

func TestListRoleFilter(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "roster.db")

	// Roles cycle guest, speaker, organizer, staff: 3 of 12 are speakers.
	_, err := runCommand(t, dbPath, "seed", "--count", "12")
	require.NoError(t, err)

	out, err := runCommand(t, dbPath, "list", "--role", "speaker")
	require.NoError(t, err)
	assert.Contains(t, out, "of 3")
}
