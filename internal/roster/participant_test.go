package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/rosterbot/internal/pager"
)

// ---------------------------------------------------------------------------
// Validate
// ---------------------------------------------------------------------------

func TestParticipantValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Participant
		wantErr error
	}{
		{"valid", Participant{FirstName: "Ada", LastName: "Lovelace", Role: RoleSpeaker}, nil},
		{"last name only", Participant{LastName: "Hopper", Role: RoleGuest}, nil},
		{"no name", Participant{Role: RoleGuest}, ErrMissingName},
		{"whitespace name", Participant{FirstName: "  ", Role: RoleGuest}, ErrMissingName},
		{"bad role", Participant{FirstName: "Ada", Role: Role("vip")}, ErrUnknownRole},
		{"empty role", Participant{FirstName: "Ada"}, ErrUnknownRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParticipantFullName(t *testing.T) {
	tests := []struct {
		name string
		p    Participant
		want string
	}{
		{"both names", Participant{FirstName: "Ada", LastName: "Lovelace"}, "Lovelace Ada"},
		{"last only", Participant{LastName: "Hopper"}, "Hopper"},
		{"first only", Participant{FirstName: "Grace"}, "Grace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.FullName())
		})
	}
}

// ---------------------------------------------------------------------------
// Filters
// ---------------------------------------------------------------------------

func TestRoleFilterRoundTrip(t *testing.T) {
	for _, role := range Roles() {
		t.Run(role.String(), func(t *testing.T) {
			got, err := ParseFilter(RoleFilter(role))
			require.NoError(t, err)
			assert.Equal(t, role, got)
		})
	}

	t.Run("all", func(t *testing.T) {
		assert.Equal(t, pager.FilterAll, RoleFilter(""))
		got, err := ParseFilter(pager.FilterAll)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestParseFilterRejectsGarbage(t *testing.T) {
	tests := []struct {
		name   string
		filter pager.Filter
	}{
		{"no prefix", pager.Filter("speaker")},
		{"unknown role", pager.Filter("role:vip")},
		{"wrong key", pager.Filter("table:4")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(tt.filter)
			assert.Error(t, err)
		})
	}
}
