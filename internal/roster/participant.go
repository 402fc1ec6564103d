package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/rosterbot/internal/pager"
)

// Role classifies a participant within the event.
type Role string

// Known participant roles.
const (
	RoleGuest     Role = "guest"
	RoleSpeaker   Role = "speaker"
	RoleOrganizer Role = "organizer"
	RoleStaff     Role = "staff"
)

// Roles lists every known role in display order.
func Roles() []Role {
	return []Role{RoleGuest, RoleSpeaker, RoleOrganizer, RoleStaff}
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleSpeaker, RoleOrganizer, RoleStaff:
		return true
	default:
		return false
	}
}

// String returns the role token.
func (r Role) String() string {
	return string(r)
}

// Participant validation errors.
var (
	ErrMissingName = errors.New("participant name is required")
	ErrUnknownRole = errors.New("unknown participant role")
)

// Participant is one row of the event roster. The schema is fixed; optional
// contact fields may be empty.
type Participant struct {
	ID        int64
	FirstName string
	LastName  string
	Role      Role
	Email     string
	Phone     string
	Table     int
	Notes     string
}

// RecordID implements pager.Record.
func (p *Participant) RecordID() int64 {
	return p.ID
}

// Validate checks the participant against the documented shape. A failing
// participant is still storable; it just cannot be rendered.
func (p *Participant) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" && strings.TrimSpace(p.LastName) == "" {
		return ErrMissingName
	}
	if !p.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, p.Role)
	}
	return nil
}

// FullName returns "Last First" with whichever parts are present.
func (p *Participant) FullName() string {
	parts := make([]string, 0, 2)
	if p.LastName != "" {
		parts = append(parts, p.LastName)
	}
	if p.FirstName != "" {
		parts = append(parts, p.FirstName)
	}
	return strings.Join(parts, " ")
}

// RoleFilter builds the pager filter token selecting a single role.
// The zero role yields pager.FilterAll.
func RoleFilter(r Role) pager.Filter {
	if r == "" {
		return pager.FilterAll
	}
	return pager.Filter("role:" + string(r))
}

// ParseFilter inverts RoleFilter. Unknown tokens select nothing and are
// reported so the caller can answer the user instead of showing an empty
// page silently.
func ParseFilter(f pager.Filter) (Role, error) {
	if f == pager.FilterAll {
		return "", nil
	}
	token, ok := strings.CutPrefix(string(f), "role:")
	if !ok {
		return "", fmt.Errorf("unrecognized filter %q", f)
	}
	role := Role(token)
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return role, nil
}
