package roster

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys rendered by the formatter and envelope. The English strings
// double as catalog keys.
const (
	msgHeader      = "items %d-%d of %d"
	msgEmpty       = "No participants match this view."
	msgUnavailable = "These participants cannot be shown right now."
	msgRetry       = "The participant list is temporarily unavailable. Please try again."
	msgEmail       = "Email"
	msgPhone       = "Phone"
	msgTable       = "Table"
	msgNotes       = "Notes"
	msgGuest       = "Guest"
	msgSpeaker     = "Speaker"
	msgOrganizer   = "Organizer"
	msgStaff       = "Staff"
)

// SupportedLocales lists the locales with registered catalogs. Anything else
// falls back to English via the matcher.
func SupportedLocales() []language.Tag {
	return []language.Tag{language.English, language.Spanish}
}

//nolint:gochecknoinits // catalog entries must exist before any printer is built
func init() {
	for _, entry := range []struct {
		tag language.Tag
		key string
		msg string
	}{
		{language.Spanish, msgHeader, "elementos %d-%d de %d"},
		{language.Spanish, msgEmpty, "Ningún participante coincide con esta vista."},
		{language.Spanish, msgUnavailable, "Estos participantes no se pueden mostrar en este momento."},
		{language.Spanish, msgRetry, "La lista de participantes no está disponible. Inténtalo de nuevo."},
		{language.Spanish, msgEmail, "Correo"},
		{language.Spanish, msgPhone, "Teléfono"},
		{language.Spanish, msgTable, "Mesa"},
		{language.Spanish, msgNotes, "Notas"},
		{language.Spanish, msgGuest, "Invitado"},
		{language.Spanish, msgSpeaker, "Ponente"},
		{language.Spanish, msgOrganizer, "Organizador"},
		{language.Spanish, msgStaff, "Personal"},
	} {
		if err := message.SetString(entry.tag, entry.key, entry.msg); err != nil {
			panic(err)
		}
	}
}

// NewPrinter returns a message printer for the requested locale, matched
// against the supported set. Unrecognized locales get English.
func NewPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	matcher := language.NewMatcher(SupportedLocales())
	matched, _, _ := matcher.Match(tag)
	return message.NewPrinter(matched)
}

// roleLabel returns the localized display name for a role.
func roleLabel(p *message.Printer, r Role) string {
	switch r {
	case RoleGuest:
		return p.Sprintf(msgGuest)
	case RoleSpeaker:
		return p.Sprintf(msgSpeaker)
	case RoleOrganizer:
		return p.Sprintf(msgOrganizer)
	case RoleStaff:
		return p.Sprintf(msgStaff)
	default:
		return string(r)
	}
}
