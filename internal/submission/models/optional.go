package models

import "strings"

// Sentinel strings written on the wire in place of unavailable data. They are
// valid values, not errors.
const (
	UnknownFormSentinel   = "Unknown Form"
	EmailNotFoundSentinel = "Email Not Found"
)

// FormLabel is the human-readable title of a submitted form, or the explicit
// "unknown" state. The zero value is unknown.
type FormLabel struct {
	value string
}

// KnownLabel returns a label for title. Blank titles and the sentinel itself
// collapse to the unknown label.
func KnownLabel(title string) FormLabel {
	title = strings.TrimSpace(title)
	if title == "" || title == UnknownFormSentinel {
		return FormLabel{}
	}
	return FormLabel{value: title}
}

// UnknownLabel is the label used when no title could be derived.
func UnknownLabel() FormLabel {
	return FormLabel{}
}

func (l FormLabel) Known() bool {
	return l.value != ""
}

// String returns the title, or the sentinel when unknown.
func (l FormLabel) String() string {
	if !l.Known() {
		return UnknownFormSentinel
	}
	return l.value
}

func (l FormLabel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *FormLabel) UnmarshalText(text []byte) error {
	*l = KnownLabel(string(text))
	return nil
}

// Identity is the submitting user's account identifier, or the explicit
// "not found" state. The zero value is not found.
type Identity struct {
	email string
}

// ResolvedIdentity wraps an email returned by the identity capability verbatim.
// Only the empty string and the sentinel are treated as unresolved.
func ResolvedIdentity(email string) Identity {
	if email == "" || email == EmailNotFoundSentinel {
		return Identity{}
	}
	return Identity{email: email}
}

// UnresolvedIdentity is used when the identity lookup failed or returned nothing.
func UnresolvedIdentity() Identity {
	return Identity{}
}

func (i Identity) Resolved() bool {
	return i.email != ""
}

// String returns the email, or the sentinel when unresolved.
func (i Identity) String() string {
	if !i.Resolved() {
		return EmailNotFoundSentinel
	}
	return i.email
}

func (i Identity) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Identity) UnmarshalText(text []byte) error {
	*i = ResolvedIdentity(string(text))
	return nil
}
