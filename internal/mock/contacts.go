package mock

import "strings"

// Contact is a person money can be sent to or requested from.
type Contact struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

var recentContacts = []Contact{
	{ID: "1", Name: "Sarah Williams", Email: "sarah.williams@example.com"},
	{ID: "2", Name: "Michael Brown", Email: "michael.brown@example.com"},
	{ID: "3", Name: "Jessica Taylor", Email: "jessica.taylor@example.com"},
	{ID: "4", Name: "David Miller", Email: "david.miller@example.com"},
	{ID: "5", Name: "Emily Davis", Email: "emily.davis@example.com"},
}

// RecentContacts returns the contacts shown on the recipient step.
func RecentContacts() []Contact {
	return append([]Contact(nil), recentContacts...)
}

// SearchContacts matches query against names and emails, case-insensitively.
// An empty query returns every contact.
func SearchContacts(query string) []Contact {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Contact
	for _, contact := range recentContacts {
		if strings.Contains(strings.ToLower(contact.Name), query) ||
			strings.Contains(strings.ToLower(contact.Email), query) {
			out = append(out, contact)
		}
	}
	return out
}

// ContactFor resolves an email to a known contact, or a bare contact named
// after the address.
func ContactFor(email string) Contact {
	email = strings.TrimSpace(email)
	for _, contact := range recentContacts {
		if strings.EqualFold(contact.Email, email) {
			return contact
		}
	}
	return Contact{Name: email, Email: email}
}
