package entity

import "time"

// Ritual is a dated journal entry owned by a user through UserEmail.
// Year, Month and Day are stamped from the server clock at creation.
type Ritual struct {
	ID        string `json:"_id"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	UserEmail string `json:"userEmail"`
}

// NewRitual builds a ritual dated with the local calendar day of now.
func NewRitual(category, content, userEmail string, now time.Time) *Ritual {
	return &Ritual{
		Category:  category,
		Content:   content,
		Year:      now.Year(),
		Month:     int(now.Month()),
		Day:       now.Day(),
		UserEmail: userEmail,
	}
}

// OwnedBy reports whether email owns the ritual.
func (r *Ritual) OwnedBy(email string) bool {
	return email != "" && r.UserEmail == email
}

// RitualView is a ritual joined with its owner's display name.
type RitualView struct {
	Ritual
	Name string `json:"name"`
}
