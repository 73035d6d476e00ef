package models

// Seller is the minimal projection of a user embedded in products and
// conversations. It is a snapshot, not a live reference: renames are
// propagated explicitly by the user service.
type Seller struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User represents a registered user. Email is the case-insensitive login key.
type User struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	UniversityName string `json:"university_name"`
	Password       string `json:"-"` // Accepted at sign-up, never verified against (login is email lookup only)
}

// AsSeller returns the snapshot projection used wherever a Seller is required.
func (u *User) AsSeller() Seller {
	return Seller{ID: u.ID, Name: u.Name}
}

// University describes one of the selectable seller universities.
type University struct {
	Name string `json:"name"`
	Type string `json:"type"` // "Federal", "State" or "Private"
}
