package models

// Condition describes the physical state of a listed product.
type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

// IsValid reports whether c is one of the known conditions.
func (c Condition) IsValid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// Product represents a marketplace listing. The Seller field is a snapshot of
// the listing user taken at creation time; it is kept in sync with profile
// renames by explicit propagation, never by aliasing. Products are immutable
// after creation apart from that propagation.
type Product struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	ImageURL       string    `json:"image_url"`
	UniversityName string    `json:"university_name"`
	Category       string    `json:"category"`
	Condition      Condition `json:"condition"`
	Seller         Seller    `json:"seller"`
}
