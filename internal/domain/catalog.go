package domain

// LegislativeDocument is a published legislative product (regulation,
// decree, meeting result) listed on the portal.
type LegislativeDocument struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	URL       string `json:"url"`
	UpdatedAt int64  `json:"updatedAt"`
}

// StructureMember is an entry in the organizational structure page.
// Order controls display position; lower comes first.
type StructureMember struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Order    int    `json:"order"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// SupervisionActivity is a logged supervision/oversight activity.
type SupervisionActivity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        int64  `json:"date"`
	Description string `json:"description"`
}
