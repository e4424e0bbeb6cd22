package domain

// User is a portal staff account. Accounts are injected via configuration;
// there is no self-registration.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`
	Username string   `json:"username,omitempty"`
}
