package model

import "time"

// Role controls access to admin endpoints.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Plan controls how many ranked matches a caller may see.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash []byte    `json:"-"`
	Role         Role      `json:"role"`
	Plan         Plan      `json:"plan"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OutreachRecord tracks one outreach email a user sent to a contact.
type OutreachRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ContactID    string    `json:"contact_id"`
	BrandName    string    `json:"brand_name"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	ContactRole  string    `json:"contact_role,omitempty"`
	TemplateUsed string    `json:"template_used,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
