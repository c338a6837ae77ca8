package model

import "time"

// Contact is a sponsor-side decision maker in the contact pool. Contacts are
// read-only during a matching run.
type Contact struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Description    string    `json:"description"`
	Industries     string    `json:"industries"`
	LinkedIn       string    `json:"linkedin"`
	Website        string    `json:"website"`
	Tags           string    `json:"tags"`
	Region         string    `json:"region,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	AssignedUserID string    `json:"assigned_user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContactMatch is a Contact annotated with a relevance score and the reasons
// the score was assigned, for one matching run.
type ContactMatch struct {
	Contact
	MatchScore   int      `json:"matchScore"`
	MatchReasons []string `json:"matchReasons"`
}

// Sponsor is a brand record with explicit show preferences, used by the
// sponsor-brand preference scorer.
type Sponsor struct {
	ID                  string            `json:"id"`
	BrandName           string            `json:"brandName"`
	Description         string            `json:"description"`
	ContactName         string            `json:"contactName"`
	Role                string            `json:"role"`
	Email               string            `json:"email"`
	Phone               string            `json:"phone"`
	LinkedIn            string            `json:"linkedin"`
	Category            string            `json:"category"`
	BudgetRange         string            `json:"budgetRange"`
	AudiencePreferences []string          `json:"audiencePreferences"`
	PreferredCategories []PodcastCategory `json:"preferredCategories"`
	PreferredTones      []PodcastTone     `json:"preferredTones"`
	PreferredFormats    []PodcastFormat   `json:"preferredFormats"`
}

// SponsorMatch is a Sponsor annotated with a score and reasons.
type SponsorMatch struct {
	Sponsor
	MatchScore   int      `json:"matchScore"`
	MatchReasons []string `json:"matchReasons"`
}
