// Package store persists users, contacts, survey submissions, and outreach
// history. Two drivers exist: SQLite for single-node deployments and
// Postgres for hosted ones.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/wildcast/wildcast/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = eris.New("store: not found")

// Stats summarizes table counts for the admin dashboard.
type Stats struct {
	Users       int `json:"users"`
	Contacts    int `json:"contacts"`
	Submissions int `json:"submissions"`
	Outreach    int `json:"outreach"`
}

// Store defines the persistence interface. Implementations are injected into
// the server and commands; nothing in the matching core touches storage.
type Store interface {
	// Contacts
	CreateContact(ctx context.Context, c model.Contact) (*model.Contact, error)
	GetContact(ctx context.Context, id string) (*model.Contact, error)
	ListContacts(ctx context.Context) ([]model.Contact, error)
	BulkInsertContacts(ctx context.Context, contacts []model.Contact) (int, error)
	AssignContact(ctx context.Context, contactID, userID string) error

	// Users
	CreateUser(ctx context.Context, u model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserPlan(ctx context.Context, id string, plan model.Plan) error
	ListUsers(ctx context.Context) ([]model.User, error)

	// Survey submissions
	CreateSubmission(ctx context.Context, s model.SurveySubmission) (*model.SurveySubmission, error)
	GetSubmission(ctx context.Context, id string) (*model.SurveySubmission, error)
	ListSubmissions(ctx context.Context) ([]model.SurveySubmission, error)
	LinkSubmissionToUser(ctx context.Context, submissionID, userID string) error

	// Outreach history
	CreateOutreach(ctx context.Context, r model.OutreachRecord) (*model.OutreachRecord, error)
	ListOutreachByUser(ctx context.Context, userID string) ([]model.OutreachRecord, error)
	ListOutreach(ctx context.Context) ([]model.OutreachRecord, error)

	// Admin
	GetStats(ctx context.Context) (*Stats, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
