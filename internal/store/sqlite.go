package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/wildcast/wildcast/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT UNIQUE NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	password_hash BLOB,
	role          TEXT NOT NULL DEFAULT 'user',
	plan          TEXT NOT NULL DEFAULT 'free',
	image         TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS contacts (
	id               TEXT PRIMARY KEY,
	first_name       TEXT NOT NULL DEFAULT '',
	last_name        TEXT NOT NULL DEFAULT '',
	title            TEXT NOT NULL DEFAULT '',
	company          TEXT NOT NULL DEFAULT '',
	email            TEXT NOT NULL DEFAULT '',
	phone            TEXT NOT NULL DEFAULT '',
	description      TEXT NOT NULL DEFAULT '',
	industries       TEXT NOT NULL DEFAULT '',
	linkedin         TEXT NOT NULL DEFAULT '',
	website          TEXT NOT NULL DEFAULT '',
	tags             TEXT NOT NULL DEFAULT '',
	region           TEXT NOT NULL DEFAULT '',
	city             TEXT NOT NULL DEFAULT '',
	state            TEXT NOT NULL DEFAULT '',
	assigned_user_id TEXT REFERENCES users(id),
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS survey_submissions (
	id                TEXT PRIMARY KEY,
	user_id           TEXT REFERENCES users(id),
	category          TEXT NOT NULL DEFAULT '',
	audience_size     TEXT NOT NULL DEFAULT '',
	listener_type     TEXT NOT NULL DEFAULT '',
	tone              TEXT NOT NULL DEFAULT '',
	release_frequency TEXT NOT NULL DEFAULT '',
	format            TEXT NOT NULL DEFAULT '',
	primary_goal      TEXT NOT NULL DEFAULT '',
	email             TEXT NOT NULL DEFAULT '',
	podcast_name      TEXT NOT NULL DEFAULT '',
	podcast_url       TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	has_media_kit     INTEGER NOT NULL DEFAULT 0,
	created_at        DATETIME NOT NULL,
	updated_at        DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS outreach_history (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL REFERENCES users(id),
	contact_id    TEXT NOT NULL,
	brand_name    TEXT NOT NULL DEFAULT '',
	contact_name  TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT '',
	contact_role  TEXT NOT NULL DEFAULT '',
	template_used TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contacts_company ON contacts(company);
CREATE INDEX IF NOT EXISTS idx_contacts_assigned ON contacts(assigned_user_id);
CREATE INDEX IF NOT EXISTS idx_submissions_user ON survey_submissions(user_id);
CREATE INDEX IF NOT EXISTS idx_outreach_user ON outreach_history(user_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- Contacts ---

const sqliteContactCols = `id, first_name, last_name, title, company, email, phone,
	description, industries, linkedin, website, tags, region, city, state,
	COALESCE(assigned_user_id, ''), created_at, updated_at`

func (s *SQLiteStore) CreateContact(ctx context.Context, c model.Contact) (*model.Contact, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (id, first_name, last_name, title, company, email, phone,
			description, industries, linkedin, website, tags, region, city, state,
			assigned_user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FirstName, c.LastName, c.Title, c.Company, c.Email, c.Phone,
		c.Description, c.Industries, c.LinkedIn, c.Website, c.Tags, c.Region,
		c.City, c.State, nullable(c.AssignedUserID), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert contact")
	}
	return &c, nil
}

func (s *SQLiteStore) GetContact(ctx context.Context, id string) (*model.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteContactCols+` FROM contacts WHERE id = ?`, id)

	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get contact")
	}
	return c, nil
}

// ListContacts returns the full pool in insertion order. The order is the
// matcher's tie-break, so it must be deterministic across calls.
func (s *SQLiteStore) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteContactCols+` FROM contacts ORDER BY created_at, id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list contacts")
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan contact")
		}
		contacts = append(contacts, *c)
	}
	return contacts, eris.Wrap(rows.Err(), "sqlite: iterate contacts")
}

func (s *SQLiteStore) BulkInsertContacts(ctx context.Context, contacts []model.Contact) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contacts (id, first_name, last_name, title, company, email, phone,
			description, industries, linkedin, website, tags, region, city, state,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare bulk insert")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	inserted := 0
	for _, c := range contacts {
		id := c.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := stmt.ExecContext(ctx,
			id, c.FirstName, c.LastName, c.Title, c.Company, c.Email, c.Phone,
			c.Description, c.Industries, c.LinkedIn, c.Website, c.Tags,
			c.Region, c.City, c.State, now, now,
		); err != nil {
			return 0, eris.Wrap(err, "sqlite: bulk insert contact")
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit bulk insert")
	}
	return inserted, nil
}

func (s *SQLiteStore) AssignContact(ctx context.Context, contactID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contacts SET assigned_user_id = ?, updated_at = ? WHERE id = ?`,
		nullable(userID), time.Now().UTC(), contactID)
	if err != nil {
		return eris.Wrap(err, "sqlite: assign contact")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Users ---

const sqliteUserCols = `id, email, name, password_hash, role, plan, image, created_at, updated_at`

func (s *SQLiteStore) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	if u.Plan == "" {
		u.Plan = model.PlanFree
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, plan, image, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), string(u.Plan), u.Image, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert user")
	}
	return &u, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteUserCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get user")
	}
	return u, nil
}

// GetUserByEmail returns (nil, nil) when no user exists; registration checks
// existence without treating it as a failure.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteUserCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get user by email")
	}
	return u, nil
}

func (s *SQLiteStore) UpdateUserPlan(ctx context.Context, id string, plan model.Plan) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET plan = ?, updated_at = ? WHERE id = ?`,
		string(plan), time.Now().UTC(), id)
	if err != nil {
		return eris.Wrap(err, "sqlite: update user plan")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteUserCols+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list users")
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan user")
		}
		users = append(users, *u)
	}
	return users, eris.Wrap(rows.Err(), "sqlite: iterate users")
}

// --- Survey submissions ---

const sqliteSubmissionCols = `id, COALESCE(user_id, ''), category, audience_size,
	listener_type, tone, release_frequency, format, primary_goal, email,
	podcast_name, podcast_url, description, has_media_kit, created_at, updated_at`

func (s *SQLiteStore) CreateSubmission(ctx context.Context, sub model.SurveySubmission) (*model.SurveySubmission, error) {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sub.CreatedAt, sub.UpdatedAt = now, now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO survey_submissions (id, user_id, category, audience_size,
			listener_type, tone, release_frequency, format, primary_goal, email,
			podcast_name, podcast_url, description, has_media_kit, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, nullable(sub.UserID), string(sub.Answers.Category), string(sub.Answers.AudienceSize),
		joinListenerTypes(sub.Answers.ListenerType), string(sub.Answers.Tone),
		string(sub.Answers.ReleaseFrequency), string(sub.Answers.Format),
		string(sub.Answers.PrimaryGoal), sub.Email, sub.PodcastName, sub.PodcastURL,
		sub.Description, boolToInt(sub.HasMediaKit), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert submission")
	}
	return &sub, nil
}

func (s *SQLiteStore) GetSubmission(ctx context.Context, id string) (*model.SurveySubmission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteSubmissionCols+` FROM survey_submissions WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get submission")
	}
	return sub, nil
}

func (s *SQLiteStore) ListSubmissions(ctx context.Context) ([]model.SurveySubmission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteSubmissionCols+` FROM survey_submissions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list submissions")
	}
	defer rows.Close()

	var subs []model.SurveySubmission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan submission")
		}
		subs = append(subs, *sub)
	}
	return subs, eris.Wrap(rows.Err(), "sqlite: iterate submissions")
}

func (s *SQLiteStore) LinkSubmissionToUser(ctx context.Context, submissionID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE survey_submissions SET user_id = ?, updated_at = ? WHERE id = ?`,
		userID, time.Now().UTC(), submissionID)
	if err != nil {
		return eris.Wrap(err, "sqlite: link submission")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Outreach ---

const sqliteOutreachCols = `id, user_id, contact_id, brand_name, contact_name,
	contact_email, contact_role, template_used, created_at`

func (s *SQLiteStore) CreateOutreach(ctx context.Context, r model.OutreachRecord) (*model.OutreachRecord, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outreach_history (id, user_id, contact_id, brand_name,
			contact_name, contact_email, contact_role, template_used, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.ContactID, r.BrandName, r.ContactName, r.ContactEmail,
		r.ContactRole, r.TemplateUsed, r.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert outreach")
	}
	return &r, nil
}

func (s *SQLiteStore) ListOutreachByUser(ctx context.Context, userID string) ([]model.OutreachRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteOutreachCols+` FROM outreach_history WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list outreach by user")
	}
	defer rows.Close()
	return collectOutreach(rows)
}

func (s *SQLiteStore) ListOutreach(ctx context.Context) ([]model.OutreachRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sqliteOutreachCols+` FROM outreach_history ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list outreach")
	}
	defer rows.Close()
	return collectOutreach(rows)
}

// --- Stats ---

func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	var st Stats
	row := s.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM contacts),
		(SELECT COUNT(*) FROM survey_submissions),
		(SELECT COUNT(*) FROM outreach_history)`)
	if err := row.Scan(&st.Users, &st.Contacts, &st.Submissions, &st.Outreach); err != nil {
		return nil, eris.Wrap(err, "sqlite: stats")
	}
	return &st, nil
}

// --- scan helpers ---

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(r rowScanner) (*model.Contact, error) {
	var c model.Contact
	err := r.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Title, &c.Company,
		&c.Email, &c.Phone, &c.Description, &c.Industries, &c.LinkedIn,
		&c.Website, &c.Tags, &c.Region, &c.City, &c.State, &c.AssignedUserID,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanUser(r rowScanner) (*model.User, error) {
	var u model.User
	var role, plan string
	err := r.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &plan,
		&u.Image, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	u.Plan = model.Plan(plan)
	return &u, nil
}

func scanSubmission(r rowScanner) (*model.SurveySubmission, error) {
	var sub model.SurveySubmission
	var category, audienceSize, listenerType, tone, frequency, format, goal string
	var hasMediaKit int
	err := r.Scan(&sub.ID, &sub.UserID, &category, &audienceSize, &listenerType,
		&tone, &frequency, &format, &goal, &sub.Email, &sub.PodcastName,
		&sub.PodcastURL, &sub.Description, &hasMediaKit, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sub.Answers = model.SurveyAnswers{
		Category:         model.PodcastCategory(category),
		AudienceSize:     model.AudienceSize(audienceSize),
		ListenerType:     splitListenerTypes(listenerType),
		Tone:             model.PodcastTone(tone),
		ReleaseFrequency: model.ReleaseFrequency(frequency),
		Format:           model.PodcastFormat(format),
		PrimaryGoal:      model.PrimaryGoal(goal),
	}
	sub.HasMediaKit = hasMediaKit != 0
	return &sub, nil
}

func collectOutreach(rows *sql.Rows) ([]model.OutreachRecord, error) {
	var records []model.OutreachRecord
	for rows.Next() {
		var r model.OutreachRecord
		err := rows.Scan(&r.ID, &r.UserID, &r.ContactID, &r.BrandName,
			&r.ContactName, &r.ContactEmail, &r.ContactRole, &r.TemplateUsed,
			&r.CreatedAt)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan outreach")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate outreach")
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// joinListenerTypes flattens the multi-select into a comma-joined column,
// matching how the quiz originally persisted it.
func joinListenerTypes(types model.ListenerTypes) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitListenerTypes(s string) model.ListenerTypes {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make(model.ListenerTypes, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, model.ListenerType(p))
		}
	}
	return out
}
