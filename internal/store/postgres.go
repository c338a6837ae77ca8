package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/wildcast/wildcast/internal/model"
)

// Pool abstracts pgxpool.Pool for testing with pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, maxConns, minConns int32) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	if maxConns <= 0 {
		maxConns = 10
	}
	if minConns <= 0 {
		minConns = 2
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT UNIQUE NOT NULL,
	name          TEXT NOT NULL DEFAULT '',
	password_hash BYTEA,
	role          TEXT NOT NULL DEFAULT 'user',
	plan          TEXT NOT NULL DEFAULT 'free',
	image         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
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
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
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
	has_media_kit     BOOLEAN NOT NULL DEFAULT false,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
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
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_contacts_company ON contacts(company);
CREATE INDEX IF NOT EXISTS idx_contacts_assigned ON contacts(assigned_user_id);
CREATE INDEX IF NOT EXISTS idx_submissions_user ON survey_submissions(user_id);
CREATE INDEX IF NOT EXISTS idx_outreach_user ON outreach_history(user_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// --- Contacts ---

const pgContactCols = `id, first_name, last_name, title, company, email, phone,
	description, industries, linkedin, website, tags, region, city, state,
	COALESCE(assigned_user_id, ''), created_at, updated_at`

func (s *PostgresStore) CreateContact(ctx context.Context, c model.Contact) (*model.Contact, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO contacts (id, first_name, last_name, title, company, email, phone,
			description, industries, linkedin, website, tags, region, city, state,
			assigned_user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		c.ID, c.FirstName, c.LastName, c.Title, c.Company, c.Email, c.Phone,
		c.Description, c.Industries, c.LinkedIn, c.Website, c.Tags, c.Region,
		c.City, c.State, nullable(c.AssignedUserID), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert contact")
	}
	return &c, nil
}

func (s *PostgresStore) GetContact(ctx context.Context, id string) (*model.Contact, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgContactCols+` FROM contacts WHERE id = $1`, id)

	c, err := scanContact(row)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get contact")
	}
	return c, nil
}

func (s *PostgresStore) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgContactCols+` FROM contacts ORDER BY created_at, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list contacts")
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan contact")
		}
		contacts = append(contacts, *c)
	}
	return contacts, eris.Wrap(rows.Err(), "postgres: iterate contacts")
}

func (s *PostgresStore) BulkInsertContacts(ctx context.Context, contacts []model.Contact) (int, error) {
	if len(contacts) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	inserted := 0
	for _, c := range contacts {
		id := c.ID
		if id == "" {
			id = uuid.New().String()
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO contacts (id, first_name, last_name, title, company, email, phone,
				description, industries, linkedin, website, tags, region, city, state,
				created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			id, c.FirstName, c.LastName, c.Title, c.Company, c.Email, c.Phone,
			c.Description, c.Industries, c.LinkedIn, c.Website, c.Tags,
			c.Region, c.City, c.State, now, now,
		); err != nil {
			return 0, eris.Wrap(err, "postgres: bulk insert contact")
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "postgres: commit bulk insert")
	}
	return inserted, nil
}

func (s *PostgresStore) AssignContact(ctx context.Context, contactID, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contacts SET assigned_user_id = $1, updated_at = $2 WHERE id = $3`,
		nullable(userID), time.Now().UTC(), contactID)
	if err != nil {
		return eris.Wrap(err, "postgres: assign contact")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Users ---

const pgUserCols = `id, email, name, password_hash, role, plan, image, created_at, updated_at`

func (s *PostgresStore) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
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

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, plan, image, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), string(u.Plan), u.Image, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert user")
	}
	return &u, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgUserCols+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get user")
	}
	return u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgUserCols+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get user by email")
	}
	return u, nil
}

func (s *PostgresStore) UpdateUserPlan(ctx context.Context, id string, plan model.Plan) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET plan = $1, updated_at = $2 WHERE id = $3`,
		string(plan), time.Now().UTC(), id)
	if err != nil {
		return eris.Wrap(err, "postgres: update user plan")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgUserCols+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list users")
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan user")
		}
		users = append(users, *u)
	}
	return users, eris.Wrap(rows.Err(), "postgres: iterate users")
}

// --- Survey submissions ---

const pgSubmissionCols = `id, COALESCE(user_id, ''), category, audience_size,
	listener_type, tone, release_frequency, format, primary_goal, email,
	podcast_name, podcast_url, description, has_media_kit, created_at, updated_at`

func (s *PostgresStore) CreateSubmission(ctx context.Context, sub model.SurveySubmission) (*model.SurveySubmission, error) {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sub.CreatedAt, sub.UpdatedAt = now, now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO survey_submissions (id, user_id, category, audience_size,
			listener_type, tone, release_frequency, format, primary_goal, email,
			podcast_name, podcast_url, description, has_media_kit, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		sub.ID, nullable(sub.UserID), string(sub.Answers.Category), string(sub.Answers.AudienceSize),
		joinListenerTypes(sub.Answers.ListenerType), string(sub.Answers.Tone),
		string(sub.Answers.ReleaseFrequency), string(sub.Answers.Format),
		string(sub.Answers.PrimaryGoal), sub.Email, sub.PodcastName, sub.PodcastURL,
		sub.Description, sub.HasMediaKit, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert submission")
	}
	return &sub, nil
}

func (s *PostgresStore) GetSubmission(ctx context.Context, id string) (*model.SurveySubmission, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgSubmissionCols+` FROM survey_submissions WHERE id = $1`, id)
	sub, err := scanPgSubmission(row)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get submission")
	}
	return sub, nil
}

func (s *PostgresStore) ListSubmissions(ctx context.Context) ([]model.SurveySubmission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgSubmissionCols+` FROM survey_submissions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list submissions")
	}
	defer rows.Close()

	var subs []model.SurveySubmission
	for rows.Next() {
		sub, err := scanPgSubmission(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan submission")
		}
		subs = append(subs, *sub)
	}
	return subs, eris.Wrap(rows.Err(), "postgres: iterate submissions")
}

func (s *PostgresStore) LinkSubmissionToUser(ctx context.Context, submissionID, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE survey_submissions SET user_id = $1, updated_at = $2 WHERE id = $3`,
		userID, time.Now().UTC(), submissionID)
	if err != nil {
		return eris.Wrap(err, "postgres: link submission")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Outreach ---

const pgOutreachCols = `id, user_id, contact_id, brand_name, contact_name,
	contact_email, contact_role, template_used, created_at`

func (s *PostgresStore) CreateOutreach(ctx context.Context, r model.OutreachRecord) (*model.OutreachRecord, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO outreach_history (id, user_id, contact_id, brand_name,
			contact_name, contact_email, contact_role, template_used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.UserID, r.ContactID, r.BrandName, r.ContactName, r.ContactEmail,
		r.ContactRole, r.TemplateUsed, r.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert outreach")
	}
	return &r, nil
}

func (s *PostgresStore) ListOutreachByUser(ctx context.Context, userID string) ([]model.OutreachRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgOutreachCols+` FROM outreach_history WHERE user_id = $1 ORDER BY created_at DESC, id`,
		userID)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list outreach by user")
	}
	defer rows.Close()
	return collectPgOutreach(rows)
}

func (s *PostgresStore) ListOutreach(ctx context.Context) ([]model.OutreachRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+pgOutreachCols+` FROM outreach_history ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list outreach")
	}
	defer rows.Close()
	return collectPgOutreach(rows)
}

// --- Stats ---

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	var st Stats
	row := s.pool.QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM contacts),
		(SELECT COUNT(*) FROM survey_submissions),
		(SELECT COUNT(*) FROM outreach_history)`)
	if err := row.Scan(&st.Users, &st.Contacts, &st.Submissions, &st.Outreach); err != nil {
		return nil, eris.Wrap(err, "postgres: stats")
	}
	return &st, nil
}

// --- scan helpers ---

func scanPgSubmission(r rowScanner) (*model.SurveySubmission, error) {
	var sub model.SurveySubmission
	var category, audienceSize, listenerType, tone, frequency, format, goal string
	err := r.Scan(&sub.ID, &sub.UserID, &category, &audienceSize, &listenerType,
		&tone, &frequency, &format, &goal, &sub.Email, &sub.PodcastName,
		&sub.PodcastURL, &sub.Description, &sub.HasMediaKit, &sub.CreatedAt, &sub.UpdatedAt)
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
	return &sub, nil
}

func collectPgOutreach(rows pgx.Rows) ([]model.OutreachRecord, error) {
	var records []model.OutreachRecord
	for rows.Next() {
		var r model.OutreachRecord
		err := rows.Scan(&r.ID, &r.UserID, &r.ContactID, &r.BrandName,
			&r.ContactName, &r.ContactEmail, &r.ContactRole, &r.TemplateUsed,
			&r.CreatedAt)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan outreach")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: iterate outreach")
}
