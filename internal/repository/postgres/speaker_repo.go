package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"confsite/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

// NewSpeakerRepository returns a domain.SpeakerRepository implemented with Postgres.
func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

const speakerColumns = `id, name, user_id, email, invite_token, created_at, updated_at`

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `
		INSERT INTO speakers (name, user_id, email, invite_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		s.Name, nullString(s.UserID), s.Email, nullIfEmpty(s.InviteToken), s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if isUniqueViolation(err) {
		return domain.ErrSpeakerExists
	}
	return err
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = $1`
	sp, err := scanSpeaker(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if isMalformedID(err) {
		return nil, domain.ErrNotFound
	}
	return sp, err
}

func (r *speakerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE user_id = $1`
	return scanSpeaker(conn(ctx, r.DB).QueryRowContext(ctx, query, userID))
}

func (r *speakerRepository) GetByEmail(ctx context.Context, email string) (*domain.Speaker, error) {
	query := `
		SELECT ` + speakerColumns + `
		FROM speakers
		WHERE lower(email) = lower($1)
		ORDER BY (user_id IS NULL), created_at
		LIMIT 1
	`
	return scanSpeaker(conn(ctx, r.DB).QueryRowContext(ctx, query, email))
}

func (r *speakerRepository) Link(ctx context.Context, speakerID, userID, name string, updatedAt time.Time) error {
	query := `
		UPDATE speakers
		SET user_id = $1, name = $2, invite_token = NULL, updated_at = $3
		WHERE id = $4 AND user_id IS NULL
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, userID, name, updatedAt, speakerID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSpeaker(row *sql.Row) (*domain.Speaker, error) {
	s := &domain.Speaker{}
	var userID, inviteToken sql.NullString
	err := row.Scan(&s.ID, &s.Name, &userID, &s.Email, &inviteToken, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if userID.Valid {
		s.UserID = &userID.String
	}
	s.InviteToken = inviteToken.String
	return s, nil
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
