package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confsite/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

// NewInvitationRepository returns a domain.InvitationRepository implemented with Postgres.
func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{DB: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO speaker_invitations (proposal_id, speaker_id, email, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, inv.ProposalID, inv.SpeakerID, inv.Email, string(inv.Status), inv.CreatedAt).
		Scan(&inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateInvite
		}
		return err
	}
	return nil
}

func (r *invitationRepository) GetPending(ctx context.Context, proposalID, email string) (*domain.Invitation, error) {
	query := `
		SELECT id, proposal_id, speaker_id, email, status, created_at
		FROM speaker_invitations
		WHERE proposal_id = $1 AND lower(email) = lower($2) AND status = 'pending'
	`
	inv := &domain.Invitation{}
	var status string
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, proposalID, email).
		Scan(&inv.ID, &inv.ProposalID, &inv.SpeakerID, &inv.Email, &status, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	inv.Status = domain.InvitationStatus(status)
	return inv, nil
}

func (r *invitationRepository) ListByProposalID(ctx context.Context, proposalID string) ([]*domain.Invitation, error) {
	query := `
		SELECT id, proposal_id, speaker_id, email, status, created_at
		FROM speaker_invitations
		WHERE proposal_id = $1
		ORDER BY created_at
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invs := make([]*domain.Invitation, 0)
	for rows.Next() {
		inv := &domain.Invitation{}
		var status string
		if err := rows.Scan(&inv.ID, &inv.ProposalID, &inv.SpeakerID, &inv.Email, &status, &inv.CreatedAt); err != nil {
			return nil, err
		}
		inv.Status = domain.InvitationStatus(status)
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}
