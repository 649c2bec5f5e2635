package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confsite/internal/domain"
)

type proposalRepository struct {
	DB *sql.DB
}

// NewProposalRepository returns a domain.ProposalRepository implemented with Postgres.
func NewProposalRepository(db *sql.DB) domain.ProposalRepository {
	return &proposalRepository{DB: db}
}

const proposalColumns = `id, speaker_id, kind, title, audience_level, description, abstract, affiliation,
		additional_notes, first_time_at_conference, requests, gender, referral, under_represented_group,
		accessibility_needs, recording_release, phone_number, gdpr_grant, gdpr_revoke_awareness,
		gdpr_data_exemption, target_audience, tutorial_format, created_at, updated_at`

func (r *proposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	query := `
		INSERT INTO proposals (speaker_id, kind, title, audience_level, description, abstract, affiliation,
			additional_notes, first_time_at_conference, requests, gender, referral, under_represented_group,
			accessibility_needs, recording_release, phone_number, gdpr_grant, gdpr_revoke_awareness,
			gdpr_data_exemption, target_audience, tutorial_format, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query,
		p.SpeakerID, string(p.Variant), p.Title, p.AudienceLevel, p.Description, p.Abstract, p.Affiliation,
		p.AdditionalNotes, p.FirstTimeAtConference, p.Requests, p.Gender, p.Referral, p.UnderRepresentedGroup,
		p.AccessibilityNeeds, p.RecordingRelease, p.PhoneNumber, p.GDPRGrant, p.GDPRRevokeAwareness,
		p.GDPRDataExemption, p.TargetAudience, p.TutorialFormat, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

func (r *proposalRepository) Update(ctx context.Context, p *domain.Proposal) error {
	query := `
		UPDATE proposals
		SET title = $1, audience_level = $2, description = $3, abstract = $4, affiliation = $5,
			additional_notes = $6, first_time_at_conference = $7, requests = $8, gender = $9, referral = $10,
			under_represented_group = $11, accessibility_needs = $12, recording_release = $13, phone_number = $14,
			gdpr_grant = $15, gdpr_revoke_awareness = $16, gdpr_data_exemption = $17, target_audience = $18,
			tutorial_format = $19, updated_at = $20
		WHERE id = $21
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query,
		p.Title, p.AudienceLevel, p.Description, p.Abstract, p.Affiliation,
		p.AdditionalNotes, p.FirstTimeAtConference, p.Requests, p.Gender, p.Referral,
		p.UnderRepresentedGroup, p.AccessibilityNeeds, p.RecordingRelease, p.PhoneNumber,
		p.GDPRGrant, p.GDPRRevokeAwareness, p.GDPRDataExemption, p.TargetAudience,
		p.TutorialFormat, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *proposalRepository) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`
	p, err := scanProposal(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *proposalRepository) ListBySpeakerID(ctx context.Context, speakerID string) ([]*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE speaker_id = $1 ORDER BY created_at DESC`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, speakerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := make([]*domain.Proposal, 0)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProposal(row rowScanner) (*domain.Proposal, error) {
	p := &domain.Proposal{}
	var kind string
	err := row.Scan(
		&p.ID, &p.SpeakerID, &kind, &p.Title, &p.AudienceLevel, &p.Description, &p.Abstract, &p.Affiliation,
		&p.AdditionalNotes, &p.FirstTimeAtConference, &p.Requests, &p.Gender, &p.Referral, &p.UnderRepresentedGroup,
		&p.AccessibilityNeeds, &p.RecordingRelease, &p.PhoneNumber, &p.GDPRGrant, &p.GDPRRevokeAwareness,
		&p.GDPRDataExemption, &p.TargetAudience, &p.TutorialFormat, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Variant = domain.Variant(kind)
	return p, nil
}
