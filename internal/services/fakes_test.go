package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"confsite/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testTimeout = 5 * time.Second

// fakeProposalRepo is an in-memory ProposalRepository for tests.
type fakeProposalRepo struct {
	byID      map[string]*domain.Proposal
	nextID    int
	createErr error
	getErr    error
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{byID: make(map[string]*domain.Proposal), nextID: 1}
}

func (f *fakeProposalRepo) Create(ctx context.Context, p *domain.Proposal) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = fmt.Sprintf("prop-%d", f.nextID)
	f.nextID++
	stored := *p
	f.byID[p.ID] = &stored
	return nil
}

func (f *fakeProposalRepo) Update(ctx context.Context, p *domain.Proposal) error {
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *p
	f.byID[p.ID] = &stored
	return nil
}

func (f *fakeProposalRepo) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakeProposalRepo) ListBySpeakerID(ctx context.Context, speakerID string) ([]*domain.Proposal, error) {
	var out []*domain.Proposal
	for _, p := range f.byID {
		if p.SpeakerID == speakerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// fakeSpeakerRepo is an in-memory SpeakerRepository for tests.
type fakeSpeakerRepo struct {
	byID      map[string]*domain.Speaker
	nextID    int
	createErr error

	// beforeCreate runs once at the start of the next Create, standing in for a concurrent writer.
	beforeCreate func()
}

func newFakeSpeakerRepo() *fakeSpeakerRepo {
	return &fakeSpeakerRepo{byID: make(map[string]*domain.Speaker), nextID: 1}
}

// add stores a linked speaker and returns it.
func (f *fakeSpeakerRepo) add(name, userID, email string) *domain.Speaker {
	now := time.Now()
	s := domain.NewSpeaker(name, userID, email, now, now)
	_ = f.Create(context.Background(), s)
	return s
}

func (f *fakeSpeakerRepo) Create(ctx context.Context, s *domain.Speaker) error {
	if hook := f.beforeCreate; hook != nil {
		f.beforeCreate = nil
		hook()
	}
	if f.createErr != nil {
		return f.createErr
	}
	if s.UserID != nil {
		for _, existing := range f.byID {
			if existing.IsLinkedTo(*s.UserID) {
				return domain.ErrSpeakerExists
			}
		}
	}
	s.ID = fmt.Sprintf("sp-%d", f.nextID)
	f.nextID++
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSpeakerRepo) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSpeakerRepo) GetByUserID(ctx context.Context, userID string) (*domain.Speaker, error) {
	for _, s := range f.byID {
		if s.IsLinkedTo(userID) {
			return s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSpeakerRepo) GetByEmail(ctx context.Context, email string) (*domain.Speaker, error) {
	var placeholder *domain.Speaker
	for _, s := range f.byID {
		if !strings.EqualFold(s.Email, email) {
			continue
		}
		if !s.IsPlaceholder() {
			return s, nil
		}
		placeholder = s
	}
	if placeholder != nil {
		return placeholder, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSpeakerRepo) Link(ctx context.Context, speakerID, userID, name string, updatedAt time.Time) error {
	s, ok := f.byID[speakerID]
	if !ok || !s.IsPlaceholder() {
		return domain.ErrNotFound
	}
	s.UserID = &userID
	s.Name = name
	s.InviteToken = ""
	s.UpdatedAt = updatedAt
	return nil
}

// fakeInvitationRepo is an in-memory InvitationRepository that enforces one pending invitation per (proposal, email).
type fakeInvitationRepo struct {
	invitations []*domain.Invitation
	nextID      int
	createErr   error
	// skipPendingLookup makes GetPending miss so that Create's own uniqueness check is exercised.
	skipPendingLookup bool
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{nextID: 1}
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.pending(inv.ProposalID, inv.Email) != nil {
		return domain.ErrDuplicateInvite
	}
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.nextID++
	f.invitations = append(f.invitations, inv)
	return nil
}

func (f *fakeInvitationRepo) GetPending(ctx context.Context, proposalID, email string) (*domain.Invitation, error) {
	if f.skipPendingLookup {
		return nil, domain.ErrNotFound
	}
	if inv := f.pending(proposalID, email); inv != nil {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) pending(proposalID, email string) *domain.Invitation {
	for _, inv := range f.invitations {
		if inv.ProposalID == proposalID && strings.EqualFold(inv.Email, email) && inv.Status == domain.InvitationPending {
			return inv
		}
	}
	return nil
}

func (f *fakeInvitationRepo) ListByProposalID(ctx context.Context, proposalID string) ([]*domain.Invitation, error) {
	var out []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.ProposalID == proposalID {
			out = append(out, inv)
		}
	}
	return out, nil
}

// fakeTransactor runs fn directly and counts the transactions it was asked for.
type fakeTransactor struct {
	calls      int
	rolledBack int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		f.rolledBack++
		return err
	}
	return nil
}

// fakeEmailService records invitation emails.
type fakeEmailService struct {
	sent []*domain.SpeakerInvitationEmailData
	err  error
}

func (f *fakeEmailService) SendSpeakerInvitation(ctx context.Context, data *domain.SpeakerInvitationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakePhoneNormalizer accepts numbers that start with "+" or "0" and prefixes them with +44.
type fakePhoneNormalizer struct{}

func (fakePhoneNormalizer) Normalize(phone string) (string, error) {
	switch {
	case strings.HasPrefix(phone, "+"):
		return strings.ReplaceAll(phone, " ", ""), nil
	case strings.HasPrefix(phone, "0"):
		return "+44" + strings.ReplaceAll(phone[1:], " ", ""), nil
	}
	return "", errors.New("not a number")
}
