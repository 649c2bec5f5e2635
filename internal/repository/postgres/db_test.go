package postgres

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"confsite/internal/domain"
)

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{
		"migrations/00001_create_speakers.sql",
		"migrations/00002_create_proposals.sql",
		"migrations/00003_create_speaker_invitations.sql",
	}, files)
}

func TestTransactor_WithinTx(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	t.Run("commits and routes repository calls through the tx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO speakers`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("sp-1"))
		mock.ExpectQuery(`INSERT INTO speaker_invitations`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("inv-1"))
		mock.ExpectCommit()

		speakers := NewSpeakerRepository(db)
		invitations := NewInvitationRepository(db)
		err = NewTransactor(db).WithinTx(ctx, func(ctx context.Context) error {
			sp := domain.NewPlaceholderSpeaker("guest@example.com", "tok", now)
			if err := speakers.Create(ctx, sp); err != nil {
				return err
			}
			return invitations.Create(ctx, domain.NewInvitation("prop-1", sp.ID, sp.Email, now))
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		boom := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err = NewTransactor(db).WithinTx(ctx, func(ctx context.Context) error { return boom })
		require.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call reuses the outer tx", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		tr := NewTransactor(db)
		inner := false
		err = tr.WithinTx(ctx, func(ctx context.Context) error {
			return tr.WithinTx(ctx, func(ctx context.Context) error {
				inner = true
				return nil
			})
		})
		require.NoError(t, err)
		require.True(t, inner)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("no conn"))

		called := false
		err = NewTransactor(db).WithinTx(ctx, func(ctx context.Context) error {
			called = true
			return nil
		})
		require.Error(t, err)
		require.False(t, called)
	})
}
