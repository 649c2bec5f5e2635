package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"confsite/config"
	"confsite/internal/adapters/auth"
	"confsite/internal/adapters/email"
	"confsite/internal/adapters/formtext"
	deliveryhttp "confsite/internal/delivery/http"
	"confsite/internal/delivery/http/controllers"
	"confsite/internal/delivery/http/middleware"
	"confsite/internal/metrics"
	"confsite/internal/repository/postgres"
	"confsite/internal/services"
	"confsite/internal/utils"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("migrate") {
				cfg.MigrateOnStart = migrate
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, config.NewLogger(cfg))
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before serving (overrides MIGRATE_ON_START)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(db); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	catalog, err := formtext.Load()
	if err != nil {
		return fmt.Errorf("load form text: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("load email templates: %w", err)
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
		SendGrid: email.SendGridConfig{APIKey: cfg.Email.SendGridAPIKey},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	m := metrics.New()
	tx := postgres.NewTransactor(db)
	proposalRepo := postgres.NewProposalRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)

	emailService := services.NewEmailService(mailer, renderer, logger)
	proposalService := services.NewProposalService(proposalRepo, speakerRepo, tx, utils.NewPhoneNormalizer(cfg.PhoneDefaultRegion), m, logger, cfg.RequestTimeout)
	invitationService := services.NewSpeakerInvitationService(proposalRepo, speakerRepo, invitationRepo, tx, emailService, m, logger, cfg.ConferenceName, cfg.RequestTimeout)
	speakerService := services.NewSpeakerService(speakerRepo, tx, logger, cfg.RequestTimeout)

	router := deliveryhttp.NewRouter(
		controllers.NewProposalController(logger, proposalService, catalog),
		controllers.NewSpeakerController(logger, invitationService, speakerService),
		middleware.RequireAuth(auth.NewJWTVerifier(cfg.JWTSecret), logger),
		m.Handler(),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
