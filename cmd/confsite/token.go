package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"confsite/config"
	"confsite/internal/adapters/auth"
)

func tokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SECRET for local use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(userID, email, ttl)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "Subject (identity provider user ID)")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
