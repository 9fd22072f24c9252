package main

import (
	"errors"
	"os"

	"github.com/deppfellow/gs-backend/internal/config"
	"github.com/deppfellow/gs-backend/internal/database"
	"github.com/deppfellow/gs-backend/internal/lib/utils"
	"github.com/deppfellow/gs-backend/internal/logger"
	"github.com/deppfellow/gs-backend/internal/repository"
	"github.com/deppfellow/gs-backend/internal/service"
	"github.com/spf13/cobra"
)

// passwordEnv lets scripts pass the password without exposing it in the
// process list.
const passwordEnv = "GS_SUPERUSER_PASSWORD"

func newCreateSuperuserCommand() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a superuser, or promote an existing user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if password == "" {
				return errors.New("a password is required (--password or " + passwordEnv + ")")
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLogger(cfg.Observability)

			db, err := database.New(cfg, &log, nil)
			if err != nil {
				return err
			}
			defer db.Close()

			auth := service.NewAuthService(
				repository.NewUserRepository(db.Pool),
				repository.NewTokenRepository(db.Pool),
				nil,
				"",
				cfg.Auth.BcryptCost,
				&log,
			)

			user, err := auth.CreateSuperuser(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username of the superuser")
	cmd.Flags().StringVar(&email, "email", "", "e-mail address, used when the user is created")
	cmd.Flags().StringVar(&password, "password", "", "password (defaults to $"+passwordEnv+")")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
