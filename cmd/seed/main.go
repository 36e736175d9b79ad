package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cmsapi/internal/auth"
	"cmsapi/internal/config"
	"cmsapi/internal/db"
	"cmsapi/internal/logger"
	"cmsapi/internal/rbac"
	"cmsapi/internal/repository"
	"cmsapi/internal/service"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cmsctl",
		Short:         "Database maintenance for the CMS API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newSuperAdminCommand())
	return cmd
}

func newMigrateCommand() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, _, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(gormDB) }()

			if reset {
				if err := db.Reset(gormDB); err != nil {
					return err
				}
			}
			if err := db.Migrate(gormDB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Drop every table before migrating")
	return cmd
}

func newSuperAdminCommand() *cobra.Command {
	var (
		email     string
		password  string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "superadmin",
		Short: "Create a SuperAdmin account, or promote an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			gormDB, cfg, err := open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(gormDB) }()

			if err := db.Migrate(gormDB); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			log := logger.New(cfg.LogLevel)
			repo := repository.NewUserRepository(gormDB)
			users := service.NewUserService(
				repo,
				auth.NewTokenStore(repository.NewRefreshTokenRepository(gormDB)),
				auth.NewPasswordHasher(cfg.BcryptCost),
				log,
			)

			existing, err := repo.FindByEmail(ctx, email)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if len(password) < 6 {
					return errors.New("--password of at least 6 characters is required for a new account")
				}
				user, err := users.CreateUser(ctx, service.CreateUserInput{
					Email:     email,
					Password:  password,
					FirstName: firstName,
					LastName:  lastName,
					Role:      rbac.RoleSuperAdmin,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created SuperAdmin %s (id %d)\n", user.Email, user.ID)
				return nil
			case err != nil:
				return fmt.Errorf("find user: %w", err)
			}

			role, active := rbac.RoleSuperAdmin, true
			update := service.UpdateUserInput{Role: &role, Status: &active}
			if password != "" {
				update.Password = &password
			}
			if _, err := users.UpdateUser(ctx, existing.ID, update); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "promoted %s to SuperAdmin\n", existing.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (at least 6 characters)")
	cmd.Flags().StringVar(&firstName, "first-name", "Super", "First name for a new account")
	cmd.Flags().StringVar(&lastName, "last-name", "Admin", "Last name for a new account")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func open(ctx context.Context) (*gorm.DB, *config.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	return gormDB, cfg, nil
}
