package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/platform/postgres"
	"github.com/phrazzld/contracts-api/internal/service"
	"github.com/phrazzld/contracts-api/internal/service/auth"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newCreateUserCmd(opts *cliOptions) *cobra.Command {
	var tenant, email, password, role string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Register a user in a tenant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}

			cfg, log, err := opts.load()
			if err != nil {
				return err
			}

			db, err := openDatabase(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			users, err := service.NewUserService(
				postgres.NewPostgresUserStore(db, log),
				auth.NewBcryptHasher(cfg.Auth.BcryptCost),
				log,
			)
			if err != nil {
				return err
			}

			user, err := users.Register(cmd.Context(), tenantID, domain.UserDraft{
				Email:    email,
				Password: password,
				Role:     domain.Role(strings.ToUpper(role)),
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", user.ID.UUID, user.Email, user.Role)
			return err
		},
	}

	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant id (uuid)")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "plaintext password")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleEmployee), "EMPLOYEE or ADMIN")
	for _, name := range []string{"tenant", "email", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password, read from stdin when omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if err := domain.ValidatePassword(password); err != nil {
				return err
			}

			hash, err := auth.NewBcryptHasher(cost).Hash(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")
	return cmd
}

// readPassword takes the first argument, or else the first line of in.
func readPassword(in io.Reader, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", errors.New("no password given")
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}
