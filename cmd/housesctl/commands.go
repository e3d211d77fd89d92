package main

import (
	"fmt"

	"houses-api/confs"
	"houses-api/db"
	"houses-api/entities"
	"houses-api/logger"
	"houses-api/repositories"
	"houses-api/services"
	"houses-api/usecases"

	"github.com/spf13/cobra"
)

// env is what every subcommand needs: config, logger and an open database.
type env struct {
	cfg *confs.Config
	log *logger.Logger
	db  db.Database
}

func openEnv(verbose bool) (*env, error) {
	cfg, err := confs.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.Nop()
	if verbose {
		if log, err = logger.New(cfg.LogMode); err != nil {
			return nil, err
		}
	}
	database, err := db.Connect(cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: database}, nil
}

func (e *env) auth() *usecases.AuthUseCase {
	return usecases.NewAuthUseCase(repositories.NewUserPgRepository(e.db), nil, e.cfg.JWTSecret, e.cfg.JWTExpire, e.log)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "housesctl",
		Short:         "Administer the houses API database",
		Long:          `housesctl runs migrations and manages user accounts directly against the database configured in the environment (.env is honoured).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log database activity")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Connect migrates as part of opening the database.
			if _, err := openEnv(verbose); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}

	var name, password, role string
	createUserCmd := &cobra.Command{
		Use:   "create-user [email]",
		Short: "Create a user with any role, including admin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(verbose)
			if err != nil {
				return err
			}
			if name == "" {
				name = args[0]
			}
			u, err := e.auth().CreateUser(cmd.Context(), usecases.RegisterInput{
				Name:     name,
				Email:    args[0],
				Password: password,
				Role:     role,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s user %s (%s)\n", u.Role, u.Email, u.ID)
			return nil
		},
	}
	createUserCmd.Flags().StringVar(&name, "name", "", "display name (defaults to the email)")
	createUserCmd.Flags().StringVarP(&password, "password", "p", "", "password, at least 6 characters")
	createUserCmd.Flags().StringVarP(&role, "role", "r", entities.RoleUser, "user | publisher | admin")
	_ = createUserCmd.MarkFlagRequired("password")

	setRoleCmd := &cobra.Command{
		Use:   "set-role [email] [role]",
		Short: "Change the role of an existing user",
		Long: `Change the role of an existing user.

A running server caches users for ACTOR_CACHE_TTL, so it keeps the old role
until that entry expires. Send DELETE /api/v1/admin/cache as an admin to
apply the change at once.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(verbose)
			if err != nil {
				return err
			}
			u, err := e.auth().SetRole(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", u.Email, u.Role)
			fmt.Fprintln(cmd.OutOrStdout(), "Running servers apply it after ACTOR_CACHE_TTL or DELETE /api/v1/admin/cache")
			return nil
		},
	}

	reconcileCmd := &cobra.Command{
		Use:   "reconcile-ratings",
		Short: "Recompute the average rating of every house from its reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(verbose)
			if err != nil {
				return err
			}
			houses := repositories.NewHousePgRepository(e.db)
			lifecycle := usecases.NewLifecycle(houses, repositories.NewBookPgRepository(e.db), repositories.NewReviewPgRepository(e.db), e.log)
			n, err := services.NewRatingReconciler(e.db, houses, lifecycle, 0, e.log).Reconcile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recomputed %d houses\n", n)
			return nil
		},
	}

	rootCmd.AddCommand(migrateCmd, createUserCmd, setRoleCmd, reconcileCmd)
	return rootCmd
}
