package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenchat/lumen/api/config"
	"github.com/lumenchat/lumen/api/domain"
	"github.com/lumenchat/lumen/api/services"
	"github.com/lumenchat/lumen/api/store"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(userCreateCmd())
	return cmd
}

// userCreateCmd provisions an account directly in the database. The API
// has no self-registration; the identity layer or an operator creates
// accounts and hands out the resulting ID.
func userCreateCmd() *cobra.Command {
	var name, email, provider, providerUserID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			pool, err := store.Connect(ctx, cfg.Database.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			s := store.New(pool)
			if err := s.InitSchema(ctx); err != nil {
				return err
			}

			user := &domain.User{
				Name:           name,
				Email:          email,
				AuthProvider:   provider,
				ProviderUserID: providerUserID,
			}
			if err := services.NewUserService(s).Create(ctx, user); err != nil {
				return err
			}

			fmt.Printf("created user %d (%s)\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&provider, "provider", domain.AuthProviderGoogle, "auth provider (google or apple)")
	cmd.Flags().StringVar(&providerUserID, "provider-user-id", "", "provider-side user ID")
	cmd.MarkFlagRequired("email")

	return cmd
}
