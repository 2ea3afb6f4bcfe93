package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/roster/internal/domain"
	"github.com/mmcdole/roster/internal/userlist"
)

func createCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an active user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, email = strings.TrimSpace(name), strings.TrimSpace(email)
			if name == "" || email == "" {
				return errors.New("--name and --email must not be empty")
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			result, err := client.Create(cmd.Context(), name, email)
			if err != nil {
				return err
			}
			user, ok := result.Value()
			if !ok {
				kind, _ := result.Kind()
				if kind == domain.KindConflict {
					msg := userlist.DefaultCatalog().Localize(userlist.KeyEmailExists)
					return fmt.Errorf("create user: %s: %w", msg, kind)
				}
				return fmt.Errorf("create user: %w", failure(kind))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", userlist.DefaultCatalog().Localize(userlist.KeyUserCreated), user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
