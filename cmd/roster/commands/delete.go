package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmcdole/roster/internal/userlist"
)

// errInvalidID is returned for a malformed user id
var errInvalidID = errors.New("user id must be a positive integer")

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("%q: %w", args[0], errInvalidID)
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			result, err := client.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if kind, failed := result.Kind(); failed {
				return fmt.Errorf("delete user %d: %w", id, failure(kind))
			}

			fmt.Fprintln(cmd.OutOrStdout(), userlist.DefaultCatalog().Localize(userlist.KeyUserDeleted))
			return nil
		},
	}
	return cmd
}
