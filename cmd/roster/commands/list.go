package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/spf13/cobra"

	"github.com/mmcdole/roster/internal/domain"
	"github.com/mmcdole/roster/internal/tui/styles"
	"github.com/mmcdole/roster/internal/userlist"
)

// userOutput is the --json shape of a listed user
type userOutput struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Gender     string    `json:"gender"`
	Status     string    `json:"status"`
	ObservedAt time.Time `json:"observed_at"`
}

func listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the most recently created users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			result, err := client.ListLatest(cmd.Context())
			if err != nil {
				return err
			}
			users, ok := result.Value()
			if !ok {
				kind, _ := result.Kind()
				return fmt.Errorf("list users: %w", failure(kind))
			}
			users = domain.Stamp(users, time.Now())

			if asJSON {
				return printJSON(cmd.OutOrStdout(), users)
			}
			printTable(cmd.OutOrStdout(), users)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print users as JSON")
	return cmd
}

func printJSON(w io.Writer, users []domain.User) error {
	out := make([]userOutput, len(users))
	for i, u := range users {
		out[i] = userOutput{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Gender:     u.Gender,
			Status:     u.Status,
			ObservedAt: u.ObservedAt,
		}
	}
	if err := json.MarshalWrite(w, out, jsontext.WithIndent("  ")); err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func printTable(w io.Writer, users []domain.User) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.DimStyle).
		Headers("ID", "NAME", "EMAIL", "STATUS", "OBSERVED")

	for _, u := range users {
		t.Row(
			strconv.FormatInt(u.ID, 10),
			u.Name,
			u.Email,
			u.Status,
			u.ObservedAt.Format(cfg.UI.TimeFormat),
		)
	}

	fmt.Fprintln(w, t.Render())
}

// failureMessage returns the display text for an error kind
func failureMessage(kind domain.ErrorKind) string {
	return userlist.DefaultCatalog().Localize(userlist.MessageKey(kind))
}

// failure wraps kind so callers can still match it with errors.Is
func failure(kind domain.ErrorKind) error {
	return fmt.Errorf("%s: %w", failureMessage(kind), kind)
}
