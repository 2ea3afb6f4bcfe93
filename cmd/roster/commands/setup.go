package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/mmcdole/roster/internal/adapter"
	"github.com/mmcdole/roster/internal/domain"
	"github.com/mmcdole/roster/internal/transport"
	"github.com/mmcdole/roster/internal/tui/styles"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// runSetupFlow prompts for the API URL and token and saves them
func runSetupFlow(ctx context.Context, cfg *adapter.Config) error {
	fmt.Println()
	fmt.Println("Welcome to Roster!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		// Prompt for the API base URL, keeping the current one on enter
		fmt.Printf("API base URL [%s]: ", cfg.Server.URL)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if url := strings.TrimSpace(input); url != "" {
			cfg.Server.URL = url
		}

		// Prompt for token (hidden input)
		fmt.Print("Access token: ")
		tokenBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		fmt.Println() // Add newline after hidden input

		cfg.Server.Token = strings.TrimSpace(string(tokenBytes))
		if cfg.Server.Token == "" {
			fmt.Println("Token cannot be empty. Please try again.")
			fmt.Println()
			continue
		}

		fmt.Println()
		if err := checkServerWithSpinner(ctx, cfg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Printf("\n✗ Could not reach the API: %v\n", err)
			fmt.Println("Please check the URL and token and try again.")
			fmt.Println()
			continue
		}
		break
	}

	if err := adapter.SaveConfig(cfg, configFile); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Configuration saved to %s\n", adapter.ConfigPath(configFile))
	fmt.Println()

	return nil
}

// checkServerWithSpinner requests the page count with a visual spinner
func checkServerWithSpinner(ctx context.Context, cfg *adapter.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	t, err := transport.NewHTTPTransport(cfg.Server.URL, cfg.Server.Token, cfg.HTTP.Timeout, logger)
	if err != nil {
		return err
	}

	// Channel to receive result
	type result struct {
		pages domain.Result[int]
		err   error
	}
	resultCh := make(chan result, 1)

	// Start the check in background
	go func() {
		pages, err := transport.LastPageNumber(ctx, t, "users")
		resultCh <- result{pages, err}
	}()

	frame := 0
	fmt.Printf("\r%s Checking connection...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)

			if res.err != nil {
				return res.err
			}
			if kind, failed := res.pages.Kind(); failed {
				return errors.New(failureMessage(kind))
			}

			pages, _ := res.pages.Value()
			fmt.Printf("✓ Connected (%d pages of users)\n", pages)
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking connection...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("connection check timed out")
		}
	}
}
