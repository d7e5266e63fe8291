// advisor-admin is the operator CLI for provisioning API users.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bobmcallan/advisor/internal/app"
	"github.com/bobmcallan/advisor/internal/models"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "advisor-admin",
		Short:        "Administer advisor API users",
		SilenceUsage: true,
	}

	root.AddCommand(createUserCmd(), listUsersCmd(), regenerateKeyCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// withApp opens the app (config + storage) for the duration of one command.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	a, err := app.NewStorageApp(os.Getenv("ADVISOR_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer a.Close()
	return fn(context.Background(), a)
}

func createUserCmd() *cobra.Command {
	var email string
	var inactive bool

	cmd := &cobra.Command{
		Use:   "create-user <username>",
		Short: "Create a new API user and print their key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			return withApp(func(ctx context.Context, a *app.App) error {
				users := a.Storage.Users()

				if _, err := users.GetUserByUsername(ctx, username); err == nil {
					return fmt.Errorf("user %q already exists", username)
				}

				user := &models.User{
					ID:          uuid.NewString(),
					Username:    username,
					Email:       email,
					APIKey:      models.GenerateAPIKey(),
					IsAPIActive: !inactive,
					CreatedAt:   time.Now().UTC(),
				}
				if err := users.SaveUser(ctx, user); err != nil {
					return fmt.Errorf("failed to create user: %w", err)
				}

				fmt.Printf("Successfully created user %q\n", username)
				fmt.Printf("User ID: %s\n", user.ID)
				fmt.Printf("API Key: %s\n", user.APIKey)
				fmt.Printf("API Active: %t\n", user.IsAPIActive)
				fmt.Println("\nIMPORTANT: Save the API key securely. It cannot be retrieved again.")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address for the new user")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create user with API access disabled")
	return cmd
}

func listUsersCmd() *cobra.Command {
	var activeOnly, showKeys bool

	cmd := &cobra.Command{
		Use:   "list-users",
		Short: "List API users and their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app.App) error {
				users, err := a.Storage.Users().ListUsers(ctx)
				if err != nil {
					return err
				}

				shown := 0
				for _, user := range users {
					if activeOnly && !user.IsAPIActive {
						continue
					}
					shown++

					status := "API_INACTIVE"
					if user.IsAPIActive {
						status = "API_ACTIVE"
					}

					fmt.Printf("Username: %s\n", user.Username)
					fmt.Printf("Email: %s\n", user.Email)
					fmt.Printf("Status: %s\n", status)
					fmt.Printf("Created: %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
					if user.LastAPIAccess.IsZero() {
						fmt.Println("Last API Access: Never")
					} else {
						fmt.Printf("Last API Access: %s\n", user.LastAPIAccess.Format("2006-01-02 15:04:05"))
					}
					if showKeys {
						fmt.Printf("API Key: %.16s...\n", user.APIKey)
					}
					fmt.Println(strings.Repeat("-", 80))
				}

				if shown == 0 {
					fmt.Println("No users found.")
				} else {
					fmt.Printf("Found %d user(s)\n", shown)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Show only users with API access enabled")
	cmd.Flags().BoolVar(&showKeys, "show-keys", false, "Show partial API keys (first 16 chars)")
	return cmd
}

func regenerateKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate-key <username>",
		Short: "Issue a new API key for an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			return withApp(func(ctx context.Context, a *app.App) error {
				users := a.Storage.Users()

				user, err := users.GetUserByUsername(ctx, username)
				if err != nil {
					return fmt.Errorf("user %q does not exist", username)
				}

				oldKey := user.APIKey
				user.APIKey = models.GenerateAPIKey()
				if err := users.SaveUser(ctx, user); err != nil {
					return fmt.Errorf("failed to save new key: %w", err)
				}

				fmt.Printf("Successfully regenerated API key for user %q\n", username)
				fmt.Printf("User ID: %s\n", user.ID)
				fmt.Printf("Old API Key: %.16s...\n", oldKey)
				fmt.Printf("New API Key: %s\n", user.APIKey)
				fmt.Println("\nIMPORTANT: Save the new API key securely. The old key is now invalid.")
				return nil
			})
		},
	}
}
