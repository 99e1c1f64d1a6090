package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runWhoami(app)
		},
	}
}

func runWhoami(app *App) error {
	if !app.Session.IsAuthenticated() {
		return fmt.Errorf("not logged in. Please run 'clusterview login' first")
	}

	profile := app.Session.Profile()
	if profile == nil {
		// Token without a cached profile: try a best-effort refresh. The
		// refresh may itself discover an expired credential and tear the
		// session down, so re-check before reporting.
		app.Session.FetchProfile(cmdContext())
		if !app.Session.IsAuthenticated() {
			return fmt.Errorf("session expired. Please run 'clusterview login' again")
		}
		profile = app.Session.Profile()
	}

	if profile != nil {
		fmt.Printf("User:       %s\n", profile.User.Username)
		if profile.User.Email != "" {
			fmt.Printf("Email:      %s\n", profile.User.Email)
		}
		if len(profile.Roles) > 0 {
			fmt.Printf("Roles:      %s\n", strings.Join(profile.Roles, ", "))
		}
		if len(profile.Privileges) > 0 {
			fmt.Printf("Privileges: %s\n", strings.Join(profile.Privileges, ", "))
		}
	} else {
		fmt.Println("Logged in (profile unavailable)")
	}

	printTokenClaims(app.Session.Token())
	return nil
}

// printTokenClaims shows claims from the locally held token. The signature
// is not checked here; the backend remains the authority on validity.
func printTokenClaims(token string) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return
	}

	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		fmt.Printf("User ID:    %s\n", userID)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		fmt.Printf("Expires:    %s\n", exp.Time.Format(time.RFC3339))
	}
}
