package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// LoginForm collects credentials interactively when they were not supplied
// as flags. The password field is masked.
func LoginForm(defaultUsername string) (username, password string, err error) {
	username = defaultUsername

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Username").
			Placeholder("username").
			Value(&username).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("username is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("password is required")
				}
				return nil
			}),
	))

	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("login prompt failed: %w", err)
	}
	return username, password, nil
}
