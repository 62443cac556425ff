package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/assetdesk/assetdesk/api"
)

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)

	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		return "", errors.New("no input")
	}

	return strings.TrimSpace(scanner.Text()), nil
}

// flagOrPrompt returns the flag value, falling back to an interactive
// prompt when the flag was left empty.
func flagOrPrompt(cmd *cobra.Command, flag, prompt string) (string, error) {
	value, err := cmd.Flags().GetString(flag)
	if err != nil {
		return "", err
	}
	if value != "" {
		return value, nil
	}
	return promptLine(prompt)
}

func LoginHandler(cmd *cobra.Command, args []string) error {
	username, err := cmd.Flags().GetString("username")
	if err != nil {
		return err
	}
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		return err
	}
	if username == "" && email == "" {
		return errors.New("provide --username or --email")
	}

	password, err := flagOrPrompt(cmd, "password", "Password: ")
	if err != nil {
		return err
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	sess, err := rt.client.Login(cmd.Context(), api.LoginRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	if sess.User != nil {
		fmt.Printf("Logged in as %s\n", sess.User.Username)
	} else {
		fmt.Println("Logged in")
	}
	return nil
}

func RegisterHandler(cmd *cobra.Command, args []string) error {
	fullName, err := cmd.Flags().GetString("fullname")
	if err != nil {
		return err
	}
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		return err
	}
	username, err := cmd.Flags().GetString("username")
	if err != nil {
		return err
	}
	if email == "" || username == "" {
		return errors.New("--email and --username are required")
	}

	password, err := flagOrPrompt(cmd, "password", "Password: ")
	if err != nil {
		return err
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	user, err := rt.client.Register(cmd.Context(), api.RegisterRequest{
		FullName: fullName,
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s. You can now log in.\n", user.Username)
	return nil
}

func LogoutHandler(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.client.Logout(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}

func RefreshHandler(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if _, err := rt.client.RefreshAccessToken(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("Access token refreshed")
	return nil
}

func PasswdHandler(cmd *cobra.Command, args []string) error {
	oldPassword, err := flagOrPrompt(cmd, "old", "Current password: ")
	if err != nil {
		return err
	}
	newPassword, err := flagOrPrompt(cmd, "new", "New password: ")
	if err != nil {
		return err
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.client.ChangeCurrentPassword(cmd.Context(), oldPassword, newPassword); err != nil {
		return err
	}

	fmt.Println("Password changed")
	return nil
}
