package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/assetdesk/assetdesk/api"
	"github.com/assetdesk/assetdesk/utils"
)

func WhoamiHandler(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	user, err := rt.client.GetCurrentUser(cmd.Context())
	if err != nil {
		return err
	}

	headers := []string{"Username", "Email", "Full Name", "Member Since"}
	data := [][]string{{
		user.Username,
		user.Email,
		user.FullName,
		utils.FormatTime(user.CreatedAt),
	}}
	utils.RenderTable(headers, data)

	return nil
}

func AccountUpdateHandler(cmd *cobra.Command, args []string) error {
	fullName, err := cmd.Flags().GetString("fullname")
	if err != nil {
		return err
	}
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		return err
	}
	if fullName == "" && email == "" {
		return errors.New("provide --fullname or --email")
	}

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	user, err := rt.client.UpdateAccountDetails(cmd.Context(), fullName, email)
	if err != nil {
		return err
	}

	fmt.Printf("Account updated: %s <%s>\n", user.FullName, user.Email)
	return nil
}

func AvatarHandler(cmd *cobra.Command, args []string) error {
	return uploadImage(cmd, args[0], (*api.Client).UpdateUserAvatar)
}

func CoverHandler(cmd *cobra.Command, args []string) error {
	return uploadImage(cmd, args[0], (*api.Client).UpdateUserCoverImage)
}

func uploadImage(cmd *cobra.Command, path string, upload func(*api.Client, context.Context, string, io.Reader) (*api.User, error)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	user, err := upload(rt.client, cmd.Context(), filepath.Base(path), file)
	if err != nil {
		return err
	}

	fmt.Printf("Image uploaded for %s\n", user.Username)
	return nil
}
