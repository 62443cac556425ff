package api

import (
	"context"
	"io"
	"net/http"
)

// GetCurrentUser fetches the profile behind the stored access token.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	token, err := c.requiredToken()
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.doRequest(ctx, http.MethodGet, "/users/current-user", token, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) UpdateAccountDetails(ctx context.Context, fullName, email string) (*User, error) {
	token, err := c.implicitToken()
	if err != nil {
		return nil, err
	}

	reqBody := map[string]string{
		"fullName": fullName,
		"email":    email,
	}
	var user User
	if err := c.doRequest(ctx, http.MethodPatch, "/users/update-account", token, reqBody, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUserAvatar replaces the account avatar. The backend expects the
// image under the "avatar" form field.
func (c *Client) UpdateUserAvatar(ctx context.Context, filename string, file io.Reader) (*User, error) {
	return c.uploadImage(ctx, "/users/avatar", "avatar", filename, file)
}

// UpdateUserCoverImage replaces the profile cover. The backend expects the
// image under the "coverImage" form field.
func (c *Client) UpdateUserCoverImage(ctx context.Context, filename string, file io.Reader) (*User, error) {
	return c.uploadImage(ctx, "/users/cover-image", "coverImage", filename, file)
}

func (c *Client) uploadImage(ctx context.Context, path, field, filename string, file io.Reader) (*User, error) {
	token, err := c.implicitToken()
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.doMultipart(ctx, http.MethodPatch, path, token, field, filename, file, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
