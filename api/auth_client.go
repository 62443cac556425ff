package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/assetdesk/assetdesk/session"
)

// Login authenticates against the backend and persists the returned token
// pair. Nothing is stored unless the response carries both tokens.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var sess Session
	if err := c.doRequest(ctx, http.MethodPost, "/users/login", "", req, &sess); err != nil {
		return nil, err
	}

	if sess.AccessToken == "" || sess.RefreshToken == "" {
		return nil, ErrMissingTokens
	}
	if err := c.store.SetTokens(sess.AccessToken, sess.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store tokens: %w", err)
	}

	return &sess, nil
}

// Register creates a new account. It does not log the account in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodPost, "/users/register", "", req, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Logout drops the local session before the request goes out, so the tokens
// are gone even when the backend call fails. Whatever goes wrong after that
// point is reported as the generic ErrLogoutFailed.
func (c *Client) Logout(ctx context.Context) error {
	token, err := c.requiredToken()
	if err != nil {
		return err
	}

	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}

	if err := c.doRequest(ctx, http.MethodPost, "/users/logout", token, nil, nil); err != nil {
		c.logger.Debug("Logout request failed", slog.String("error", err.Error()))
		return ErrLogoutFailed
	}

	return nil
}

// RefreshAccessToken trades the stored refresh token for a new access token
// and persists it. The stored refresh token is left untouched.
func (c *Client) RefreshAccessToken(ctx context.Context) (string, error) {
	refresh, err := c.store.RefreshToken()
	if err != nil && !errors.Is(err, session.ErrNoToken) {
		return "", err
	}

	reqBody := map[string]string{"refreshToken": refresh}
	var result struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/users/refresh-token", "", reqBody, &result); err != nil {
		return "", err
	}

	if result.AccessToken == "" {
		return "", ErrMissingTokens
	}
	if err := c.store.SetAccessToken(result.AccessToken); err != nil {
		return "", fmt.Errorf("failed to store access token: %w", err)
	}

	return result.AccessToken, nil
}

func (c *Client) ChangeCurrentPassword(ctx context.Context, oldPassword, newPassword string) error {
	token, err := c.implicitToken()
	if err != nil {
		return err
	}

	reqBody := map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}
	return c.doRequest(ctx, http.MethodPost, "/users/change-password", token, reqBody, nil)
}
