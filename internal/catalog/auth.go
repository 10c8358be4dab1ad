package catalog

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	cookiejar "github.com/juju/persistent-cookiejar"
	"go.uber.org/zap"

	"github.com/lazyvibe/storefront/internal/model"
)

// CookieFile is the cookie jar file created in the data directory.
const CookieFile = "cookies.json"

var (
	// ErrPasswordMismatch is returned by Register before any request is made.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")
)

// OpenCookieJar opens the persistent jar holding the auth cookies in dataDir.
func OpenCookieJar(dataDir string) (*cookiejar.Jar, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return cookiejar.New(&cookiejar.Options{
		Filename: filepath.Join(dataDir, CookieFile),
	})
}

// SaveCookies writes the auth cookies to disk when the client uses a
// persistent jar.
func (c *Client) SaveCookies() error {
	jar, ok := c.http.Jar.(*cookiejar.Jar)
	if !ok {
		return nil
	}
	return jar.Save()
}

type credentials struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// Login signs in and returns the user. The session cookie lands in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	var out model.User
	if err := c.do(ctx, http.MethodPost, "auth/api/v1/login", nil, credentials{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	c.persistCookies()
	c.logger.Info("signed in", zap.String("email", out.Email))
	return &out, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, email, password, confirm string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrMissingCredentials
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	body := credentials{Email: email, Password: password, ConfirmPassword: confirm}
	return c.do(ctx, http.MethodPost, "auth/api/v1/register", nil, body, nil)
}

// ValidateToken returns the user owning the current session cookie.
func (c *Client) ValidateToken(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "auth/api/v1/validate-token", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshToken exchanges the refresh cookie for a new session cookie.
func (c *Client) RefreshToken(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "auth/api/v1/refresh", nil, nil, nil); err != nil {
		return err
	}
	c.persistCookies()
	return nil
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "auth/api/v1/logout", nil, nil, nil); err != nil {
		return err
	}
	c.persistCookies()
	return nil
}

// VerifyAuth validates the session, refreshing it once if validation fails.
func (c *Client) VerifyAuth(ctx context.Context) (*model.User, error) {
	user, err := c.ValidateToken(ctx)
	if err == nil {
		return user, nil
	}
	c.logger.Debug("session invalid, refreshing", zap.Error(err))
	if err := c.RefreshToken(ctx); err != nil {
		return nil, err
	}
	return c.ValidateToken(ctx)
}

func (c *Client) persistCookies() {
	if err := c.SaveCookies(); err != nil {
		c.logger.Warn("saving cookies failed", zap.Error(err))
	}
}
