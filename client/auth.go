package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"folio/internal/model"
)

// AuthService handles registration, login and the persisted session.
type AuthService struct {
	c *Client
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService { return &AuthService{c: c} }

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new account. Public: no token is sent.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	var user model.User
	if err := s.c.do(ctx, http.MethodPost, "/auth/register", req, &user, reqOpts{public: true}); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token (form-encoded, the backend
// expects the OAuth2 password grant field names), persists the token, then
// fetches and persists the user record.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	form := url.Values{}
	form.Set("username", email) // the grant form calls it username, the value is the email
	form.Set("password", password)

	var token TokenResponse
	if err := s.c.do(ctx, http.MethodPost, "/auth/login", nil, &token, reqOpts{public: true, form: form}); err != nil {
		return nil, err
	}
	if err := s.c.session.Save(token.AccessToken, nil); err != nil {
		return nil, &APIError{Message: "failed to persist session", Detail: err.Error()}
	}
	s.c.sessionRestored()

	user, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.c.session.Save(token.AccessToken, user); err != nil {
		return nil, &APIError{Message: "failed to persist session", Detail: err.Error()}
	}
	return user, nil
}

// Me fetches the authenticated user.
func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.c.do(ctx, http.MethodGet, "/auth/me", nil, &user, reqOpts{}); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the persisted token and user record.
func (s *AuthService) Logout() error {
	return s.c.session.Clear()
}

// IsAuthenticated reports whether a token is persisted.
func (s *AuthService) IsAuthenticated() bool {
	return s.c.session.Token() != ""
}

// IsAdmin reports whether the cached user has an admin role.
func (s *AuthService) IsAdmin() bool {
	user := s.c.session.User()
	if user == nil {
		return false
	}
	role := model.Role(strings.ToUpper(string(user.Role)))
	return role == model.RoleAdmin || role == model.RoleSuperAdmin
}

// IsSuperAdmin reports whether the cached user is a superadmin.
func (s *AuthService) IsSuperAdmin() bool {
	user := s.c.session.User()
	return user != nil && model.Role(strings.ToUpper(string(user.Role))) == model.RoleSuperAdmin
}
