package api

import "context"

// LoginRequest is the credential body for the authentication endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the successful authentication body.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// User is the authenticated account record as the backend reports it.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// RefreshResponse is the body returned when exchanging a refresh token.
type RefreshResponse struct {
	Token string `json:"token"`
}

// Login authenticates against POST /auth/login/. Credential failures surface
// as *ValidationError with the flattened field messages.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.post(ctx, "/auth/login/", LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshToken exchanges a refresh token for a fresh access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	var resp RefreshResponse
	err := c.post(ctx, "/auth/refresh/", map[string]string{"refresh": refreshToken}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
