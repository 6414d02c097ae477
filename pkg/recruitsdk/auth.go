package recruitsdk

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token. It is always sent anonymously.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", req)
}

// RegisterDoctor creates a doctor account and returns its token.
func (c *Client) RegisterDoctor(ctx context.Context, req RegisterDoctorRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register-doctor", req)
}

// RegisterClinic creates a clinic account and returns its token.
func (c *Client) RegisterClinic(ctx context.Context, req RegisterClinicRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register-clinic", req)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*AuthResponse, error) {
	if err := c.validateBody(http.MethodPost, path, body); err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := c.Do(ctx, http.MethodPost, path, body, &resp, WithoutAuth(), withRoute(path)); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &ClientError{Message: "authentication response carried no token"}
	}
	return &resp, nil
}

// Me returns the identity behind the current (or given) token.
func (c *Client) Me(ctx context.Context, opts ...RequestOption) (*User, error) {
	var resp MeResponse
	opts = append(opts, withRoute("/auth/me"))
	if err := c.Do(ctx, http.MethodGet, "/auth/me", nil, &resp, opts...); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
