package recruitsdk

import (
	"context"
	"net/http"
)

// DoctorProfile fetches the signed-in doctor's profile.
func (c *Client) DoctorProfile(ctx context.Context) (*DoctorProfile, error) {
	var p DoctorProfile
	if err := c.Do(ctx, http.MethodGet, "/doctors/me", nil, &p, withRoute("/doctors/me")); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateDoctorProfile replaces the signed-in doctor's profile.
func (c *Client) UpdateDoctorProfile(ctx context.Context, p DoctorProfile) (*DoctorProfile, error) {
	var out DoctorProfile
	if err := c.Do(ctx, http.MethodPut, "/doctors/me", p, &out, withRoute("/doctors/me")); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClinicProfile fetches the signed-in clinic's profile.
func (c *Client) ClinicProfile(ctx context.Context) (*ClinicProfile, error) {
	var p ClinicProfile
	if err := c.Do(ctx, http.MethodGet, "/clinics/me", nil, &p, withRoute("/clinics/me")); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateClinicProfile replaces the signed-in clinic's profile.
func (c *Client) UpdateClinicProfile(ctx context.Context, p ClinicProfile) (*ClinicProfile, error) {
	var out ClinicProfile
	if err := c.Do(ctx, http.MethodPut, "/clinics/me", p, &out, withRoute("/clinics/me")); err != nil {
		return nil, err
	}
	return &out, nil
}
