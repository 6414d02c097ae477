package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthnAndRequireRole(t *testing.T) {
	t.Parallel()

	verify := func(raw string) (Principal, error) {
		switch raw {
		case "doctor-token":
			return Principal{UserID: "u1", Role: "doctor"}, nil
		case "clinic-token":
			return Principal{UserID: "u2", Role: "clinic"}, nil
		}
		return Principal{}, errors.New("unknown token")
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		require.True(t, ok)
		WriteJSON(w, http.StatusOK, map[string]string{"id": p.UserID, "token": p.Token})
	}), AuthnMiddleware(verify), RequireRole("doctor"))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer clinic-token", http.StatusForbidden},
		{"allowed", "Bearer doctor-token", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/doctors/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusUnauthorized {
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
				require.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}
