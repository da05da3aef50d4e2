// internal/common/auth/google_test.go
package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "talenthub/internal/common/errors"
)

func tokenInfoServer(t *testing.T, identity GoogleIdentity) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "some-id-token", r.URL.Query().Get("id_token"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(identity)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleVerify(t *testing.T) {
	srv := tokenInfoServer(t, GoogleIdentity{
		Email:      "asha@example.com",
		GivenName:  "Asha",
		FamilyName: "Rao",
		Audience:   "client-123",
	})

	v := NewGoogleVerifier("client-123", srv.URL)
	identity, err := v.Verify(context.Background(), "some-id-token")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", identity.Email)
	assert.Equal(t, "Asha", identity.GivenName)
	assert.Equal(t, "Rao", identity.FamilyName)
}

func TestGoogleVerifyRejectsWrongAudience(t *testing.T) {
	srv := tokenInfoServer(t, GoogleIdentity{
		Email:    "asha@example.com",
		Audience: "someone-else",
	})

	v := NewGoogleVerifier("client-123", srv.URL)
	_, err := v.Verify(context.Background(), "some-id-token")
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeAuthenticationFailed, stdErr.Code)
}

func TestGoogleVerifyRejectsMissingEmail(t *testing.T) {
	srv := tokenInfoServer(t, GoogleIdentity{Audience: "client-123"})

	v := NewGoogleVerifier("client-123", srv.URL)
	_, err := v.Verify(context.Background(), "some-id-token")
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeAuthenticationFailed, stdErr.Code)
}

func TestGoogleVerifyRejectsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	v := NewGoogleVerifier("client-123", srv.URL)
	_, err := v.Verify(context.Background(), "some-id-token")
	var stdErr *apperrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, apperrors.ErrCodeAuthenticationFailed, stdErr.Code)
}
