// internal/common/auth/google.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "talenthub/internal/common/errors"
	httpclient "talenthub/internal/common/http"
)

const defaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier validates Google ID tokens through the tokeninfo endpoint.
type GoogleVerifier struct {
	clientID     string
	tokenInfoURL string
	client       *httpclient.Client
}

// GoogleIdentity is the subset of tokeninfo claims the signup flow needs.
type GoogleIdentity struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	Audience   string `json:"aud"`
	Subject    string `json:"sub"`
}

func NewGoogleVerifier(clientID, tokenInfoURL string) *GoogleVerifier {
	if tokenInfoURL == "" {
		tokenInfoURL = defaultTokenInfoURL
	}
	return &GoogleVerifier{
		clientID:     clientID,
		tokenInfoURL: tokenInfoURL,
		client:       httpclient.NewClient(10 * time.Second),
	}
}

// Verify checks an ID token and returns the Google identity it asserts.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	endpoint := v.tokenInfoURL + "?id_token=" + url.QueryEscape(idToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	var identity GoogleIdentity
	if err := v.client.DoJSON(ctx, req, &identity); err != nil {
		return nil, apperrors.NewAuthenticationError("google token verification failed")
	}

	if v.clientID != "" && identity.Audience != v.clientID {
		return nil, apperrors.NewAuthenticationError(
			fmt.Sprintf("token issued for a different client: %s", identity.Audience))
	}
	if identity.Email == "" {
		return nil, apperrors.NewAuthenticationError("google token carries no email")
	}

	return &identity, nil
}
