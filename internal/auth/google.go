package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Sadok2512/NoteAI-1/internal/apperr"
)

// googleTokenInfoURL is Google's public ID-token verification endpoint.
const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier validates Google ID tokens against the tokeninfo
// endpoint and extracts the email claim.
type GoogleVerifier struct {
	// ClientID, when non-empty, must match the token's audience.
	ClientID string
	// Endpoint overrides the verification URL; tests point it at a stub.
	Endpoint string
	// HTTPClient is the client used for verification calls.
	HTTPClient *http.Client
}

// NewGoogleVerifier returns a verifier for the given OAuth client ID
// with a fixed call timeout.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		ClientID:   clientID,
		Endpoint:   googleTokenInfoURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenInfo struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Audience      string `json:"aud"`
}

// Verify checks the credential with Google and returns the email it
// asserts. Any failure — transport, non-200 status, missing email, or
// audience mismatch — yields apperr.ErrUnauthorized.
func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (string, error) {
	if credential == "" {
		return "", apperr.ErrUnauthorized
	}

	reqURL := v.Endpoint + "?id_token=" + url.QueryEscape(credential)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}

	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperr.ErrUnauthorized
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrUnauthorized, err)
	}

	if info.Email == "" {
		return "", apperr.ErrUnauthorized
	}
	if v.ClientID != "" && info.Audience != v.ClientID {
		return "", apperr.ErrUnauthorized
	}

	return info.Email, nil
}
