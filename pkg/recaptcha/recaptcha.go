package recaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/roleready/roleready-api/pkg/httpclient"
)

const verifyURL = "https://www.google.com/recaptcha/api/siteverify"

// ErrVerificationFailed is returned when Google rejects the token.
var ErrVerificationFailed = errors.New("recaptcha verification failed")

// Response is the body returned by the siteverify endpoint
type Response struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verifier checks reCAPTCHA tokens. A Verifier without a secret accepts
// every token, which keeps local setups working without Google keys.
type Verifier struct {
	secretKey  string
	endpoint   string
	httpClient httpclient.Client
}

// NewVerifier creates a new reCAPTCHA verifier
func NewVerifier(secretKey string, httpClient httpclient.Client) *Verifier {
	return &Verifier{
		secretKey:  secretKey,
		endpoint:   verifyURL,
		httpClient: httpClient,
	}
}

// Enabled reports whether tokens are actually checked.
func (v *Verifier) Enabled() bool {
	return v != nil && v.secretKey != ""
}

// Verify validates token with Google's API
func (v *Verifier) Verify(ctx context.Context, token string, remoteIP string) error {
	if !v.Enabled() {
		return nil
	}
	if token == "" {
		return fmt.Errorf("%w: missing token", ErrVerificationFailed)
	}

	data := url.Values{}
	data.Set("secret", v.secretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build recaptcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify recaptcha: %w", err)
	}
	defer resp.Body.Close()

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode recaptcha response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("%w: %s", ErrVerificationFailed, strings.Join(result.ErrorCodes, ","))
	}

	return nil
}
