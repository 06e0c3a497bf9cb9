package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	ErrInvalidCode     = errors.New("invalid authorization code")
	ErrFailedToGetUser = errors.New("failed to get user info from Google")
	ErrInvalidState    = errors.New("invalid state parameter")
	ErrNotConfigured   = errors.New("Google OAuth is not configured")
)

// Account is the subset of the Google profile the console cares about.
type Account struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleProvider performs the Google OAuth code flow for operator sign-in.
type GoogleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider creates a Google OAuth provider. Empty credentials are
// allowed; the provider then reports itself unconfigured and the sign-in
// routes reject with ErrNotConfigured.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// Configured reports whether client credentials are present.
func (p *GoogleProvider) Configured() bool {
	return p.config.ClientID != "" && p.config.ClientSecret != ""
}

// AuthURL returns the consent page URL for the given CSRF state.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeAccount trades the authorization code for the Google account
// behind it.
func (p *GoogleProvider) ExchangeAccount(ctx context.Context, code string) (*Account, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUser, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrFailedToGetUser, resp.StatusCode, string(body))
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetUser, err)
	}
	return &account, nil
}
