package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/sheets/v4"
)

// scopes covers every service the stack exposes. Changing this list
// invalidates cached tokens; users re-run the auth flow after.
var scopes = []string{
	gmail.GmailSendScope,
	gmail.GmailComposeScope,
	sheets.SpreadsheetsScope,
	docs.DocumentsScope,
	drive.DriveFileScope,
	calendar.CalendarScope,
}

// Auth turns an OAuth installed-app credentials file plus a cached token
// into an authenticated HTTP client.
type Auth struct {
	CredentialsFile string
	TokenFile       string
}

// Client returns an HTTP client carrying the cached token. It never starts
// the interactive flow; Exchange and SaveToken must have produced the
// token file first.
func (a *Auth) Client(ctx context.Context) (*http.Client, error) {
	cfg, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}
	tok, err := a.token()
	if err != nil {
		return nil, fmt.Errorf("loading workspace token: %w (run \"stackflow auth\" first)", err)
	}
	return cfg.Client(ctx, tok), nil
}

// AuthURL returns the consent URL for the interactive flow.
func (a *Auth) AuthURL() (string, error) {
	cfg, err := a.oauthConfig()
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline), nil
}

// Exchange trades an authorization code for a token.
func (a *Auth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	cfg, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging auth code: %w", err)
	}
	return tok, nil
}

// SaveToken caches tok at the token file for later runs.
func (a *Auth) SaveToken(tok *oauth2.Token) error {
	if dir := filepath.Dir(a.TokenFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating token dir: %w", err)
		}
	}
	f, err := os.OpenFile(a.TokenFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

// HasToken reports whether a cached token file exists.
func (a *Auth) HasToken() bool {
	_, err := os.Stat(a.TokenFile)
	return err == nil
}

func (a *Auth) oauthConfig() (*oauth2.Config, error) {
	data, err := os.ReadFile(a.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading workspace credentials: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing workspace credentials: %w", err)
	}
	return cfg, nil
}

func (a *Auth) token() (*oauth2.Token, error) {
	f, err := os.Open(a.TokenFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}
	return tok, nil
}
