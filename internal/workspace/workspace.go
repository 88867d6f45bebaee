// Package workspace wraps the Google Workspace services a pipeline touches:
// Gmail, Sheets, Docs, Drive, and Calendar. Services are built lazily on
// first use, so a pipeline that never sends mail never authenticates.
package workspace

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/epmk/stackflow/internal/config"
)

// Stack exposes the Workspace operations behind one lazily initialized
// service set.
type Stack struct {
	auth *Auth
	cfg  config.WorkspaceConfig

	mu       sync.Mutex
	client   *http.Client
	gmail    *gmail.Service
	sheets   *sheets.Service
	docs     *docs.Service
	drive    *drive.Service
	calendar *calendar.Service
}

// NewStack builds a stack from config. Paths may use a leading "~".
func NewStack(cfg config.WorkspaceConfig) *Stack {
	return &Stack{
		auth: &Auth{
			CredentialsFile: config.ExpandHome(cfg.CredentialsFile),
			TokenFile:       config.ExpandHome(cfg.TokenFile),
		},
		cfg: cfg,
	}
}

// Auth exposes the underlying auth for the login flow and doctor checks.
func (s *Stack) Auth() *Auth { return s.auth }

func (s *Stack) httpClient(ctx context.Context) (*http.Client, error) {
	if s.client != nil {
		return s.client, nil
	}
	c, err := s.auth.Client(ctx)
	if err != nil {
		return nil, err
	}
	s.client = c
	return c, nil
}

func (s *Stack) gmailService(ctx context.Context) (*gmail.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gmail != nil {
		return s.gmail, nil
	}
	hc, err := s.httpClient(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("building gmail service: %w", err)
	}
	s.gmail = svc
	return svc, nil
}

func (s *Stack) sheetsService(ctx context.Context) (*sheets.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sheets != nil {
		return s.sheets, nil
	}
	hc, err := s.httpClient(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("building sheets service: %w", err)
	}
	s.sheets = svc
	return svc, nil
}

func (s *Stack) docsService(ctx context.Context) (*docs.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs != nil {
		return s.docs, nil
	}
	hc, err := s.httpClient(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := docs.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("building docs service: %w", err)
	}
	s.docs = svc
	return svc, nil
}

func (s *Stack) driveService(ctx context.Context) (*drive.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drive != nil {
		return s.drive, nil
	}
	hc, err := s.httpClient(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := drive.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("building drive service: %w", err)
	}
	s.drive = svc
	return svc, nil
}

func (s *Stack) calendarService(ctx context.Context) (*calendar.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calendar != nil {
		return s.calendar, nil
	}
	hc, err := s.httpClient(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("building calendar service: %w", err)
	}
	s.calendar = svc
	return svc, nil
}

func (s *Stack) calendarID() string {
	if s.cfg.CalendarID == "" {
		return "primary"
	}
	return s.cfg.CalendarID
}
