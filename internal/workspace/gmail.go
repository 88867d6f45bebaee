package workspace

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"
)

// SendEmail sends a plain-text or HTML message from the authenticated
// account and returns the Gmail message ID.
func (s *Stack) SendEmail(ctx context.Context, to, subject, body string, html bool) (string, error) {
	svc, err := s.gmailService(ctx)
	if err != nil {
		return "", err
	}
	msg := &gmail.Message{Raw: encodeMessage(to, subject, body, html)}
	sent, err := svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("sending email: %w", err)
	}
	return sent.Id, nil
}

// CreateDraft stores a plain-text draft and returns its ID.
func (s *Stack) CreateDraft(ctx context.Context, to, subject, body string) (string, error) {
	svc, err := s.gmailService(ctx)
	if err != nil {
		return "", err
	}
	draft := &gmail.Draft{
		Message: &gmail.Message{Raw: encodeMessage(to, subject, body, false)},
	}
	created, err := svc.Users.Drafts.Create("me", draft).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating draft: %w", err)
	}
	return created.Id, nil
}

// encodeMessage builds an RFC 2822 message and encodes it the way the
// Gmail API's raw field expects, base64url with padding.
func encodeMessage(to, subject, body string, html bool) string {
	contentType := "text/plain"
	if html {
		contentType = "text/html"
	}
	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: " + contentType + "; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
