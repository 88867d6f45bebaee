package workspace

import (
	"context"
	"fmt"

	"google.golang.org/api/docs/v1"
)

// CreateDoc creates a document and, when content is non-empty, inserts it
// at the top of the body. Returns the document ID.
func (s *Stack) CreateDoc(ctx context.Context, title, content string) (string, error) {
	svc, err := s.docsService(ctx)
	if err != nil {
		return "", err
	}
	doc, err := svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("creating document: %w", err)
	}
	if content != "" {
		req := &docs.BatchUpdateDocumentRequest{
			Requests: []*docs.Request{{
				InsertText: &docs.InsertTextRequest{
					Text:     content,
					Location: &docs.Location{Index: 1},
				},
			}},
		}
		if _, err := svc.Documents.BatchUpdate(doc.DocumentId, req).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("inserting document text: %w", err)
		}
	}
	return doc.DocumentId, nil
}
