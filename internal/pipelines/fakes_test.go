package pipelines

import (
	"context"
	"fmt"
	"strings"

	"github.com/epmk/stackflow/internal/claude"
	"github.com/epmk/stackflow/internal/googleai"
)

// fakeAssistant records prompts and answers from a canned reply function.
type fakeAssistant struct {
	prompts []string
	models  []string
	reply   func(prompt string) *claude.Reply
	err     error
	failOn  string // prompt substring that triggers err
}

func (f *fakeAssistant) Ask(ctx context.Context, prompt string) (*claude.Reply, error) {
	return f.AskModel(ctx, prompt, "")
}

func (f *fakeAssistant) AskModel(ctx context.Context, prompt, model string) (*claude.Reply, error) {
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, model)
	if f.err != nil && (f.failOn == "" || strings.Contains(prompt, f.failOn)) {
		return nil, f.err
	}
	if f.reply != nil {
		return f.reply(prompt), nil
	}
	return &claude.Reply{Text: "reply to: " + prompt, Cost: 0.01}, nil
}

type fakeAgent struct {
	prompts []string
	opts    []claude.AgentOptions
	reply   *claude.Reply
	err     error
}

func (f *fakeAgent) RunAgent(ctx context.Context, prompt string, opts claude.AgentOptions) (*claude.Reply, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, f.err
	}
	if f.reply != nil {
		return f.reply, nil
	}
	return &claude.Reply{Text: "agent done", Cost: 0.05}, nil
}

type fakeMedia struct {
	images []googleai.ImageRequest
	videos []googleai.VideoRequest
	err    error
}

func (f *fakeMedia) GenerateImage(ctx context.Context, req googleai.ImageRequest) (*googleai.Result, error) {
	f.images = append(f.images, req)
	if f.err != nil {
		return nil, f.err
	}
	return &googleai.Result{Output: "output/image.png"}, nil
}

func (f *fakeMedia) GenerateVideo(ctx context.Context, req googleai.VideoRequest) (*googleai.Result, error) {
	f.videos = append(f.videos, req)
	if f.err != nil {
		return nil, f.err
	}
	return &googleai.Result{Output: "output/video.mp4"}, nil
}

// fakeWorkspace records every call and hands back canned identifiers.
type fakeWorkspace struct {
	emails    []string // "to|subject|body"
	drafts    []string
	docs      []string // "title|content"
	sheetRows [][]any
	reads     []string // "id|range"
	writes    []string
	uploads   []string
	err       error
}

func (f *fakeWorkspace) SendEmail(ctx context.Context, to, subject, body string, html bool) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.emails = append(f.emails, fmt.Sprintf("%s|%s|%s", to, subject, body))
	return "msg-1", nil
}

func (f *fakeWorkspace) CreateDraft(ctx context.Context, to, subject, body string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.drafts = append(f.drafts, fmt.Sprintf("%s|%s|%s", to, subject, body))
	return "draft-1", nil
}

func (f *fakeWorkspace) ReadSheet(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.reads = append(f.reads, spreadsheetID+"|"+readRange)
	return f.sheetRows, nil
}

func (f *fakeWorkspace) WriteSheet(ctx context.Context, spreadsheetID, writeRange string, values [][]any) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.writes = append(f.writes, fmt.Sprintf("%s|%s|%d", spreadsheetID, writeRange, len(values)))
	return int64(len(values)), nil
}

func (f *fakeWorkspace) CreateDoc(ctx context.Context, title, content string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.docs = append(f.docs, title+"|"+content)
	return "doc-1", nil
}

func (f *fakeWorkspace) UploadFile(ctx context.Context, path, folderID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, path+"|"+folderID)
	return "file-1", nil
}
