// Package pipelines holds the built-in pipeline definitions, the action
// catalog file-defined pipelines draw from, and the YAML definition
// loader.
package pipelines

import (
	"context"

	"github.com/epmk/stackflow/internal/claude"
	"github.com/epmk/stackflow/internal/googleai"
)

// Assistant answers prompts, optionally on a named model.
type Assistant interface {
	Ask(ctx context.Context, prompt string) (*claude.Reply, error)
	AskModel(ctx context.Context, prompt, model string) (*claude.Reply, error)
}

// Agent runs tool-using prompts. Only the CLI backend supports it.
type Agent interface {
	RunAgent(ctx context.Context, prompt string, opts claude.AgentOptions) (*claude.Reply, error)
}

// MediaGenerator renders images and videos.
type MediaGenerator interface {
	GenerateImage(ctx context.Context, req googleai.ImageRequest) (*googleai.Result, error)
	GenerateVideo(ctx context.Context, req googleai.VideoRequest) (*googleai.Result, error)
}

// Workspace is the Google Workspace surface pipeline actions use.
type Workspace interface {
	SendEmail(ctx context.Context, to, subject, body string, html bool) (string, error)
	CreateDraft(ctx context.Context, to, subject, body string) (string, error)
	ReadSheet(ctx context.Context, spreadsheetID, readRange string) ([][]any, error)
	WriteSheet(ctx context.Context, spreadsheetID, writeRange string, values [][]any) (int64, error)
	CreateDoc(ctx context.Context, title, content string) (string, error)
	UploadFile(ctx context.Context, path, folderID string) (string, error)
}

// Stacks bundles the backends pipeline actions dispatch to. A nil field is
// fine as long as no step touches it; steps that do fail at run time.
type Stacks struct {
	Claude    Assistant
	Agent     Agent // nil when the Claude backend cannot run tools
	Media     MediaGenerator
	Workspace Workspace
}
