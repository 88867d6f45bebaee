package pipelines

import (
	"context"
	"fmt"
	"strings"

	"github.com/epmk/stackflow/internal/claude"
	"github.com/epmk/stackflow/internal/googleai"
	"github.com/epmk/stackflow/internal/pipeline"
)

// Catalog maps action names from pipeline files to runnable actions bound
// to the configured stacks.
type Catalog struct {
	stacks Stacks
}

func NewCatalog(stacks Stacks) *Catalog {
	return &Catalog{stacks: stacks}
}

// Lookup resolves an action name like "claude.ask" or "workspace.send_email".
func (c *Catalog) Lookup(name string) (pipeline.Action, error) {
	switch name {
	case "claude.ask":
		return c.claudeAsk, nil
	case "claude.agent":
		return c.claudeAgent, nil
	case "googleai.generate_image":
		return c.generateImage, nil
	case "googleai.generate_video":
		return c.generateVideo, nil
	case "workspace.send_email":
		return c.sendEmail, nil
	case "workspace.create_draft":
		return c.createDraft, nil
	case "workspace.read_sheet":
		return c.readSheet, nil
	case "workspace.write_sheet":
		return c.writeSheet, nil
	case "workspace.create_doc":
		return c.createDoc, nil
	case "workspace.upload_file":
		return c.uploadFile, nil
	}
	return nil, fmt.Errorf("unknown action %q", name)
}

func (c *Catalog) claudeAsk(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
	prompt := in.String("prompt")
	if prompt == "" {
		return nil, fmt.Errorf("claude.ask: 'prompt' input is required")
	}
	if lines := rowsToLines(in["context"]); len(lines) > 0 {
		prompt += "\n\n" + strings.Join(lines, "\n")
	}
	reply, err := c.stacks.Claude.AskModel(ctx, prompt, in.String("model"))
	if err != nil {
		return nil, err
	}
	return pipeline.Payload{"response": reply.Text, "cost": reply.Cost}, nil
}

func (c *Catalog) claudeAgent(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
	if c.stacks.Agent == nil {
		return nil, fmt.Errorf("claude.agent requires the cli backend")
	}
	prompt := in.String("prompt")
	if prompt == "" {
		return nil, fmt.Errorf("claude.agent: 'prompt' input is required")
	}
	reply, err := c.stacks.Agent.RunAgent(ctx, prompt, claude.AgentOptions{
		Tools:    in.Strings("tools"),
		MaxTurns: in.Int("max_turns"),
	})
	if err != nil {
		return nil, err
	}
	return pipeline.Payload{"response": reply.Text, "cost": reply.Cost}, nil
}

func (c *Catalog) generateImage(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
	res, err := c.stacks.Media.GenerateImage(ctx, googleai.ImageRequest{
		Prompt: in.String("prompt"),
		Model:  in.String("model"),
		Aspect: in.String("aspect"),
		Output: in.String("output"),
	})
	if err != nil {
		return nil, err
	}
	return pipeline.Payload{"image": res.Output}, nil
}

func (c *Catalog) generateVideo(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
	res, err := c.stacks.Media.GenerateVideo(ctx, googleai.VideoRequest{
		Prompt: in.String("prompt"),
		Fast:   in.Bool("fast"),
		Output: in.String("output"),
	})
	if err != nil {
		return nil, err
	}
	return pipeline.Payload{"video": res.Output}, nil
}

func (c *Catalog) sendEmail(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
	id, err := c.stacks.Workspace.SendEmail(ctx, in.String("to"), in.String("subject"), in.String("body"), in.Bool("html"))
	if err != nil {
		return nil, err
	}
	return pipeline.Payload{"success": true, "message_id": id}, nil
}

func (c *Catalog) createDraft(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
	id, err := c.stacks.Workspace.CreateDraft(ctx, in.String("to"), in.String("subject"), in.String("body"))
	if err != nil {
		return nil, err
	}
	return pipeline.Payload{"success": true, "draft_id": id}, nil
}

func (c *Catalog) readSheet(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
	rows, err := c.stacks.Workspace.ReadSheet(ctx, in.String("spreadsheet_id"), in.String("range"))
	if err != nil {
		return nil, err
	}
	return pipeline.Payload{"data": rows}, nil
}

func (c *Catalog) writeSheet(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
	n, err := c.stacks.Workspace.WriteSheet(ctx, in.String("spreadsheet_id"), in.String("range"), toRows(in["values"]))
	if err != nil {
		return nil, err
	}
	return pipeline.Payload{"success": true, "updated_cells": n}, nil
}

func (c *Catalog) createDoc(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
	id, err := c.stacks.Workspace.CreateDoc(ctx, in.String("title"), in.String("content"))
	if err != nil {
		return nil, err
	}
	return pipeline.Payload{"doc_id": id}, nil
}

func (c *Catalog) uploadFile(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
	id, err := c.stacks.Workspace.UploadFile(ctx, in.String("path"), in.String("folder_id"))
	if err != nil {
		return nil, err
	}
	return pipeline.Payload{"file_id": id}, nil
}

// rowsToLines renders tabular data one row per line, cells joined by " | ".
func rowsToLines(v any) []string {
	var lines []string
	switch rows := v.(type) {
	case [][]any:
		for _, row := range rows {
			lines = append(lines, joinCells(row))
		}
	case []any:
		for _, row := range rows {
			if cells, ok := row.([]any); ok {
				lines = append(lines, joinCells(cells))
			} else {
				lines = append(lines, describe(row))
			}
		}
	default:
		if s := describe(v); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

func joinCells(cells []any) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = describe(c)
	}
	return strings.Join(parts, " | ")
}

// describe renders an arbitrary resolved input as text for prompt building.
func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// toRows coerces resolved input values into the shape the Sheets API wants.
func toRows(v any) [][]any {
	switch rows := v.(type) {
	case [][]any:
		return rows
	case []any:
		out := make([][]any, 0, len(rows))
		for _, row := range rows {
			if cells, ok := row.([]any); ok {
				out = append(out, cells)
			} else {
				out = append(out, []any{row})
			}
		}
		return out
	case nil:
		return nil
	default:
		return [][]any{{v}}
	}
}
