package pipelines

import (
	"context"
	"fmt"
	"strings"

	"github.com/epmk/stackflow/internal/claude"
	"github.com/epmk/stackflow/internal/googleai"
	"github.com/epmk/stackflow/internal/pipeline"
)

// NewsletterOptions parameterize the newsletter pipeline.
type NewsletterOptions struct {
	Topic         string
	SpreadsheetID string // optional; switches analyze from research to sheet data
	SheetRange    string // empty means Sheet1!A1:Z100
	Recipient     string // optional; adds the Gmail draft step
}

// analyzeRowLimit caps how many sheet rows feed the analysis prompt.
const analyzeRowLimit = 50

// Newsletter builds the pull → analyze → write → image → draft pipeline.
// Without a spreadsheet, analysis falls back to topic research; without a
// recipient, no draft step is added.
func Newsletter(stacks Stacks, opts NewsletterOptions) *pipeline.Pipeline {
	sheetRange := opts.SheetRange
	if sheetRange == "" {
		sheetRange = "Sheet1!A1:Z100"
	}

	p := pipeline.New("newsletter", "Generate newsletter about: "+opts.Topic)

	if opts.SpreadsheetID != "" {
		p.AddStep(pipeline.Step{
			Name: "pull_data",
			Inputs: pipeline.Inputs{
				"spreadsheet_id": pipeline.Lit(opts.SpreadsheetID),
				"range":          pipeline.Lit(sheetRange),
			},
			Outputs: []string{"data"},
			Action: func(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
				rows, err := stacks.Workspace.ReadSheet(ctx, in.String("spreadsheet_id"), in.String("range"))
				if err != nil {
					return nil, err
				}
				return pipeline.Payload{"data": rows}, nil
			},
		})

		p.AddStep(pipeline.Step{
			Name: "analyze",
			Inputs: pipeline.Inputs{
				"data":    pipeline.RefKey("pull_data", "data"),
				"context": pipeline.Lit(opts.Topic),
			},
			Outputs: []string{"analysis", "cost"},
			Action: func(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
				lines := rowsToLines(in["data"])
				if len(lines) > analyzeRowLimit {
					lines = lines[:analyzeRowLimit]
				}
				prompt := fmt.Sprintf(
					"Analyze this data and provide key insights for a newsletter:\n\n"+
						"Context: %s\n\n"+
						"Data:\n%s\n\n"+
						"Provide:\n"+
						"1. Key trends or patterns\n"+
						"2. Notable highlights\n"+
						"3. Actionable insights\n"+
						"4. A brief summary paragraph suitable for an email newsletter",
					in.String("context"), strings.Join(lines, "\n"))
				reply, err := stacks.Claude.AskModel(ctx, prompt, claude.ModelSonnet)
				if err != nil {
					return nil, err
				}
				return pipeline.Payload{"analysis": reply.Text, "cost": reply.Cost}, nil
			},
		})
	} else {
		p.AddStep(pipeline.Step{
			Name:    "analyze",
			Inputs:  pipeline.Inputs{"topic": pipeline.Lit(opts.Topic)},
			Outputs: []string{"analysis", "cost"},
			Action: func(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
				reply, err := stacks.Claude.AskModel(ctx,
					"Research recent news and updates about: "+in.String("topic"),
					claude.ModelSonnet)
				if err != nil {
					return nil, err
				}
				return pipeline.Payload{"analysis": reply.Text, "cost": reply.Cost}, nil
			},
		})
	}

	p.AddStep(pipeline.Step{
		Name: "write",
		Inputs: pipeline.Inputs{
			"analysis": pipeline.RefKey("analyze", "analysis"),
			"topic":    pipeline.Lit(opts.Topic),
		},
		Outputs: []string{"newsletter", "cost"},
		Action: func(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
			prompt := fmt.Sprintf(
				"Write a professional newsletter email about %q based on this analysis:\n\n%s\n\n"+
					"Format:\n"+
					"- Engaging subject line\n"+
					"- Brief intro\n"+
					"- 3-4 key points with headers\n"+
					"- Call to action\n"+
					"- Professional sign-off\n\n"+
					"Keep it concise and scannable.",
				in.String("topic"), in.String("analysis"))
			reply, err := stacks.Claude.AskModel(ctx, prompt, claude.ModelSonnet)
			if err != nil {
				return nil, err
			}
			return pipeline.Payload{"newsletter": reply.Text, "cost": reply.Cost}, nil
		},
	})

	p.AddStep(pipeline.Step{
		Name:    "image",
		Inputs:  pipeline.Inputs{"topic": pipeline.Lit(opts.Topic)},
		Outputs: []string{"image"},
		Action: func(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
			res, err := stacks.Media.GenerateImage(ctx, googleai.ImageRequest{
				Prompt: fmt.Sprintf("Professional email newsletter header banner: %s. Clean, modern design with subtle colors.", in.String("topic")),
				Model:  "nano-banana",
				Aspect: "16:9",
			})
			if err != nil {
				return nil, err
			}
			return pipeline.Payload{"image": res.Output}, nil
		},
	})

	if opts.Recipient != "" {
		p.AddStep(pipeline.Step{
			Name: "draft",
			Inputs: pipeline.Inputs{
				"to":      pipeline.Lit(opts.Recipient),
				"subject": pipeline.Lit("Newsletter: " + opts.Topic),
				"body":    pipeline.RefKey("write", "newsletter"),
			},
			Outputs: []string{"draft_id"},
			Action: func(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
				subject, body := splitSubject(in.String("body"), in.String("subject"))
				draftID, err := stacks.Workspace.CreateDraft(ctx, in.String("to"), subject, body)
				if err != nil {
					return nil, err
				}
				return pipeline.Payload{"draft_id": draftID}, nil
			},
		})
	}

	return p
}

// splitSubject pulls a leading "Subject:" line out of generated newsletter
// text, falling back to the given subject.
func splitSubject(body, fallback string) (subject, rest string) {
	trimmed := strings.TrimSpace(body)
	lines := strings.Split(trimmed, "\n")
	first := lines[0]
	if len(first) >= 8 && strings.EqualFold(first[:8], "subject:") {
		return strings.TrimSpace(first[8:]), strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return fallback, trimmed
}
