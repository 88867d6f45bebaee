package pipelines

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/epmk/stackflow/internal/claude"
	"github.com/epmk/stackflow/internal/googleai"
	"github.com/epmk/stackflow/internal/pipeline"
)

// ContentOptions parameterize the content pipeline.
type ContentOptions struct {
	Topic       string
	ContentType string // empty means "blog post"
}

// writeInputs and writeResult give the write step a concrete contract.
type writeInputs struct {
	Topic       string `mapstructure:"topic"`
	Research    string `mapstructure:"research"`
	ContentType string `mapstructure:"content_type"`
}

type writeResult struct {
	Content string  `mapstructure:"content"`
	Cost    float64 `mapstructure:"cost"`
}

// Content builds the research → write → image → save pipeline.
func Content(stacks Stacks, opts ContentOptions) *pipeline.Pipeline {
	contentType := opts.ContentType
	if contentType == "" {
		contentType = "blog post"
	}
	title := cases.Title(language.English).String(contentType) + ": " + opts.Topic

	p := pipeline.New("content_creation",
		fmt.Sprintf("Create %s about: %s", contentType, opts.Topic))

	p.AddStep(pipeline.Step{
		Name:    "research",
		Inputs:  pipeline.Inputs{"topic": pipeline.Lit(opts.Topic)},
		Outputs: []string{"research", "cost"},
		Action: func(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
			reply, err := stacks.Claude.AskModel(ctx,
				"Research this topic and provide key points, statistics, and insights: "+in.String("topic"),
				claude.ModelSonnet)
			if err != nil {
				return nil, err
			}
			return pipeline.Payload{"research": reply.Text, "cost": reply.Cost}, nil
		},
	})

	p.AddStep(pipeline.Step{
		Name: "write",
		Inputs: pipeline.Inputs{
			"topic":        pipeline.Lit(opts.Topic),
			"research":     pipeline.RefKey("research", "research"),
			"content_type": pipeline.Lit(contentType),
		},
		Outputs: []string{"content", "cost"},
		Action: pipeline.Typed(func(ctx context.Context, in writeInputs) (writeResult, error) {
			prompt := fmt.Sprintf(
				"Based on this research, write a compelling %s about %q.\n\n"+
					"Research:\n%s\n\n"+
					"Write in a professional but engaging tone. Include a title and clear sections.",
				in.ContentType, in.Topic, in.Research)
			reply, err := stacks.Claude.AskModel(ctx, prompt, claude.ModelSonnet)
			if err != nil {
				return writeResult{}, err
			}
			return writeResult{Content: reply.Text, Cost: reply.Cost}, nil
		}),
	})

	p.AddStep(pipeline.Step{
		Name:    "image",
		Inputs:  pipeline.Inputs{"topic": pipeline.Lit(opts.Topic)},
		Outputs: []string{"image_result"},
		Action: func(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
			res, err := stacks.Media.GenerateImage(ctx, googleai.ImageRequest{
				Prompt: fmt.Sprintf("Professional hero banner image for: %s. Modern, clean design.", in.String("topic")),
				Model:  "nano-banana-pro",
				Aspect: "16:9",
			})
			if err != nil {
				return nil, err
			}
			return pipeline.Payload{"image_result": res.Output}, nil
		},
	})

	p.AddStep(pipeline.Step{
		Name: "save",
		Inputs: pipeline.Inputs{
			"title":   pipeline.Lit(title),
			"content": pipeline.RefKey("write", "content"),
		},
		Outputs: []string{"doc_id"},
		Action: func(ctx context.Context, in pipeline.Payload) (pipeline.Payload, error) {
			docID, err := stacks.Workspace.CreateDoc(ctx, in.String("title"), in.String("content"))
			if err != nil {
				return nil, err
			}
			return pipeline.Payload{"doc_id": docID}, nil
		},
	})

	return p
}
