// Package googleai shells out to the Node-based Google AI Studio stack for
// image and video generation. The stack directory holds the scripts under
// src/commands and the API key handling; this package only drives them.
package googleai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Stack runs the stack's Node commands.
type Stack struct {
	// Dir is the google-ai-studio checkout containing src/commands.
	Dir string

	// Node is the node binary. Empty means "node".
	Node string

	// Timeout bounds one generation. Zero means ten minutes; video runs
	// regularly take several.
	Timeout time.Duration
}

// New builds a stack rooted at dir.
func New(dir, node string, timeout time.Duration) *Stack {
	return &Stack{Dir: dir, Node: node, Timeout: timeout}
}

// ImageRequest describes one image generation.
type ImageRequest struct {
	Prompt string
	Model  string // empty means nano-banana
	Aspect string // empty means 16:9
	Output string // optional output path
}

// VideoRequest describes one Veo video generation.
type VideoRequest struct {
	Prompt string
	Fast   bool
	Output string
}

// Result carries a script's stdout, which includes the generated file
// location.
type Result struct {
	Output string
}

// GenerateImage renders an image via src/commands/generateImage.js.
func (s *Stack) GenerateImage(ctx context.Context, req ImageRequest) (*Result, error) {
	if req.Prompt == "" {
		return nil, errors.New("googleai: empty image prompt")
	}
	model := req.Model
	if model == "" {
		model = "nano-banana"
	}
	aspect := req.Aspect
	if aspect == "" {
		aspect = "16:9"
	}
	args := []string{
		filepath.Join("src", "commands", "generateImage.js"),
		req.Prompt,
		"--model", model,
		"--aspect", aspect,
	}
	if req.Output != "" {
		args = append(args, "--output", req.Output)
	}
	return s.run(ctx, args)
}

// GenerateVideo renders a video via src/commands/generateVideo.js.
func (s *Stack) GenerateVideo(ctx context.Context, req VideoRequest) (*Result, error) {
	if req.Prompt == "" {
		return nil, errors.New("googleai: empty video prompt")
	}
	args := []string{
		filepath.Join("src", "commands", "generateVideo.js"),
		req.Prompt,
	}
	if req.Fast {
		args = append(args, "--fast")
	}
	if req.Output != "" {
		args = append(args, "--output", req.Output)
	}
	return s.run(ctx, args)
}

func (s *Stack) run(ctx context.Context, args []string) (*Result, error) {
	if s.Dir == "" {
		return nil, errors.New("googleai: stack directory not configured, set google_ai.stack_dir")
	}
	node := s.Node
	if node == "" {
		node = "node"
	}
	timeout := s.Timeout
	if timeout == 0 {
		timeout = 10 * time.Minute
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, node, args...)
	cmd.Dir = s.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("googleai %s: %w\nstderr: %s",
			filepath.Base(args[0]), err, stderr.String())
	}
	return &Result{Output: strings.TrimSpace(stdout.String())}, nil
}
