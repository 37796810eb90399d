// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/metadir/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	view, ok := display.Build(result)
	if !ok {
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%v\n", result)
		return err
	}
	return r.renderView(view)
}

func (r *Renderer) renderView(view *display.View) error {
	for _, block := range view.Blocks {
		if block.Title != "" {
			if _, err := fmt.Fprintln(r.output, block.Title); err != nil {
				return err
			}
		}
		for _, f := range block.Fields {
			if _, err := fmt.Fprintf(r.output, "%-*s: %s\n", display.LabelWidth, f.Label, f.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
