// Package terminal provides rich terminal output using lipgloss styles
package terminal

import (
	"fmt"
	"io"

	"github.com/arthur-debert/metadir/pkg/ui/display"
	"github.com/arthur-debert/metadir/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

// Renderer provides styled output for interactive terminals
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type with terminal styling
func (r *Renderer) RenderResult(result interface{}) error {
	view, ok := display.Build(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%v\n", result)
		return err
	}

	heading := styles.GetStyle(styles.Heading)
	label := styles.GetStyle(styles.Label)
	for _, block := range view.Blocks {
		if block.Title != "" {
			if _, err := fmt.Fprintln(r.output, heading.Render(block.Title)); err != nil {
				return err
			}
		}
		for _, f := range block.Fields {
			// Pad before styling so escape codes don't count towards the width
			padded := fmt.Sprintf("%-*s", display.LabelWidth, f.Label)
			line := fmt.Sprintf("%s: %s", label.Render(padded), valueStyle(f.Kind).Render(f.Value))
			if _, err := fmt.Fprintln(r.output, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func valueStyle(kind display.Kind) lipgloss.Style {
	switch kind {
	case display.KindPath:
		return styles.GetStyle(styles.Path)
	case display.KindID:
		return styles.GetStyle(styles.ID)
	case display.KindTime:
		return styles.GetStyle(styles.Time)
	default:
		return styles.GetStyle(styles.Value)
	}
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, styles.GetStyle(styles.Error).Render(fmt.Sprintf("Error: %v", err)))
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
