// Package confirmations provides console prompts for destructive operations.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/metadir/pkg/types"
)

// ConsoleDialog asks questions on a console
type ConsoleDialog struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleDialog creates a dialog reading answers from in and writing
// prompts to out
func NewConsoleDialog(in io.Reader, out io.Writer) *ConsoleDialog {
	return &ConsoleDialog{in: bufio.NewReader(in), out: out}
}

// readLine returns the next answer, trimmed and lowercased. End of input
// counts as an empty answer.
func (d *ConsoleDialog) readLine() (string, error) {
	line, err := d.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// Confirm asks a yes/no question defaulting to no
func (d *ConsoleDialog) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(d.out, "%s [y/N]: ", prompt)
	answer, err := d.readLine()
	if err != nil {
		return false, err
	}
	return answer == "y" || answer == "yes", nil
}

// Choose lists options and asks for one of them by number. The boolean is
// false when the user quits or gives an answer that names no option.
func (d *ConsoleDialog) Choose(prompt string, options []string) (int, bool, error) {
	if len(options) == 0 {
		return 0, false, nil
	}

	if prompt != "" {
		fmt.Fprintln(d.out, prompt)
	}
	for i, opt := range options {
		fmt.Fprintf(d.out, "(%d): %s\n", i+1, opt)
	}
	if len(options) > 1 {
		fmt.Fprintf(d.out, "Enter 1-%d or Q to quit: ", len(options))
	} else {
		fmt.Fprint(d.out, "Enter 1 or Q to quit: ")
	}

	answer, err := d.readLine()
	if err != nil {
		return 0, false, err
	}
	if answer == "q" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		return 0, false, nil
	}
	return n - 1, true, nil
}

// PresentConfirmations shows each request with the items it affects and
// collects an answer per request
func (d *ConsoleDialog) PresentConfirmations(requests []types.ConfirmationRequest) ([]types.ConfirmationResponse, error) {
	responses := make([]types.ConfirmationResponse, 0, len(requests))
	for _, req := range requests {
		fmt.Fprintln(d.out, req.Title)
		for _, item := range req.Items {
			fmt.Fprintf(d.out, "  - %s\n", item)
		}
		if req.Description != "" {
			fmt.Fprintln(d.out, req.Description)
		}

		marker := "[y/N]"
		if req.Default {
			marker = "[Y/n]"
		}
		fmt.Fprintf(d.out, "Continue? %s: ", marker)

		answer, err := d.readLine()
		if err != nil {
			return nil, fmt.Errorf("failed to read user input for confirmation %s: %w", req.ID, err)
		}

		approved := req.Default
		if answer != "" {
			approved = answer == "y" || answer == "yes"
		}
		responses = append(responses, types.ConfirmationResponse{ID: req.ID, Approved: approved})
	}
	return responses, nil
}
