package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/entitygen/internal/ports/secondary"
)

// PromptConfirmer asks on a terminal before an existing file is overwritten.
type PromptConfirmer struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

// NewPromptConfirmer creates a confirmer reading answers from in. With
// assumeYes every overwrite is accepted without prompting.
func NewPromptConfirmer(in io.Reader, out io.Writer, assumeYes bool) *PromptConfirmer {
	return &PromptConfirmer{
		in:        bufio.NewReader(in),
		out:       out,
		assumeYes: assumeYes,
	}
}

// ConfirmOverwrite prompts "[y/N]" for path. Anything but y or yes declines.
func (c *PromptConfirmer) ConfirmOverwrite(ctx context.Context, path string) (bool, error) {
	if c.assumeYes {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(c.out, "File %s exists with different content. Overwrite? [y/N]: ", path)
	line, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Ensure PromptConfirmer implements the interface
var _ secondary.Confirmer = (*PromptConfirmer)(nil)
