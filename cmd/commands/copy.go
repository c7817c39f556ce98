package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/export"
	"github.com/quillpad/quill-terminal/pkg/utils"
)

var (
	copyFormat string
	// copyToClipboard is swapped out in tests
	copyToClipboard = clipboard.WriteAll
)

// NewCopyCommand creates the copy command
func NewCopyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy <post>",
		Short: "Copy a post to the clipboard",
		Long: `Copy a post to the system clipboard, as Markdown by default.

Examples:
  # Copy as Markdown
  quill copy my-first-post

  # Copy the raw HTML page
  quill copy my-first-post --format html`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"clip", "clipboard"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.NewCommandContext().ValidateProject(); err != nil {
				return err
			}
			_, err := export.ParseFormat(copyFormat)
			return err
		},
		RunE: runCopy,
	}

	cmd.Flags().StringVar(&copyFormat, "format", "markdown", "Clipboard format: markdown, html or text")

	return cmd
}

func runCopy(cmd *cobra.Command, args []string) error {
	post, err := cli.NewPostResolver().Resolve(args[0])
	if err != nil {
		return err
	}

	format, _ := export.ParseFormat(copyFormat)
	content, err := renderExport(post, format)
	if err != nil {
		return err
	}

	if err := copyToClipboard(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	cli.PrintSuccess("Copied '%s' to clipboard (%s)", post.Title, format)
	cli.PrintInfo("Estimated tokens: %s", utils.FormatTokenCount(utils.EstimateTokens(content)))
	return nil
}
