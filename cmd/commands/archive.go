package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/files"
)

// NewArchiveCommand creates the archive command
func NewArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <post>",
		Short: "Archive a post",
		Long: `Archive a post to move it out of the post list.

Archived posts are moved to .quill/archive and only show up with
'quill list --archived'. Use 'quill restore' to bring one back.

Examples:
  # Archive a post
  quill archive old-draft

  # Archive without confirmation
  quill archive old-draft -y`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: runArchive,
	}

	return cmd
}

func runArchive(cmd *cobra.Command, args []string) error {
	post, err := cli.NewPostResolver().Resolve(args[0])
	if err != nil {
		return err
	}
	if post.Archived {
		return fmt.Errorf("post is already archived: %s", post.Slug)
	}

	confirmed, err := cli.Confirm(fmt.Sprintf("Archive post '%s'?", post.Title), false)
	if err != nil {
		return err
	}
	if !confirmed {
		cli.PrintInfo("Archive cancelled")
		return nil
	}

	if err := files.ArchivePost(post.Slug); err != nil {
		return fmt.Errorf("failed to archive post: %w", err)
	}

	cli.PrintSuccess("Archived post: %s", post.Title)
	return nil
}
