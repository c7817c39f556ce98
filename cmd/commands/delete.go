package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/files"
)

// NewDeleteCommand creates the delete command
func NewDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <post>",
		Short: "Delete a post permanently",
		Long: `Delete a post file. Archived posts can be deleted too.

This cannot be undone; consider 'quill archive' instead.

Examples:
  # Delete with confirmation
  quill delete old-draft

  # Delete without confirmation
  quill delete old-draft -y`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"rm"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: runDelete,
	}

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	post, err := cli.NewPostResolver().Resolve(args[0])
	if err != nil {
		return err
	}

	prompt := fmt.Sprintf("Delete post '%s'? This cannot be undone", post.Title)
	if post.Archived {
		prompt = fmt.Sprintf("Delete archived post '%s'? This cannot be undone", post.Title)
	}
	confirmed, err := cli.Confirm(prompt, false)
	if err != nil {
		return err
	}
	if !confirmed {
		cli.PrintInfo("Delete cancelled")
		return nil
	}

	del := files.DeletePost
	if post.Archived {
		del = files.DeleteArchivedPost
	}
	if err := del(post.Slug); err != nil {
		return err
	}

	cli.PrintSuccess("Deleted post: %s", post.Title)
	return nil
}
