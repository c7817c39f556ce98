package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/files"
)

// NewRenameCommand creates the rename command
func NewRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <post> <new title>",
		Short: "Change the title of a post",
		Long: `Rewrite a post's first heading and move its file to the new slug.

Examples:
  quill rename my-first-post "A Better Title"`,
		Args: cobra.MinimumNArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.NewCommandContext().ValidateProject(); err != nil {
				return err
			}
			return cli.ValidatePostTitle(strings.Join(args[1:], " "))
		},
		RunE: runRename,
	}

	return cmd
}

func runRename(cmd *cobra.Command, args []string) error {
	post, err := cli.NewPostResolver().Resolve(args[0])
	if err != nil {
		return err
	}
	if post.Archived {
		return fmt.Errorf("post '%s' is archived. Run 'quill restore %s' first", post.Slug, post.Slug)
	}

	title := strings.Join(args[1:], " ")
	newSlug, err := files.RenamePost(post.Slug, title)
	if err != nil {
		return fmt.Errorf("failed to rename post: %w", err)
	}

	cli.PrintSuccess("Renamed '%s' to '%s'", post.Title, title)
	if newSlug != post.Slug {
		cli.PrintInfo("Path: %s", files.PostPath(newSlug, false))
	}
	return nil
}
