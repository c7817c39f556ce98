package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/files"
)

// NewRestoreCommand creates the restore command
func NewRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <post>",
		Short: "Restore an archived post",
		Long: `Move an archived post back into the post list.

Examples:
  quill restore old-draft`,
		Args:    cobra.ExactArgs(1),
		Aliases: []string{"unarchive"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: runRestore,
	}

	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	slug := files.SlugFromPath(args[0])
	post, err := files.ReadArchivedPost(slug)
	if err != nil {
		post, err = files.ReadArchivedPost(files.Slugify(args[0]))
	}
	if err != nil {
		if active, aerr := cli.NewPostResolver().Resolve(args[0]); aerr == nil && !active.Archived {
			return fmt.Errorf("post is not archived: %s", active.Slug)
		}
		return fmt.Errorf("no archived post found matching '%s'", args[0])
	}

	if err := files.UnarchivePost(post.Slug); err != nil {
		return fmt.Errorf("failed to restore post: %w", err)
	}

	cli.PrintSuccess("Restored post: %s", post.Title)
	return nil
}
