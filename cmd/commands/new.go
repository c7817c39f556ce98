package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/files"
)

var (
	newNoEdit bool
)

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a new post",
		Long: `Create a new post with the given title and open it in the editor.

The title becomes the post's first heading and its file name, so
"My First Post" is stored as .quill/posts/my-first-post.html.

Examples:
  # Create a post and start writing
  quill new "My First Post"

  # Only create the file
  quill new "Draft Ideas" --no-edit`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.NewCommandContext().ValidateProject(); err != nil {
				return err
			}
			return cli.ValidatePostTitle(strings.Join(args, " "))
		},
		RunE: runNew,
	}

	cmd.Flags().BoolVar(&newNoEdit, "no-edit", false, "Create the post without opening the editor")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	post, err := files.CreatePost(title)
	if err != nil {
		if errors.Is(err, files.ErrPostExists) {
			return fmt.Errorf("a post named '%s' already exists", title)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	cli.PrintSuccess("Created post: %s", post.Title)
	cli.PrintInfo("Path: %s", post.Path)

	if newNoEdit {
		return nil
	}
	return RunTUI(post.Slug)
}
