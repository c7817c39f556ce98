package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/files"
)

var (
	editExternal bool
)

// NewEditCommand creates the edit command
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <post>",
		Short: "Open a post in the editor",
		Long: `Open an existing post in the block editor.

The post can be given by slug, file name, path or title. With --external
the raw HTML file opens in $EDITOR instead.

Examples:
  # Edit by slug
  quill edit my-first-post

  # Edit by title
  quill edit "My First Post"

  # Edit the HTML in vim
  EDITOR=vim quill edit my-first-post --external`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: runEdit,
	}

	cmd.Flags().BoolVar(&editExternal, "external", false, "Open the HTML file in $EDITOR")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	post, err := cli.NewPostResolver().Resolve(args[0])
	if err != nil {
		return err
	}
	if post.Archived {
		return fmt.Errorf("post '%s' is archived. Run 'quill restore %s' first", post.Slug, post.Slug)
	}

	if editExternal {
		launcher := cli.NewEditorLauncher()
		cli.PrintInfo("Opening %s in editor...", post.Path)
		if err := launcher.OpenFile(files.PostPath(post.Slug, false)); err != nil {
			return err
		}
		cli.PrintSuccess("Post edited successfully")
		return nil
	}

	return RunTUI(post.Slug)
}
