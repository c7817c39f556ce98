package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/editor"
	"github.com/quillpad/quill-terminal/pkg/export"
	"github.com/quillpad/quill-terminal/pkg/files"
	"github.com/quillpad/quill-terminal/pkg/models"
	"github.com/quillpad/quill-terminal/pkg/utils"
)

// ExportResult is the structured output of the export command
type ExportResult struct {
	Slug    string `json:"slug" yaml:"slug"`
	Title   string `json:"title" yaml:"title"`
	Format  string `json:"format" yaml:"format"`
	Content string `json:"content" yaml:"content"`
}

var (
	exportToFile string
	exportFormat string
	exportSave   bool
)

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <post>",
		Short: "Export a post as Markdown, HTML or plain text",
		Long: `Export a post to stdout or a file.

Formats:
  markdown  - CommonMark (default, see export.format in settings)
  html      - standalone HTML page
  text      - plain text, one line per block

Examples:
  # Print Markdown
  quill export my-first-post

  # Write an HTML page
  quill export my-first-post --format html --file post.html

  # Save into the export directory from settings
  quill export my-first-post --save

  # Structured output
  quill export my-first-post -o json`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.NewCommandContext().ValidateProject(); err != nil {
				return err
			}
			if exportToFile != "" {
				if err := cli.ValidateDirectoryPath(filepath.Dir(exportToFile)); err != nil {
					return err
				}
			}
			if exportFormat != "" {
				_, err := export.ParseFormat(exportFormat)
				return err
			}
			return nil
		},
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportToFile, "file", "f", "", "Export to file instead of stdout")
	cmd.Flags().StringVar(&exportFormat, "format", "", "Export format: markdown, html or text")
	cmd.Flags().BoolVar(&exportSave, "save", false, "Write <slug><ext> into the export directory from settings")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()
	settings := ctx.LoadSettingsWithDefault()

	post, err := cli.NewPostResolver().Resolve(args[0])
	if err != nil {
		return err
	}

	formatName := exportFormat
	if formatName == "" {
		formatName = settings.Export.Format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	output, err := renderExport(post, format)
	if err != nil {
		return err
	}

	target := exportToFile
	if target == "" && exportSave {
		target = filepath.Join(settings.Export.Path, post.Slug+format.Extension())
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "json" || outputFormat == "yaml" {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, ExportResult{
			Slug:    post.Slug,
			Title:   post.Title,
			Format:  string(format),
			Content: output,
		})
	}

	if target == "" {
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	}

	if err := files.WriteFile(target, output); err != nil {
		return err
	}
	cli.PrintSuccess("Post '%s' exported to: %s", post.Title, target)
	cli.PrintInfo("Estimated tokens: %s", utils.FormatTokenCount(utils.EstimateTokens(output)))
	return nil
}

// renderExport converts a post. Markdown only gets a title line when the
// post has no heading of its own.
func renderExport(post *models.Post, format export.Format) (string, error) {
	title := post.Title
	if format == export.FormatMarkdown {
		if doc, err := editor.ParseDocument(post.Content); err == nil && doc.Title() != "" {
			title = ""
		}
	}
	out, err := export.New().Export(title, post.Content, format)
	if err != nil {
		return "", fmt.Errorf("failed to export post: %w", err)
	}
	return out, nil
}
