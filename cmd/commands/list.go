package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/editor"
	"github.com/quillpad/quill-terminal/pkg/files"
	"github.com/quillpad/quill-terminal/pkg/models"
	"github.com/quillpad/quill-terminal/pkg/utils"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Archived bool                 `json:"archived" yaml:"archived"`
	Posts    []models.PostSummary `json:"posts" yaml:"posts"`
	Count    int                  `json:"count" yaml:"count"`
}

var (
	listShowArchived bool
	listShowPaths    bool
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Long: `List the posts of the current project, newest first.

Examples:
  # List active posts
  quill list

  # List archived posts
  quill list --archived

  # List as JSON
  quill list -o json`,
		Args:    cobra.NoArgs,
		Aliases: []string{"ls"},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: runList,
	}

	cmd.Flags().BoolVarP(&listShowArchived, "archived", "a", false, "Show only archived posts")
	cmd.Flags().BoolVar(&listShowPaths, "paths", false, "Show file paths")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	list := files.ListPosts
	if listShowArchived {
		list = files.ListArchivedPosts
	}
	slugs, err := list()
	if err != nil {
		return err
	}

	result := ListResult{Archived: listShowArchived, Posts: []models.PostSummary{}}
	for _, slug := range slugs {
		post, err := files.ReadArchivedOrActivePost(slug, listShowArchived)
		if err != nil {
			cli.PrintWarning("Failed to read post %s: %v", slug, err)
			continue
		}
		result.Posts = append(result.Posts, summarize(post))
	}
	sort.SliceStable(result.Posts, func(i, j int) bool {
		return result.Posts[i].Modified.After(result.Posts[j].Modified)
	})
	result.Count = len(result.Posts)

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return outputListText(cmd, result)
	}
}

// summarize computes the listing row of a post
func summarize(post *models.Post) models.PostSummary {
	stats := editor.ComputeStats(post.Content)
	blocks := 0
	if doc, err := editor.ParseDocument(post.Content); err == nil {
		blocks = len(doc.Blocks())
	}
	return models.PostSummary{
		Slug:     post.Slug,
		Title:    post.Title,
		Modified: post.Modified,
		Archived: post.Archived,
		PostStats: models.PostStats{
			Words:          stats.Words,
			ReadingMinutes: stats.ReadingMinutes,
			Blocks:         blocks,
		},
	}
}

func outputListText(cmd *cobra.Command, result ListResult) error {
	if result.Count == 0 {
		if result.Archived {
			cli.PrintInfo("The archive is empty")
		} else {
			cli.PrintInfo("No posts yet. Run 'quill new <title>' to write one")
		}
		return nil
	}

	heading := "POSTS"
	if result.Archived {
		heading = "ARCHIVED POSTS"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", heading)
	fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 80))

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	if listShowPaths {
		table.Header("Title", "Slug", "Words", "Modified", "Path")
	} else {
		table.Header("Title", "Slug", "Words", "Modified")
	}
	for _, p := range result.Posts {
		row := []string{
			cli.TruncateString(p.Title, 40),
			p.Slug,
			utils.FormatWordCount(p.Words),
			p.Modified.Format("2006-01-02 15:04"),
		}
		if listShowPaths {
			row = append(row, files.PostPath(p.Slug, p.Archived))
		}
		table.Row(row...)
	}
	table.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d posts\n", result.Count)
	return nil
}
