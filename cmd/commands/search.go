package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/search"
)

// SearchResultOutput represents the formatted search results
type SearchResultOutput struct {
	Query   string             `json:"query" yaml:"query"`
	Count   int                `json:"count" yaml:"count"`
	Results []SearchItemOutput `json:"results" yaml:"results"`
}

// SearchItemOutput represents a single search result item
type SearchItemOutput struct {
	Slug     string   `json:"slug" yaml:"slug"`
	Title    string   `json:"title" yaml:"title"`
	Words    int      `json:"words" yaml:"words"`
	Score    float64  `json:"score" yaml:"score"`
	Archived bool     `json:"archived" yaml:"archived"`
	Excerpts []string `json:"excerpts,omitempty" yaml:"excerpts,omitempty"`
}

var (
	searchArchived bool
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search posts",
		Long: `Search posts using a small query language.

Query Syntax:
  golang               - Posts whose title or text contains "golang"
  "error handling"     - A phrase
  title:draft          - Title or slug contains "draft"
  status:archived      - Archived posts
  modified:<7d         - Changed in the last 7 days (d, w, m, y)
  modified:>1m         - Not changed for a month
  words:>500           - Longer than 500 words

  Terms are joined with AND unless OR is given; NOT negates the next term.

Examples:
  quill search golang
  quill search "title:go AND words:>300"
  quill search "NOT status:archived modified:<2w"`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: runSearch,
	}

	cmd.Flags().BoolVarP(&searchArchived, "archived", "a", false, "Include archived posts")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	engine := search.NewEngine()
	engine.IncludeArchived = searchArchived

	// Archived posts are only indexed when they can show up
	includeArchived := searchArchived || strings.Contains(query, "status:")
	if err := engine.BuildIndex(includeArchived); err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}

	results, err := engine.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	searchResult := SearchResultOutput{
		Query:   query,
		Count:   len(results),
		Results: []SearchItemOutput{},
	}
	for _, r := range results {
		searchResult.Results = append(searchResult.Results, SearchItemOutput{
			Slug:     r.Item.Slug,
			Title:    r.Item.Title,
			Words:    r.Item.Words,
			Score:    r.Score,
			Archived: r.Item.Archived,
			Excerpts: r.Highlights,
		})
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, searchResult)
	default:
		return outputSearchText(cmd, searchResult)
	}
}

func outputSearchText(cmd *cobra.Command, result SearchResultOutput) error {
	if result.Count == 0 {
		cli.PrintInfo("No results found for query: %s", result.Query)
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nSearch Results for: %s\n", result.Query)
	fmt.Fprintln(out, strings.Repeat("-", 80))

	for _, item := range result.Results {
		title := item.Title
		if item.Archived {
			title += " [archived]"
		}
		fmt.Fprintf(out, "%s  (%s)\n", title, item.Slug)
		for _, excerpt := range item.Excerpts {
			fmt.Fprintf(out, "  └─ %s\n", cli.TruncateString(excerpt, 76))
		}
	}

	fmt.Fprintf(out, "\nTotal: %d results\n", result.Count)
	return nil
}
