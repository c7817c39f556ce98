package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/models"
	"github.com/quillpad/quill-terminal/pkg/utils"
)

// StatsResult is the output of the stats command
type StatsResult struct {
	models.PostSummary `yaml:",inline"`
	Tokens             int    `json:"tokens" yaml:"tokens"`
	Length             string `json:"length" yaml:"length"`
	Bytes              int64  `json:"bytes" yaml:"bytes"`
}

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <post>",
		Short: "Show word count and reading time of a post",
		Long: `Show the word count, reading time, block count and an estimated
LLM token count of a post.

Examples:
  quill stats my-first-post
  quill stats my-first-post -o json`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewCommandContext().ValidateProject()
		},
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	post, err := cli.NewPostResolver().Resolve(args[0])
	if err != nil {
		return err
	}

	summary := summarize(post)
	result := StatsResult{
		PostSummary: summary,
		Tokens:      utils.EstimateTokens(post.Content),
		Length:      utils.GetLengthStatus(summary.Words),
		Bytes:       int64(len(post.Content)),
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", result.Title)
	fmt.Fprintf(out, "  Words:    %s (%s)\n", utils.FormatWordCount(result.Words), result.Length)
	fmt.Fprintf(out, "  Reading:  %s\n", utils.FormatReadingTime(result.ReadingMinutes))
	fmt.Fprintf(out, "  Blocks:   %d\n", result.Blocks)
	fmt.Fprintf(out, "  Tokens:   ~%s\n", utils.FormatTokenCount(result.Tokens))
	fmt.Fprintf(out, "  Size:     %s\n", cli.FormatBytes(result.Bytes))
	fmt.Fprintf(out, "  Modified: %s\n", result.Modified.Format("2006-01-02 15:04"))
	if result.Archived {
		fmt.Fprintln(out, "  Archived")
	}
	return nil
}
