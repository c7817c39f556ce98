package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillpad/quill-terminal/cmd/commands"
	"github.com/quillpad/quill-terminal/internal/cli"
	"github.com/quillpad/quill-terminal/pkg/examples"
	"github.com/quillpad/quill-terminal/pkg/files"
	"github.com/quillpad/quill-terminal/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	quiet        bool
	noColor      bool
	skipConfirm  bool
	outputFormat string
	withExamples string
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Terminal block editor for writing posts",
	Long:  `Quill is a terminal block editor for writing posts. Posts are stored as plain HTML files in .quill/posts and edited block by block, with slash commands, drag and drop and AI rewrites.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cli.SetGlobalFlags(quiet, noColor, skipConfirm)
		return cli.ValidateOutputFormat(outputFormat)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Check if .quill directory exists
		if _, err := os.Stat(files.QuillDir); os.IsNotExist(err) {
			cli.PrintError("No .quill directory found in the current directory.")
			cli.PrintInfo("Please run 'quill init' first to initialize a new project.")
			os.Exit(1)
		}

		if err := commands.RunTUI(""); err != nil {
			cli.PrintError("Failed to start the terminal user interface: %v", err)
			cli.PrintInfo("This could be due to terminal compatibility issues. Try running in a different terminal.")
			os.Exit(1)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new Quill project",
	Long:  `Creates the .quill folder structure in the current directory`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			cli.PrintError("Failed to determine current directory: %v", err)
			os.Exit(1)
		}

		fmt.Printf("Initializing Quill project in %s...\n", cwd)

		if err := files.InitProjectStructure(); err != nil {
			cli.PrintError("Failed to initialize project structure: %v", err)
			cli.PrintInfo("Make sure you have write permissions in the current directory.")
			os.Exit(1)
		}

		fmt.Println("✓ Created .quill folder structure")

		if withExamples != "" {
			written, err := examples.Install(withExamples, false)
			if err != nil {
				cli.PrintError("Failed to install examples: %v", err)
				os.Exit(1)
			}
			fmt.Printf("✓ Added %d example posts\n", len(written))
		}

		fmt.Println("✓ You can now write posts!")
		fmt.Println("\nRun 'quill' to start the editor, or 'quill new \"Title\"' to begin a post.")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Quill",
	Long:  `Display the current version of the Quill CLI tool`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Quill version %s\n", version)
	},
}

func init() {
	if version != "dev" {
		tui.Version = version
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable symbols and colors in output")
	rootCmd.PersistentFlags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json or yaml")

	initCmd.Flags().StringVar(&withExamples, "examples", "", "Add example posts: guide, writing or all")
	initCmd.Flags().Lookup("examples").NoOptDefVal = "all"

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(
		commands.NewNewCommand(),
		commands.NewEditCommand(),
		commands.NewListCommand(),
		commands.NewStatsCommand(),
		commands.NewExportCommand(),
		commands.NewCopyCommand(),
		commands.NewSearchCommand(),
		commands.NewRenameCommand(),
		commands.NewArchiveCommand(),
		commands.NewRestoreCommand(),
		commands.NewDeleteCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("Command execution failed: %v", err)
		os.Exit(1)
	}
}
