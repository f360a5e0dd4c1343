package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillpath/skillpath/internal/clipboard"
	"github.com/skillpath/skillpath/internal/markup"
	"github.com/skillpath/skillpath/internal/ui"
)

var (
	renderHTML    bool
	renderExplain bool
	renderWidth   int
	renderLevel   int
	renderPaste   bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render tutor-style markdown",
	Long: `Render markdown with the same block rules the tutor uses. Reads the file
argument, the clipboard with --paste, or stdin.

  --html     print the HTML fragment
  --explain  print how each block was classified`,
	Example: `  echo "# Hi\n\n* one\n* two" | skillpath render
  skillpath render notes.md --html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "Print HTML instead of terminal output")
	renderCmd.Flags().BoolVar(&renderExplain, "explain", false, "Print the kind of each block")
	renderCmd.Flags().IntVar(&renderLevel, "heading-level", 1, "HTML level for '# ' headings (1-5)")
	renderCmd.Flags().BoolVar(&renderPaste, "paste", false, "Read the text from the clipboard")
	AddWidthFlag(renderCmd, &renderWidth)
}

func runRender(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if renderExplain {
		styles := ui.NewStyles(out)
		for i, block := range markup.Blocks(text) {
			first, _, _ := strings.Cut(block, "\n")
			fmt.Fprintf(out, "%3d  %-13s %s\n", i+1,
				styles.Highlighted.Render(markup.Classify(block).String()),
				styles.Muted.Render(ui.Truncate(first, 60)))
		}
		return nil
	}

	frag := markup.New(markup.WithHeadingLevel(renderLevel)).Render(text)
	if renderHTML {
		if err := frag.Render(out); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return nil
	}
	r := ui.NewTerminalRenderer(ui.NewStyles(out), renderWidth)
	fmt.Fprintln(out, r.Render(frag))
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if renderPaste {
		return clipboard.ReadText()
	}
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
