package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillpath/skillpath/internal/roadmap"
	"github.com/skillpath/skillpath/internal/ui"
)

var (
	roadmapJSON     bool
	roadmapDetails  bool
	roadmapModel    string
	roadmapProvider string
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Browse or generate learning roadmaps",
}

var roadmapListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the built-in roadmaps",
	Args:    cobra.NoArgs,
	RunE:    runRoadmapList,
}

var roadmapShowCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Show a built-in roadmap",
	Long: `Show a built-in roadmap as a tree. The title is matched case-insensitively,
falling back to a fuzzy match ("devops" finds "DevOps Engineer").`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: roadmapTitleCompletion,
	RunE:              runRoadmapShow,
}

var roadmapGenerateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a roadmap for any topic",
	Example: `  skillpath roadmap generate "Rust systems programming"
  skillpath roadmap generate kubernetes --json > k8s.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoadmapGenerate,
}

func init() {
	rootCmd.AddCommand(roadmapCmd)
	roadmapCmd.AddCommand(roadmapListCmd, roadmapShowCmd, roadmapGenerateCmd)
	for _, c := range []*cobra.Command{roadmapShowCmd, roadmapGenerateCmd} {
		AddJSONFlag(c, &roadmapJSON)
		c.Flags().BoolVarP(&roadmapDetails, "details", "d", false, "Include node descriptions")
	}
	AddModelFlag(roadmapGenerateCmd, &roadmapModel)
	AddProviderFlag(roadmapGenerateCmd, &roadmapProvider)
}

func runRoadmapList(cmd *cobra.Command, args []string) error {
	styles := ui.NewStyles(cmd.OutOrStdout())
	for _, r := range roadmap.Premade() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n",
			ui.BulletIcon,
			styles.Bold.Render(r.Title),
			styles.Muted.Render(fmt.Sprintf("(%d topics)", roadmap.Count(r.Root))))
	}
	return nil
}

func runRoadmapShow(cmd *cobra.Command, args []string) error {
	r, err := roadmap.Find(strings.Join(args, " "))
	if err != nil {
		return err
	}
	return printRoadmap(cmd, r)
}

func runRoadmapGenerate(cmd *cobra.Command, args []string) error {
	topic := strings.Join(args, " ")
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a := newApp(cfg, nil)
	provider, err := a.provider(roadmapProvider)
	if err != nil {
		return err
	}
	gen := a.generator(provider, roadmapModel)

	var r *roadmap.Roadmap
	err = ui.RunWithSpinner(cmd.Context(), "Generating roadmap for "+topic+"...", roadmapJSON, func(ctx context.Context) error {
		var genErr error
		r, genErr = gen.Generate(ctx, topic)
		return genErr
	})
	if err != nil {
		return err
	}
	return printRoadmap(cmd, r)
}

func printRoadmap(cmd *cobra.Command, r *roadmap.Roadmap) error {
	if roadmapJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	styles := ui.NewStyles(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), styles.RoadmapTree(r, roadmapDetails))
	return nil
}

func roadmapTitleCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, t := range roadmap.Titles() {
		if strings.HasPrefix(strings.ToLower(t), strings.ToLower(toComplete)) {
			out = append(out, t)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
