package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skillpath/skillpath/internal/advisor"
	"github.com/skillpath/skillpath/internal/ui"
)

var (
	adviseProfile  string
	adviseJSON     bool
	adviseModel    string
	adviseProvider string
	adviseWidth    int
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Get personalized career recommendations",
	Long: `Describe your education, skills and goals and get three career paths
with skill gaps, a step-by-step roadmap and salary prospects.

The profile is read from --profile (YAML) or asked for interactively.

Profile file example:
  name: Ananya Sharma
  education_level: B.Tech, 3rd year
  grades: 8.2 CGPA
  tech_skills: Python, SQL
  interests: data, finance
  location: Pune
  career_goals: Work on data products at a fintech`,
	Args: cobra.NoArgs,
	RunE: runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)
	adviseCmd.Flags().StringVarP(&adviseProfile, "profile", "f", "", "Read the student profile from a YAML file")
	AddJSONFlag(adviseCmd, &adviseJSON)
	AddModelFlag(adviseCmd, &adviseModel)
	AddProviderFlag(adviseCmd, &adviseProvider)
	AddWidthFlag(adviseCmd, &adviseWidth)
}

func runAdvise(cmd *cobra.Command, args []string) error {
	profile, err := readProfile(adviseProfile)
	if err != nil {
		return err
	}
	if adviseProfile == "" {
		if err := ui.ProfileForm(&profile); err != nil {
			return err
		}
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a := newApp(cfg, nil)
	provider, err := a.provider(adviseProvider)
	if err != nil {
		return err
	}
	adv := a.advisor(provider, adviseModel)

	var resp *advisor.Response
	err = ui.RunWithSpinner(cmd.Context(), "Analyzing your profile...", adviseJSON, func(ctx context.Context) error {
		var err error
		resp, err = adv.Recommend(ctx, profile)
		return err
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if adviseJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	width := adviseWidth
	if width <= 0 {
		width = min(ui.TerminalWidth(), 100)
	}
	fmt.Fprintln(out, ui.RenderMarkdown(advisor.Report(profile, resp), width))
	return nil
}

func readProfile(path string) (advisor.StudentProfile, error) {
	var p advisor.StudentProfile
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}
