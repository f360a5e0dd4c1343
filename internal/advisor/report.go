package advisor

import (
	"fmt"
	"strings"
)

// Report formats a response as markdown for terminal display.
func Report(profile StudentProfile, resp *Response) string {
	var sb strings.Builder
	if profile.Name != "" {
		fmt.Fprintf(&sb, "# Career paths for %s\n\n", profile.Name)
	} else {
		sb.WriteString("# Career paths\n\n")
	}

	for i, rec := range resp.Recommendations {
		fmt.Fprintf(&sb, "## %d. %s\n\n%s\n\n", i+1, rec.CareerPath, rec.Reasoning)

		if len(rec.SkillGapAnalysis) > 0 {
			sb.WriteString("### Skill gaps\n\n")
			for _, gap := range rec.SkillGapAnalysis {
				fmt.Fprintf(&sb, "- **%s**: %s\n", gap.Skill, gap.Reason)
			}
			sb.WriteString("\n")
		}

		if len(rec.LearningRoadmap) > 0 {
			sb.WriteString("### Learning roadmap\n\n")
			for n, step := range rec.LearningRoadmap {
				fmt.Fprintf(&sb, "%d. **%s** (%s)\n", n+1, step.Milestone, step.Duration)
				for _, d := range step.Details {
					fmt.Fprintf(&sb, "   - %s\n", d)
				}
			}
			sb.WriteString("\n")
		}

		sb.WriteString("### Salary prospects\n\n")
		fmt.Fprintf(&sb, "| Entry level | Growth |\n|---|---|\n| %s | %s |\n\n",
			escapePipes(rec.SalaryProspects.Range), escapePipes(rec.SalaryProspects.Growth))

		if len(rec.Certifications) > 0 {
			sb.WriteString("### Certifications\n\n")
			for _, c := range rec.Certifications {
				fmt.Fprintf(&sb, "- %s\n", c)
			}
			sb.WriteString("\n")
		}

		if len(rec.ResumeSuggestions) > 0 {
			sb.WriteString("### Resume suggestions\n\n")
			for _, s := range rec.ResumeSuggestions {
				fmt.Fprintf(&sb, "- %s\n", s)
			}
			sb.WriteString("\n")
		}

		if rec.MarketAdvice != "" {
			fmt.Fprintf(&sb, "> %s\n\n", rec.MarketAdvice)
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
