package advisor

import (
	"strings"
	"text/template"
)

var promptTemplate = template.Must(template.New("advisor").Parse(`Analyze this Indian student profile and provide personalized career recommendations.
The response must be a single, valid JSON object that strictly adheres to the provided schema. Do not include any markdown formatting like ` + "```json" + `.

Student Profile:
- Name: {{.Name}}
- Education: {{.EducationLevel}}
- Academic Performance: {{.Grades}}
- Technical Skills: {{.TechSkills}}
- Interests: {{.Interests}}
- Location: {{.Location}}
- Career Goals: {{.CareerGoals}}

Indian Job Market Context:
- Focus on emerging sectors: IT, Digital Marketing, Data Science, Renewable Energy, FinTech.
- Consider regional opportunities and growth hubs (e.g., Bangalore for IT, Mumbai for Finance, Hyderabad for Pharma/IT).
- Factor in skill demand trends for the next 5 years.

Provide a detailed analysis for exactly 3 career paths, including:
1. careerPath: The name of the career path.
2. reasoning: A detailed explanation of why this path is suitable for the student, referencing their profile and the Indian market context.
3. skillGapAnalysis: A list of 2-3 crucial skills the student is missing. For each, provide the skill and the reason it's important.
4. learningRoadmap: A 3-step learning roadmap with a clear duration, milestone, and a few actionable details for each step.
5. salaryProspects: Expected salary range for a fresher and the growth potential in the Indian market (in INR).
6. certifications: A list of 2-3 relevant and recognized certifications.
7. marketAdvice: A concise, actionable piece of advice specific to succeeding in this career in India.
`))

// BuildPrompt renders the advisor prompt for a profile.
func BuildPrompt(p StudentProfile) string {
	var sb strings.Builder
	// Executing a parsed template into a strings.Builder only fails on
	// missing fields, which StudentProfile always has.
	_ = promptTemplate.Execute(&sb, p)
	return sb.String()
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func strList(desc string) map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": desc}
}

// Schema is the JSON response schema sent with the advisor request.
func Schema() map[string]any {
	recommendation := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"careerPath": str("The name of the recommended career path."),
			"reasoning":  str("Detailed reasoning for the recommendation, linking the student's profile to market demands."),
			"skillGapAnalysis": map[string]any{
				"type":        "array",
				"description": "Analysis of skills the student needs to acquire.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"skill":  str("The specific skill to learn."),
						"reason": str("Why this skill is important for the career path."),
					},
					"required": []string{"skill", "reason"},
				},
			},
			"learningRoadmap": map[string]any{
				"type":        "array",
				"description": "A step-by-step learning plan.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"duration":  str("Estimated time for this step (e.g., '0-6 Months')."),
						"milestone": str("The main goal of this step (e.g., 'Foundations')."),
						"details":   strList("Specific actions to take in this step."),
					},
					"required": []string{"duration", "milestone", "details"},
				},
			},
			"salaryProspects": map[string]any{
				"type":        "object",
				"description": "Expected salary details in the Indian market.",
				"properties": map[string]any{
					"range":  str("Salary range for an entry-level position (in INR)."),
					"growth": str("Potential for salary growth over time."),
				},
				"required": []string{"range", "growth"},
			},
			"certifications": strList("List of valuable certifications."),
			"marketAdvice":   str("Specific advice for breaking into the Indian job market for this role."),
		},
		"required":         []string{"careerPath", "reasoning", "skillGapAnalysis", "learningRoadmap", "salaryProspects", "certifications", "marketAdvice"},
		"propertyOrdering": []string{"careerPath", "reasoning", "skillGapAnalysis", "learningRoadmap", "salaryProspects", "certifications", "marketAdvice"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recommendations": map[string]any{
				"type":  "array",
				"items": recommendation,
			},
		},
		"required": []string{"recommendations"},
	}
}
