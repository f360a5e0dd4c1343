package advisor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProfile is returned when a required profile field is blank.
var ErrInvalidProfile = errors.New("invalid student profile")

// StudentProfile is what the student tells the advisor about themselves.
type StudentProfile struct {
	Name           string `json:"name" yaml:"name"`
	EducationLevel string `json:"educationLevel" yaml:"education_level"`
	Grades         string `json:"grades" yaml:"grades"`
	TechSkills     string `json:"techSkills" yaml:"tech_skills"`
	Interests      string `json:"interests" yaml:"interests"`
	Location       string `json:"location" yaml:"location"`
	CareerGoals    string `json:"careerGoals" yaml:"career_goals"`
}

// Validate reports the first blank field.
func (p StudentProfile) Validate() error {
	fields := []struct{ name, value string }{
		{"name", p.Name},
		{"educationLevel", p.EducationLevel},
		{"grades", p.Grades},
		{"techSkills", p.TechSkills},
		{"interests", p.Interests},
		{"location", p.Location},
		{"careerGoals", p.CareerGoals},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidProfile, f.name)
		}
	}
	return nil
}

type SkillGap struct {
	Skill  string `json:"skill"`
	Reason string `json:"reason"`
}

type RoadmapStep struct {
	Duration  string   `json:"duration"`
	Milestone string   `json:"milestone"`
	Details   []string `json:"details"`
}

type SalaryProspects struct {
	Range  string `json:"range"`
	Growth string `json:"growth"`
}

type CareerRecommendation struct {
	CareerPath        string          `json:"careerPath"`
	Reasoning         string          `json:"reasoning"`
	SkillGapAnalysis  []SkillGap      `json:"skillGapAnalysis"`
	LearningRoadmap   []RoadmapStep   `json:"learningRoadmap"`
	SalaryProspects   SalaryProspects `json:"salaryProspects"`
	Certifications    []string        `json:"certifications"`
	MarketAdvice      string          `json:"marketAdvice"`
	ResumeSuggestions []string        `json:"resumeSuggestions,omitempty"`
}

// Response is the decoded model answer.
type Response struct {
	Recommendations []CareerRecommendation `json:"recommendations"`
}
