package conversation

import (
	"fmt"
	"strconv"
	"strings"

	_ "embed"
)

//go:embed prompts/system.md
var systemTemplate string

//go:embed prompts/wrapup.md
var wrapupPrompt string

// phaseGuide describes how the model should question the user during one
// phase. Example questions may be personalized from the extracted context;
// a nil examples func means the generic topics line is enough.
type phaseGuide struct {
	heading    string
	topics     string
	transition string
	examples   func(ExtractedContext) string
}

var phaseGuides = map[Phase]phaseGuide{
	PhaseEducation: {
		heading:    "EDUCATION - Ask about their educational background",
		topics:     "degree, school, field of study, graduation year",
		transition: `When you have enough education info, say "Great! Tell me about your work experience."`,
	},
	PhaseExperience: {
		heading:    "WORK EXPERIENCE - Ask about their career and skills",
		topics:     "jobs, roles, companies, years of experience, key skills",
		transition: `When you have enough experience info, say "Perfect! What kind of job are you looking for?"`,
		examples:   experienceExamples,
	},
	PhasePreferences: {
		heading:    "JOB PREFERENCES - Ask what they're looking for",
		topics:     "ideal role, industry, company type, culture preferences",
		transition: `When you have their preferences, say "Excellent! Let's talk about location and salary."`,
		examples:   preferenceExamples,
	},
	PhaseLocation: {
		heading:    "LOCATION & SALARY - Ask about logistics",
		topics:     "where they want to work, remote preferences, salary expectations",
		transition: `When you have this info, say "Almost done! Just a couple final questions."`,
		examples:   locationExamples,
	},
	PhaseConfirmation: {
		heading:    "FINAL DETAILS - Wrap up",
		topics:     "start date, deal-breakers, confirm everything collected so far",
		transition: `When you have everything, say "Perfect! I have all I need to find great matches for you!" and add the literal token ` + CompletionToken + ` to your reply`,
	},
}

// Composer builds the instruction text injected ahead of the conversation
// history on every model call.
type Composer struct{}

// Compose returns the system instructions for the next assistant turn. Once
// the conversation is complete it switches to the terminal wrap-up
// instructions, which carry no marker contract.
func (Composer) Compose(phase Phase, extracted ExtractedContext, complete bool) string {
	if complete {
		return strings.TrimSpace(wrapupPrompt)
	}

	phase = phase.Clamp()

	prompt := strings.ReplaceAll(systemTemplate, "{{STEP}}", strconv.Itoa(int(phase)))
	prompt = strings.ReplaceAll(prompt, "{{CONTEXT}}", contextLines(extracted))
	prompt = strings.ReplaceAll(prompt, "{{FOCUS}}", focusBlock(phase, extracted))

	return strings.TrimSpace(prompt)
}

// contextLines summarizes the extracted professional fields so the model can
// tailor its questions. Empty when nothing matched.
func contextLines(extracted ExtractedContext) string {
	var lines []string
	for _, category := range []string{CategoryTechFields, CategoryBusinessFields} {
		if tags := extracted[category]; len(tags) > 0 {
			lines = append(lines, "Field: "+strings.Join(tags, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

func focusBlock(phase Phase, extracted ExtractedContext) string {
	guide := phaseGuides[phase]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", guide.heading)
	fmt.Fprintf(&b, "Topics: %s\n", guide.topics)

	if guide.examples != nil {
		fmt.Fprintf(&b, "Example questions: %s\n", guide.examples(extracted))
	}

	fmt.Fprintf(&b, "STAY ON THIS STEP'S TOPICS ONLY.\n")
	fmt.Fprintf(&b, "%s and report the next step in your marker.\n", guide.transition)

	if next := (phase + 1).Clamp(); next > phase {
		fmt.Fprintf(&b, "END WITH: %s%d (or %s%d once this step's info is collected)", StepMarkerPrefix, phase, StepMarkerPrefix, next)
	} else {
		fmt.Fprintf(&b, "END WITH: %s%d", StepMarkerPrefix, phase)
	}

	return b.String()
}

// Personalized example questions per phase. Every branch has a generic
// fallback so the prompt never renders an empty examples line.

func experienceExamples(extracted ExtractedContext) string {
	switch {
	case extracted.Has(CategoryTechFields, "software development"):
		return "What frameworks or languages have you worked with? (e.g., React, Python, Node.js) What types of projects have you built?"
	case extracted.Has(CategoryTechFields, "data science"):
		return "What ML frameworks do you use? (e.g., TensorFlow, PyTorch, Scikit-learn) What data problems have you solved?"
	case extracted.Has(CategoryBusinessFields, "marketing"):
		return "What marketing channels are you experienced with? (e.g., SEO, paid ads, social media) What campaigns have you led?"
	}
	return "What specific skills and tools do you excel at? What are your key achievements?"
}

func preferenceExamples(extracted ExtractedContext) string {
	switch {
	case extracted.Has(CategoryTechFields, "software development"):
		return "Are you interested in frontend, backend, or full-stack roles? Do you prefer startups or established companies?"
	case extracted.Has(CategoryTechFields, "data science"):
		return "Are you looking for ML engineering, data analysis, or research roles? What type of data problems excite you?"
	case extracted.Has(CategoryBusinessFields, "marketing"):
		return "Do you prefer digital marketing, growth, or brand strategy? Agency or in-house?"
	}
	return "What's your ideal role? What type of company culture appeals to you?"
}

func locationExamples(extracted ExtractedContext) string {
	if len(extracted[CategoryTechFields]) > 0 {
		return "Are you open to remote work? Tech hubs like SF, NYC, Austin? What's your salary range?"
	}
	return "Where do you want to work? Remote, hybrid, or in-office? What's your target salary?"
}
