package conversation

import "regexp"

// Extraction category names. They mirror the keys the frontend expects.
const (
	CategoryTechFields     = "techFields"
	CategoryBusinessFields = "businessFields"
	CategorySkills         = "skills"
	CategoryIndustries     = "industries"
)

type keywordRule struct {
	tag     string
	pattern *regexp.Regexp
}

// keywordRules maps each category to its ordered pattern list. The table is
// data only; adding a category or tag requires no code changes elsewhere.
// Patterns run against the lowercased transcript, so they stay lowercase.
var keywordRules = map[string][]keywordRule{
	CategoryTechFields: {
		{tag: "software development", pattern: regexp.MustCompile(`\b(computer science|cs|software|programming|coding|developer|engineer)\b`)},
		{tag: "data science", pattern: regexp.MustCompile(`\b(data science|machine learning|ml|ai|analytics)\b`)},
		{tag: "design", pattern: regexp.MustCompile(`\b(design|ui|ux|figma|sketch)\b`)},
	},
	CategoryBusinessFields: {
		{tag: "marketing", pattern: regexp.MustCompile(`\b(marketing|seo|social media|advertising)\b`)},
		{tag: "finance", pattern: regexp.MustCompile(`\b(finance|accounting|investment|banking)\b`)},
		{tag: "sales", pattern: regexp.MustCompile(`\b(sales|business development|account)\b`)},
	},
	CategorySkills:     {},
	CategoryIndustries: {},
}

// ExtractedContext maps a category name to the keyword tags matched in the
// transcript. It is a recomputed view, never stored session state.
type ExtractedContext map[string][]string

// Has reports whether the given tag was matched under the given category.
func (c ExtractedContext) Has(category, tag string) bool {
	for _, t := range c[category] {
		if t == tag {
			return true
		}
	}
	return false
}

// Empty reports whether no category matched anything.
func (c ExtractedContext) Empty() bool {
	for _, tags := range c {
		if len(tags) > 0 {
			return false
		}
	}
	return true
}

// ExtractContext scans the full transcript, case-insensitively, and returns
// the matched tags per category. Pure function: identical transcripts yield
// identical results, and an empty transcript yields empty sets for every
// category.
func ExtractContext(t Transcript) ExtractedContext {
	joined := t.joinedLower()

	out := make(ExtractedContext, len(keywordRules))
	for category, rules := range keywordRules {
		tags := []string{}
		for _, rule := range rules {
			if rule.pattern.MatchString(joined) {
				tags = append(tags, rule.tag)
			}
		}
		out[category] = tags
	}

	return out
}
