package devserver

import (
	"regexp"
	"sort"
	"strings"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"mongo":      "MongoDB",
	"gcp":        "Google Cloud",
	"cicd":       "CI/CD",
	"ml":         "Machine Learning",

	"amazon web services": "AWS",
}

// caseSensitive terms are also ordinary English words and only count when written as shown.
var caseSensitive = map[string]bool{
	"Go": true, "REST": true, "Spring": true, "Express": true, "Swift": true, "Rust": true, "Ruby": true, "Spark": true,
}

// skillVocabulary is the canonical set of terms the keyword analyzer recognizes.
var skillVocabulary = []string{
	"Go", "Python", "Java", "JavaScript", "TypeScript", "Rust", "C++", "C#", "Ruby", "PHP", "Kotlin", "Swift", "Scala",
	"React", "Vue", "Angular", "Next.js", "Node.js", "Express", "Django", "Flask", "Spring", "Rails", "GraphQL", "REST",
	"gRPC", "PostgreSQL", "MySQL", "MongoDB", "Redis", "Kafka", "RabbitMQ", "Elasticsearch", "SQL", "NoSQL",
	"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Terraform", "Ansible", "Linux", "CI/CD", "Git",
	"Microservices", "Distributed Systems", "Machine Learning", "Data Engineering", "Spark", "Airflow",
	"HTML", "CSS", "Tailwind", "Figma", "Agile", "Scrum", "Testing", "Security", "Observability", "Prometheus",
	"Leadership", "Mentoring", "Communication",
}

var tokenPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+#./-]*`)

// NormalizeSkillName maps a variant to its canonical name. Unknown names are returned trimmed.
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}
	for _, skill := range skillVocabulary {
		if strings.EqualFold(skill, normalized) {
			return skill
		}
	}
	return normalized
}

// ExtractSkills returns the canonical vocabulary terms mentioned in text, in vocabulary order.
func ExtractSkills(text string) []string {
	found := make(map[string]bool)
	lower := " " + strings.ToLower(text) + " "

	// Multi-word terms and aliases first.
	for alias, canonical := range skillNormalizations {
		if strings.Contains(alias, " ") && strings.Contains(lower, alias) {
			found[canonical] = true
		}
	}
	for _, skill := range skillVocabulary {
		if strings.Contains(skill, " ") && strings.Contains(lower, strings.ToLower(skill)) {
			found[skill] = true
		}
	}

	for _, tok := range tokenPattern.FindAllString(text, -1) {
		tok = strings.TrimRight(tok, ".,/-")
		if tok == "" {
			continue
		}
		canonical := NormalizeSkillName(tok)
		_, aliased := skillNormalizations[strings.ToLower(tok)]
		if caseSensitive[canonical] && tok != canonical && !aliased {
			continue
		}
		if isVocabulary(canonical) {
			found[canonical] = true
		}
	}

	out := make([]string, 0, len(found))
	for _, skill := range skillVocabulary {
		if found[skill] {
			out = append(out, skill)
		}
	}
	return out
}

func isVocabulary(name string) bool {
	i := sort.SearchStrings(sortedVocabulary, name)
	return i < len(sortedVocabulary) && sortedVocabulary[i] == name
}

var sortedVocabulary = func() []string {
	s := append([]string(nil), skillVocabulary...)
	sort.Strings(s)
	return s
}()
