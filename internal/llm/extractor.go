package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes the JSON an extraction prompt asks for.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField is one top-level field of the expected output.
type SchemaField struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// BuildExtractionPrompt renders schema, then the labelled input sections in order.
func BuildExtractionPrompt(schema ExtractionSchema, sections ...Section) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\nReturn ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")
	sb.WriteString("Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	for _, s := range sections {
		sb.WriteString("\n")
		sb.WriteString(s.Label)
		sb.WriteString(":\n\"\"\"\n")
		sb.WriteString(strings.TrimSpace(s.Text))
		sb.WriteString("\n\"\"\"\n")
	}
	return sb.String()
}

// Section is a labelled block of prompt input.
type Section struct {
	Label string
	Text  string
}

// JobMatchSchema is the output shape of a résumé to job description comparison.
func JobMatchSchema(description string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "JobMatchAnalysis",
		Description: description,
		Fields: []SchemaField{
			{Name: "overallScore", Type: "integer 0-100", Description: "how well the résumé fits the job", Required: true},
			{Name: "matchSummary", Type: `"string"`, Description: "two or three sentences", Required: true},
			{Name: "skillsMatch", Type: `{"matched": ["string"], "missing": ["string"], "matchPercentage": integer 0-100}`, Required: true},
			{Name: "keywordsAnalysis", Type: `{"found": ["string"], "required": ["string"], "matchPercentage": integer 0-100}`, Description: "found must be a subset of required, spelled identically", Required: true},
			{Name: "recommendations", Type: `["string"]`, Description: "concrete résumé edits", Required: true},
		},
	}
}
