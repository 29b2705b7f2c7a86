package services

import (
	"regexp"
	"strings"
)

var (
	fenceOpenRe  = regexp.MustCompile("^```(?:json)?\\s*")
	fenceCloseRe = regexp.MustCompile("\\s*```$")
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractJSON pulls the JSON payload out of raw model output. Models often
// wrap the object in markdown code fences or surround it with prose; strip
// the fences and take the first brace-delimited span. If no object is found
// the cleaned text is returned as-is and parsing fails downstream.
func ExtractJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = fenceOpenRe.ReplaceAllString(cleaned, "")
		cleaned = fenceCloseRe.ReplaceAllString(cleaned, "")
	}

	if match := jsonObjectRe.FindString(cleaned); match != "" {
		return match
	}

	return cleaned
}
