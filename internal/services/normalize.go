package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Sujitlop/Resume-reviewer/internal/models"
)

// ErrMissingRequiredFields reports that a structurally valid payload lacked
// the fields a full review must carry.
var ErrMissingRequiredFields = errors.New("missing required fields in model output")

const maxTopFixes = 5

// rawReviewPayload mirrors the shape the model is asked to return. Every
// field is kept raw so each one can be coerced individually regardless of
// the type the model actually produced.
type rawReviewPayload struct {
	Overview          json.RawMessage `json:"overview"`
	MatchLevel        json.RawMessage `json:"match_level"`
	Sections          json.RawMessage `json:"sections"`
	TopFixes          json.RawMessage `json:"top_fixes"`
	JDKeywords        json.RawMessage `json:"jd_keywords"`
	InsertionGuidance json.RawMessage `json:"insertion_guidance"`
	MissingInfo       json.RawMessage `json:"missing_info"`
	ResumeOutline     json.RawMessage `json:"resume_outline"`
}

type rawSectionPayload struct {
	Strengths  json.RawMessage `json:"strengths"`
	Weaknesses json.RawMessage `json:"weaknesses"`
	Rewrites   json.RawMessage `json:"rewrites"`
	Keywords   json.RawMessage `json:"keywords"`
}

// NormalizeReview parses the extracted JSON payload and coerces it into the
// fixed response schema. When requireContent is set, an empty overview,
// match level, or top-fixes list is a validation failure; the invoker treats
// that the same as unparsable output and moves on to the next candidate.
func NormalizeReview(data []byte, requireContent bool) (*models.ReviewResponse, error) {
	var raw rawReviewPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model output: %w", err)
	}

	overview := coerceString(raw.Overview)
	matchLevel := coerceString(raw.MatchLevel)
	topFixes := coerceList(raw.TopFixes)

	if requireContent && (overview == "" || matchLevel == "" || len(topFixes) == 0) {
		return nil, ErrMissingRequiredFields
	}

	if len(topFixes) > maxTopFixes {
		topFixes = topFixes[:maxTopFixes]
	}

	sections := make(map[string]models.SectionFeedback, len(models.SectionNames))
	rawSections := decodeSections(raw.Sections)
	for _, name := range models.SectionNames {
		sections[name] = normalizeSection(rawSections[name])
	}

	return &models.ReviewResponse{
		Overview:          overview,
		MatchLevel:        matchLevel,
		Sections:          sections,
		TopFixes:          topFixes,
		JDKeywords:        coerceList(raw.JDKeywords),
		InsertionGuidance: coerceList(raw.InsertionGuidance),
		MissingInfo:       coerceList(raw.MissingInfo),
		ResumeOutline:     coerceList(raw.ResumeOutline),
	}, nil
}

// decodeSections tolerates a missing or wrong-typed sections value by
// falling back to an empty mapping.
func decodeSections(raw json.RawMessage) map[string]json.RawMessage {
	if len(raw) == 0 {
		return nil
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil
	}
	return sections
}

func normalizeSection(raw json.RawMessage) models.SectionFeedback {
	var section rawSectionPayload
	if len(raw) > 0 {
		// A non-object section is treated as absent.
		_ = json.Unmarshal(raw, &section)
	}

	return models.SectionFeedback{
		Strengths:  coerceList(section.Strengths),
		Weaknesses: coerceList(section.Weaknesses),
		Rewrites:   coerceList(section.Rewrites),
		Keywords:   coerceList(section.Keywords),
	}
}

// coerceString stringifies and trims a raw value of any JSON type.
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// coerceList applies the lenient list rule: a sequence has each element
// stringified and trimmed, a bare string is split on line breaks with bullet
// markers stripped, anything else yields an empty list. Empty entries are
// dropped in every case.
func coerceList(raw json.RawMessage) []string {
	result := []string{}
	if len(raw) == 0 {
		return result
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err == nil {
		for _, item := range items {
			var entry string
			if s, ok := item.(string); ok {
				entry = s
			} else if item != nil {
				entry = fmt.Sprint(item)
			}
			if entry = strings.TrimSpace(entry); entry != "" {
				result = append(result, entry)
			}
		}
		return result
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		for _, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			line = strings.TrimSpace(strings.Trim(line, "- "))
			if line != "" {
				result = append(result, line)
			}
		}
		return result
	}

	return result
}
