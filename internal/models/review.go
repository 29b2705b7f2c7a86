package models

// Caps on inbound field lengths, matching the public API contract.
const (
	MaxResumeLength         = 4000
	MaxJobDescriptionLength = 6000
	MaxRoleTitleLength      = 120
)

// SectionNames are the five fixed resume categories every review reports on.
var SectionNames = []string{
	"profile_summary",
	"experience",
	"projects",
	"skills",
	"education",
}

type ReviewRequest struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"job_description"`
	RoleTitle      string `json:"role_title"`
}

type SectionFeedback struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Rewrites   []string `json:"rewrites"`
	Keywords   []string `json:"keywords"`
}

type ReviewResponse struct {
	Overview          string                     `json:"overview"`
	MatchLevel        string                     `json:"match_level"`
	Sections          map[string]SectionFeedback `json:"sections"`
	TopFixes          []string                   `json:"top_fixes"`
	JDKeywords        []string                   `json:"jd_keywords"`
	InsertionGuidance []string                   `json:"insertion_guidance"`
	MissingInfo       []string                   `json:"missing_info"`
	ResumeOutline     []string                   `json:"resume_outline"`
}

type HealthResponse struct {
	Status     string   `json:"status"`
	Model      string   `json:"model"`
	Candidates []string `json:"candidates"`
}

type ModelsResponse struct {
	Models []string `json:"models"`
}
