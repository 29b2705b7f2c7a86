package services

import (
	"fmt"
)

// StrictJSONInstruction is appended to the prompt between retry attempts to
// push the model toward bare, parseable JSON.
const StrictJSONInstruction = "\n\nReturn ONLY valid JSON with keys overview, match_level, sections, top_fixes, " +
	"jd_keywords, insertion_guidance, missing_info, resume_outline. " +
	"Do not wrap in code fences."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildOutlinePrompt creates the prompt used when no resume text was
// provided. The model is asked for a fill-in outline and a missing-info list
// rather than section-by-section feedback.
func (pb *PromptBuilder) BuildOutlinePrompt(roleTitle, jobDescription string) string {
	return fmt.Sprintf(`You are an expert Resume Reviewer for software and tech roles.
The user has only provided a role title and no resume.
Provide a concise outline they can fill in and request missing info.

Role Title: %s
Job Description: %s

Return JSON ONLY with keys:
overview: 1-2 sentences explaining you need a resume to review.
match_level: Low
sections: include keys profile_summary, experience, projects, skills, education. Each section should have arrays for strengths, weaknesses, rewrites, keywords (empty arrays are OK).
top_fixes: 3-5 bullets on what to gather next.
jd_keywords: 5-10 important keywords if JD provided, else empty array.
insertion_guidance: where to place those keywords if a resume were provided.
missing_info: list of details you need from the user.
resume_outline: bullet outline for a tech resume they can fill in.`,
		roleTitle, orNotProvided(jobDescription))
}

// BuildReviewPrompt creates the full-review prompt for a provided resume and
// optional job description and role title.
func (pb *PromptBuilder) BuildReviewPrompt(resume, jobDescription, roleTitle string) string {
	return fmt.Sprintf(`You are an expert Resume Reviewer for software and tech roles.
Analyze the resume (and job description if provided) and give clear, practical, prioritized feedback.

Goals:
- Evaluate match to target role.
- Improve clarity, impact, and brevity.
- Optimize for ATS.
- Suggest concrete rewrites (do not invent experience).

Instructions:
- Start with a short overview (1-2 sentences) and match level (Low/Medium/High).
- Then provide section-by-section feedback with headings: Profile / Summary, Experience, Projects, Skills, Education / Certifications.
- For each section: strengths, weaknesses, example rewrites, keywords for ATS.
- If resume is short/junior, suggest projects/coursework to add.
- If JD provided: list top 5-10 skills/keywords and show how to insert them.

Role Title: %s
Job Description: %s
Resume: %s

Return JSON ONLY with keys:
overview: brief overview (2-3 sentences).
match_level: Low/Medium/High.
sections: object with keys profile_summary, experience, projects, skills, education.
Each section has arrays: strengths, weaknesses, rewrites, keywords.
top_fixes: Top 5 changes to make next, ordered by impact.
jd_keywords: list of keywords from the JD (empty if no JD).
insertion_guidance: bullets showing where/how to insert JD keywords.
missing_info: details to request if resume lacks specifics.
resume_outline: empty array unless resume is missing.`,
		orNotProvided(roleTitle), orNotProvided(jobDescription), resume)
}

func orNotProvided(value string) string {
	if value == "" {
		return "Not provided"
	}
	return value
}
