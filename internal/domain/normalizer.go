package domain

import "strings"

// MaxEmbeddingTextLength bounds the characters sent to an embedding provider.
const MaxEmbeddingTextLength = 8000

// JobEmbeddingText builds the canonical embedding input for a job.
// Field order is fixed: title, description, requirements, skills, experience level,
// employment type, location, company.
func JobEmbeddingText(job *Job) string {
	if job == nil {
		return ""
	}
	return joinFields(
		job.Title,
		job.Description,
		strings.Join(job.Requirements, " "),
		strings.Join(job.Skills, " "),
		job.ExperienceLevel,
		job.EmploymentType,
		job.Location,
		job.Company,
	)
}

// CandidateEmbeddingText builds the canonical embedding input for a candidate.
// Field order is fixed: headline, summary, skills, experience, education, location.
func CandidateEmbeddingText(candidate *Candidate) string {
	if candidate == nil {
		return ""
	}
	return joinFields(
		candidate.Headline,
		candidate.Summary,
		strings.Join(candidate.Skills, " "),
		strings.Join(candidate.Experience, " "),
		strings.Join(candidate.Education, " "),
		candidate.Location,
	)
}

func joinFields(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.Join(strings.Fields(field), " "); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return truncateRunes(strings.Join(parts, " "), MaxEmbeddingTextLength)
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
