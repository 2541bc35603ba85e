package domain

import (
	"fmt"
	"math"
	"strings"
)

// Policy names accepted by PoliciesByName.
const (
	PolicyEntryLevelFloor = "entry_level_floor"
	PolicyTitleFloor      = "title_floor"
)

const defaultEntryLevelFloor = 60.0

// DefaultTitleFloors are the minimum AI scores for job titles containing the key.
//
//nolint:gochecknoglobals // read-only lookup table
var DefaultTitleFloors = map[string]float64{
	"intern":    60,
	"trainee":   60,
	"assistant": 55,
}

// ScoringContext is what a policy may inspect.
type ScoringContext struct {
	Job              *Job
	Candidate        *Candidate
	VectorSimilarity float64
}

// ScoringPolicy adjusts an AI score after validation and before blending.
type ScoringPolicy struct {
	Name  string
	Apply func(score float64, sc ScoringContext) float64
}

// ScoringPolicies run in order.
type ScoringPolicies []ScoringPolicy

// Apply runs every policy in order and clamps the result to [0,100].
func (p ScoringPolicies) Apply(score float64, sc ScoringContext) float64 {
	for _, policy := range p {
		score = policy.Apply(score, sc)
	}
	return clamp(score, minAIScore, maxAIScore)
}

// Names lists the policies in order.
func (p ScoringPolicies) Names() []string {
	names := make([]string, 0, len(p))
	for _, policy := range p {
		names = append(names, policy.Name)
	}
	return names
}

// EntryLevelFloor raises scores for entry-level jobs to at least floor.
func EntryLevelFloor(floor float64) ScoringPolicy {
	return ScoringPolicy{
		Name: PolicyEntryLevelFloor,
		Apply: func(score float64, sc ScoringContext) float64 {
			if sc.Job == nil || !isEntryLevel(sc.Job) {
				return score
			}
			return math.Max(score, floor)
		},
	}
}

// TitleFloor raises scores for jobs whose title contains one of the keys.
// When several keys match the highest floor wins.
func TitleFloor(floors map[string]float64) ScoringPolicy {
	return ScoringPolicy{
		Name: PolicyTitleFloor,
		Apply: func(score float64, sc ScoringContext) float64 {
			if sc.Job == nil {
				return score
			}
			title := strings.ToLower(sc.Job.Title)
			for key, floor := range floors {
				if strings.Contains(title, strings.ToLower(key)) {
					score = math.Max(score, floor)
				}
			}
			return score
		},
	}
}

// PoliciesByName builds policies in the given order with default parameters.
func PoliciesByName(names []string) (ScoringPolicies, error) {
	policies := make(ScoringPolicies, 0, len(names))
	for _, name := range names {
		switch strings.TrimSpace(name) {
		case "":
			continue
		case PolicyEntryLevelFloor:
			policies = append(policies, EntryLevelFloor(defaultEntryLevelFloor))
		case PolicyTitleFloor:
			policies = append(policies, TitleFloor(DefaultTitleFloors))
		default:
			return nil, fmt.Errorf("%w: unknown scoring policy %q", ErrConfiguration, name)
		}
	}
	return policies, nil
}

func isEntryLevel(job *Job) bool {
	level := strings.ToLower(job.ExperienceLevel)
	for _, marker := range []string{"entry", "junior", "graduate", "intern"} {
		if strings.Contains(level, marker) {
			return true
		}
	}
	title := strings.ToLower(job.Title)
	return strings.Contains(title, "junior") || strings.Contains(title, "entry level")
}
