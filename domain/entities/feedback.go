package entities

import (
	"sort"
	"time"
)

// CategoryScore is a named sub-score with commentary, one component of the
// overall feedback breakdown.
type CategoryScore struct {
	Name    string `json:"name" dynamodbav:"name" validate:"required"`
	Score   int    `json:"score" dynamodbav:"score" validate:"min=0,max=100"`
	Comment string `json:"comment" dynamodbav:"comment"`
}

// Feedback is the LLM-scored assessment of one user's run of one interview.
// At most one feedback per (interview, user) pair is ever read back; records
// are never updated or deleted in this flow.
type Feedback struct {
	ID                  string          `json:"id"`
	InterviewID         string          `json:"interviewId"`
	UserID              string          `json:"userId"`
	TotalScore          int             `json:"totalScore"`
	CategoryScores      []CategoryScore `json:"categoryScores"`
	Strengths           []string        `json:"strengths"`
	AreasForImprovement []string        `json:"areasForImprovement"`
	FinalAssessment     string          `json:"finalAssessment"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// NormalizeCategoryScores converts the stored category-scores attribute,
// whatever shape it was written in, into an ordered list. Older records
// stored a name->score mapping instead of a list; those become entries with
// an empty comment, in sorted key order so the result is deterministic.
// Total for any input: nil, scalars, and unknown shapes yield an empty list.
func NormalizeCategoryScores(v any) []CategoryScore {
	switch scores := v.(type) {
	case []CategoryScore:
		if scores == nil {
			return []CategoryScore{}
		}
		return scores
	case []any:
		out := make([]CategoryScore, 0, len(scores))
		for _, e := range scores {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, CategoryScore{
				Name:    asString(m["name"]),
				Score:   asScore(m["score"]),
				Comment: asString(m["comment"]),
			})
		}
		return out
	case map[string]any:
		names := make([]string, 0, len(scores))
		for name := range scores {
			names = append(names, name)
		}
		sort.Strings(names)

		out := make([]CategoryScore, 0, len(names))
		for _, name := range names {
			out = append(out, CategoryScore{
				Name:  name,
				Score: asScore(scores[name]),
			})
		}
		return out
	default:
		return []CategoryScore{}
	}
}

// NormalizeStringList converts a stored attribute into a string list,
// yielding an empty list for anything that is not one. Non-string elements
// inside a list are dropped rather than coerced.
func NormalizeStringList(v any) []string {
	switch items := v.(type) {
	case []string:
		if items == nil {
			return []string{}
		}
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, e := range items {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asScore accepts the numeric types produced by JSON decoding and by
// DynamoDB attribute unmarshalling.
func asScore(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
