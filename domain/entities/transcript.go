package entities

import "strings"

// Utterance is one speaker-tagged line of a completed interview.
type Utterance struct {
	Role    string `json:"role" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Transcript is the ordered exchange from a completed interview. It is
// passed by value into feedback generation and never persisted directly.
type Transcript []Utterance

// Format renders the transcript as the flat line-oriented block fed to the
// scoring prompt: "- <role>: <content>\n" per utterance, in original order.
func (t Transcript) Format() string {
	var b strings.Builder
	for _, u := range t {
		b.WriteString("- ")
		b.WriteString(u.Role)
		b.WriteString(": ")
		b.WriteString(u.Content)
		b.WriteString("\n")
	}
	return b.String()
}
