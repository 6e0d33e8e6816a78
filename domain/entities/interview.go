package entities

import "time"

// Interview is a mock-interview definition. Interviews are authored once
// (by the generation flow) and read-only everywhere else; a finalized
// interview is eligible to be offered to users other than its owner.
type Interview struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	Type      string    `json:"type"`
	Level     string    `json:"level,omitempty"`
	Techstack []string  `json:"techstack"`
	Questions []string  `json:"questions,omitempty"`
	Finalized bool      `json:"finalized"`
	CreatedAt time.Time `json:"createdAt"`
}
