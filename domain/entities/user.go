package entities

import "time"

// User is the merged identity-provider / document-store view of an account.
// Created at sign-up and immutable afterwards in this flow.
type User struct {
	ID    string `json:"id" dynamodbav:"UserID"`
	Name  string `json:"name" dynamodbav:"Name"`
	Email string `json:"email" dynamodbav:"Email"`

	// TokensValidAfter is the revocation epoch: session tokens issued
	// before this instant fail the revocation check.
	TokensValidAfter time.Time `json:"-" dynamodbav:"TokensValidAfter,unixtime"`
}
