package dynamodb

import (
	"testing"
	"time"

	"interviewprep-backend/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedbackItem_CurrentShape(t *testing.T) {
	feedback := entities.Feedback{
		ID:          "f1",
		InterviewID: "i1",
		UserID:      "u1",
		TotalScore:  80,
		CategoryScores: []entities.CategoryScore{
			{Name: "Technical Knowledge", Score: 85, Comment: "strong"},
		},
		Strengths:           []string{"clear answers"},
		AreasForImprovement: []string{"system design depth"},
		FinalAssessment:     "Solid candidate.",
		CreatedAt:           time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	item, err := attributevalue.MarshalMap(feedbackItem{
		PK:                  interviewPK(feedback.InterviewID),
		SK:                  feedbackSK(feedback.UserID),
		EntityType:          "FEEDBACK",
		FeedbackID:          feedback.ID,
		InterviewID:         feedback.InterviewID,
		UserID:              feedback.UserID,
		TotalScore:          feedback.TotalScore,
		CategoryScores:      feedback.CategoryScores,
		Strengths:           feedback.Strengths,
		AreasForImprovement: feedback.AreasForImprovement,
		FinalAssessment:     feedback.FinalAssessment,
		CreatedAt:           feedback.CreatedAt.Format(time.RFC3339),
	})
	require.NoError(t, err)

	parsed, err := parseFeedbackItem(item)
	require.NoError(t, err)
	assert.Equal(t, &feedback, parsed)
}

func TestParseFeedbackItem_LegacyMappingShape(t *testing.T) {
	// Records written by older versions stored category scores as a
	// name->score mapping and sometimes scalar strengths.
	item := map[string]types.AttributeValue{
		"FeedbackID":  &types.AttributeValueMemberS{Value: "f1"},
		"InterviewID": &types.AttributeValueMemberS{Value: "i1"},
		"UserID":      &types.AttributeValueMemberS{Value: "u1"},
		"TotalScore":  &types.AttributeValueMemberN{Value: "70"},
		"CategoryScores": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"Technical Knowledge":  &types.AttributeValueMemberN{Value: "75"},
			"Communication Skills": &types.AttributeValueMemberN{Value: "65"},
		}},
		"Strengths":           &types.AttributeValueMemberS{Value: "not a list"},
		"AreasForImprovement": &types.AttributeValueMemberNULL{Value: true},
		"FinalAssessment":     &types.AttributeValueMemberS{Value: "Okay."},
		"CreatedAt":           &types.AttributeValueMemberS{Value: "2024-11-05T09:00:00Z"},
	}

	parsed, err := parseFeedbackItem(item)
	require.NoError(t, err)

	require.Len(t, parsed.CategoryScores, 2)
	assert.Equal(t, "Communication Skills", parsed.CategoryScores[0].Name)
	assert.Equal(t, 65, parsed.CategoryScores[0].Score)
	assert.Empty(t, parsed.CategoryScores[0].Comment)
	assert.Equal(t, "Technical Knowledge", parsed.CategoryScores[1].Name)
	assert.Equal(t, 75, parsed.CategoryScores[1].Score)

	// Non-list fields degrade to empty lists, never errors.
	assert.Empty(t, parsed.Strengths)
	assert.Empty(t, parsed.AreasForImprovement)
	assert.Equal(t, 70, parsed.TotalScore)
}

func TestParseFeedbackItem_BadCreatedAtIsTolerated(t *testing.T) {
	item := map[string]types.AttributeValue{
		"FeedbackID": &types.AttributeValueMemberS{Value: "f1"},
		"CreatedAt":  &types.AttributeValueMemberS{Value: "not a timestamp"},
	}

	parsed, err := parseFeedbackItem(item)
	require.NoError(t, err)
	assert.True(t, parsed.CreatedAt.IsZero())
}
