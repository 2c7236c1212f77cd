package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smart-interviewer-api/internal/dto"
	"github.com/noah-isme/smart-interviewer-api/pkg/ai"
)

func TestSuggestQuestionsUsesModelOutput(t *testing.T) {
	client := newStubAIClient().on("Generate 2 high-quality interview questions", map[string]interface{}{
		"questions": []interface{}{
			map[string]interface{}{
				"question":              "How would you shard a write-heavy table?",
				"category":              "Technical",
				"difficulty":            "HARD",
				"purpose":               "Probe data modelling depth",
				"follow_up_suggestions": []interface{}{"What about rebalancing?"},
			},
			map[string]interface{}{
				"question":   "Describe a production incident you owned.",
				"category":   "Behavioral",
				"difficulty": "impossible",
				"purpose":    "Assess ownership",
			},
			map[string]interface{}{
				"question": "A third question beyond the requested count",
			},
		},
	})
	svc := NewQuestionService(client, zerolog.Nop())

	questions := svc.SuggestQuestions(context.Background(), dto.SuggestQuestionsRequest{Type: "technical", Count: 2})

	require.Len(t, questions, 2)
	require.Equal(t, "hard", questions[0].Difficulty)
	require.Equal(t, []string{"What about rebalancing?"}, questions[0].FollowUpSuggestions)
	require.Equal(t, "medium", questions[1].Difficulty)
	require.Equal(t, []string{}, questions[1].FollowUpSuggestions)
}

func TestSuggestQuestionsPromptContents(t *testing.T) {
	client := newStubAIClient()
	client.err = ai.ErrNoProviderConfigured
	svc := NewQuestionService(client, zerolog.Nop())

	previous := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		previous = append(previous, fmt.Sprintf("Earlier question %d?", i))
	}

	svc.SuggestQuestions(context.Background(), dto.SuggestQuestionsRequest{
		Context:           "Backend team <b>payments</b>",
		Type:              "Culture-Fit",
		Count:             3,
		PreviousQuestions: previous,
		CandidateInfo: dto.CandidateInfo{
			Role:            "Staff Engineer",
			ExperienceLevel: "Senior",
			Skills:          []string{"Go", "Kafka"},
		},
	})

	prompts := client.recordedPrompts()
	require.Len(t, prompts, 1)
	prompt := prompts[0]
	require.Contains(t, prompt, "conducting a culture_fit interview")
	require.Contains(t, prompt, "Interview Context: Backend team payments")
	require.Contains(t, prompt, "Role: Staff Engineer")
	require.Contains(t, prompt, "Skills: Go, Kafka")
	require.Contains(t, prompt, "1. Earlier question 1?")
	require.Contains(t, prompt, "12. Earlier question 12?")
	require.Contains(t, prompt, "Focus on values alignment")
}

func TestSuggestQuestionsFallbackByType(t *testing.T) {
	client := newStubAIClient()
	client.err = &ai.ProviderError{Provider: ai.ProviderGemini, StatusCode: 503}
	svc := NewQuestionService(client, zerolog.Nop())

	technical := svc.SuggestQuestions(context.Background(), dto.SuggestQuestionsRequest{Type: "technical", Count: 5})
	require.Len(t, technical, 2)
	require.Equal(t, "Technical", technical[0].Category)

	single := svc.SuggestQuestions(context.Background(), dto.SuggestQuestionsRequest{Type: "behavioral", Count: 1})
	require.Len(t, single, 1)
	require.Equal(t, "Behavioral", single[0].Category)

	unknown := svc.SuggestQuestions(context.Background(), dto.SuggestQuestionsRequest{Type: "leadership", Count: 5})
	require.Len(t, unknown, 2)
	require.Equal(t, "Tell me about yourself and your professional background.", unknown[0].Question)
}

func TestFallbackQuestionsRespectCountAndDifficulty(t *testing.T) {
	for _, questionType := range []string{"technical", "behavioral", "general", "leadership", "culture_fit", "nonsense"} {
		for count := 0; count <= 4; count++ {
			questions := fallbackQuestions(questionType, count)
			require.LessOrEqual(t, len(questions), count)
			for _, question := range questions {
				require.Contains(t, []string{"easy", "medium", "hard"}, question.Difficulty)
				require.NotEmpty(t, question.Question)
			}
		}
	}
}

func TestSuggestQuestionsFallbackIsDeterministic(t *testing.T) {
	client := newStubAIClient()
	client.err = ai.ErrNoProviderConfigured
	svc := NewQuestionService(client, zerolog.Nop())

	req := dto.SuggestQuestionsRequest{Type: "general", Count: 5}
	first := svc.SuggestQuestions(context.Background(), req)
	first[0].FollowUpSuggestions[0] = "mutated"
	second := svc.SuggestQuestions(context.Background(), req)

	require.Equal(t, "What aspects of your background are most relevant to this role?", second[0].FollowUpSuggestions[0])
	require.Equal(t, fallbackQuestions("general", 5), second)
}

func TestSuggestQuestionsEmptyModelListFallsBack(t *testing.T) {
	client := newStubAIClient().on("interview questions", map[string]interface{}{"questions": []interface{}{}})
	svc := NewQuestionService(client, zerolog.Nop())

	questions := svc.SuggestQuestions(context.Background(), dto.SuggestQuestionsRequest{})
	require.Equal(t, fallbackQuestions("general", 5), questions)
}

func TestSuggestFollowUpsUsesLastThreeExchanges(t *testing.T) {
	client := newStubAIClient().on("follow-up questions", map[string]interface{}{
		"followup_questions": []interface{}{
			map[string]interface{}{"question": "Which metrics moved?", "relevance": "Quantifies impact", "purpose": "Verify outcome"},
		},
	})
	svc := NewQuestionService(client, zerolog.Nop())

	history := []dto.QAPair{
		{Question: "Q-one", Answer: "A-one"},
		{Question: "Q-two", Answer: "A-two"},
		{Question: "Q-three", Answer: "A-three"},
		{Question: "Q-four", Answer: "A-four"},
	}
	followUps := svc.SuggestFollowUps(context.Background(), dto.SuggestFollowUpRequest{
		Question:  "Tell me about a launch",
		Answer:    "We shipped it",
		QAHistory: history,
	})

	require.Equal(t, []dto.FollowUpQuestion{{Question: "Which metrics moved?", Relevance: "Quantifies impact", Purpose: "Verify outcome"}}, followUps)

	prompt := client.recordedPrompts()[0]
	require.NotContains(t, prompt, "Q-one")
	require.Contains(t, prompt, "1. Q: Q-two")
	require.Contains(t, prompt, "3. Q: Q-four")
	require.True(t, strings.Contains(prompt, "Original Question: Tell me about a launch"))
}

func TestSuggestFollowUpsFallback(t *testing.T) {
	client := newStubAIClient()
	client.err = ai.ErrStructuredResponse
	svc := NewQuestionService(client, zerolog.Nop())

	followUps := svc.SuggestFollowUps(context.Background(), dto.SuggestFollowUpRequest{Question: "q", Answer: "a"})
	require.Len(t, followUps, 3)
	require.Equal(t, "Can you provide a specific example of that?", followUps[0].Question)
	require.Equal(t, "Assess growth mindset and continuous improvement", followUps[2].Purpose)
}
