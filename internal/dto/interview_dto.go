package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CandidateInfo carries optional attributes about the interviewee.
type CandidateInfo struct {
	Name            string   `json:"name,omitempty" validate:"omitempty,max=200"`
	Role            string   `json:"role,omitempty" validate:"omitempty,max=200"`
	ExperienceLevel string   `json:"experience_level,omitempty" validate:"omitempty,max=100"`
	Skills          []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,max=100"`
}

// IsZero reports whether no candidate attribute was supplied.
func (c CandidateInfo) IsZero() bool {
	return c.Name == "" && c.Role == "" && c.ExperienceLevel == "" && len(c.Skills) == 0
}

// SuggestQuestionsRequest represents the payload for generating interview questions.
type SuggestQuestionsRequest struct {
	Context           string        `json:"context" validate:"max=5000"`
	Type              string        `json:"type" validate:"omitempty,max=50"`
	Count             int           `json:"count" validate:"gte=0,lte=20"`
	PreviousQuestions []string      `json:"previous_questions" validate:"dive,max=2000"`
	CandidateInfo     CandidateInfo `json:"candidate_info"`
}

// Question is a single generated interview question.
type Question struct {
	Question            string   `json:"question" yaml:"question"`
	Category            string   `json:"category" yaml:"category"`
	Difficulty          string   `json:"difficulty" yaml:"difficulty"`
	Purpose             string   `json:"purpose" yaml:"purpose"`
	FollowUpSuggestions []string `json:"follow_up_suggestions" yaml:"follow_up_suggestions"`
}

// QAPair is one prior exchange supplied as follow-up context.
type QAPair struct {
	Question string `json:"question" validate:"max=5000"`
	Answer   string `json:"answer" validate:"max=20000"`
}

// SuggestFollowUpRequest represents the payload for generating follow-up questions.
type SuggestFollowUpRequest struct {
	Question  string   `json:"question" validate:"max=5000"`
	Answer    string   `json:"answer" validate:"max=20000"`
	QAHistory []QAPair `json:"qa_history" validate:"dive"`
}

// FollowUpQuestion is a generated follow-up.
type FollowUpQuestion struct {
	Question  string `json:"question" yaml:"question"`
	Relevance string `json:"relevance" yaml:"relevance"`
	Purpose   string `json:"purpose" yaml:"purpose"`
}

// QuestionsResponse wraps generated questions with a generation timestamp.
type QuestionsResponse struct {
	Questions []Question `json:"questions"`
	Timestamp string     `json:"timestamp"`
}

// FollowUpResponse wraps generated follow-ups with a generation timestamp.
type FollowUpResponse struct {
	FollowUpQuestions []FollowUpQuestion `json:"followup_questions"`
	Timestamp         string             `json:"timestamp"`
}

// AnswerContext is optional context for answer analysis.
type AnswerContext struct {
	Role            string   `json:"role,omitempty" validate:"omitempty,max=200"`
	ExperienceLevel string   `json:"experience_level,omitempty" validate:"omitempty,max=100"`
	PreviousAnswers []string `json:"previous_answers,omitempty" validate:"omitempty,max=20,dive,max=20000"`
}

// AnalyzeAnswerRequest represents the payload for scoring an answer.
type AnalyzeAnswerRequest struct {
	Question string        `json:"question" validate:"max=5000"`
	Answer   string        `json:"answer" validate:"max=20000"`
	Context  AnswerContext `json:"context"`
}

// DetailedScores holds the five rubric dimensions, each in [1,10].
type DetailedScores struct {
	Relevance       float64 `json:"relevance"`
	Completeness    float64 `json:"completeness"`
	Clarity         float64 `json:"clarity"`
	Specificity     float64 `json:"specificity"`
	Professionalism float64 `json:"professionalism"`
}

// AnalysisMetadata is computed locally regardless of AI availability.
type AnalysisMetadata struct {
	WordCount              int    `json:"word_count"`
	EstimatedSpeechSeconds int    `json:"estimated_speech_seconds"`
	QuestionType           string `json:"question_type"`
	Complexity             string `json:"complexity"`
}

// AnswerAnalysis is the scored assessment of a single answer.
type AnswerAnalysis struct {
	OverallRating   float64          `json:"overall_rating" validate:"gte=0,lte=10"`
	DetailedScores  DetailedScores   `json:"detailed_scores"`
	Strengths       []string         `json:"strengths"`
	Weaknesses      []string         `json:"weaknesses"`
	Suggestions     []string         `json:"suggestions"`
	KeyPoints       []string         `json:"key_points"`
	Sentiment       string           `json:"sentiment"`
	ConfidenceLevel string           `json:"confidence_level"`
	Metadata        AnalysisMetadata `json:"metadata"`
}

// AnalysisResponse wraps an analysis with a generation timestamp.
type AnalysisResponse struct {
	Analysis  AnswerAnalysis `json:"analysis"`
	Timestamp string         `json:"timestamp"`
}

// GenerateFeedbackRequest asks for prose feedback on an existing analysis.
type GenerateFeedbackRequest struct {
	Analysis AnswerAnalysis `json:"analysis"`
}

// FeedbackResponse wraps generated feedback prose.
type FeedbackResponse struct {
	Feedback  string `json:"feedback"`
	Timestamp string `json:"timestamp"`
}

// FlexibleText accepts either a bare JSON string or an object carrying the text under
// "text", "question" or "answer".
type FlexibleText string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*f = FlexibleText(text)
		return nil
	case '{':
		var obj map[string]interface{}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		for _, key := range []string{"text", "answer", "question"} {
			if value, ok := obj[key].(string); ok {
				*f = FlexibleText(value)
				return nil
			}
		}
		*f = ""
		return nil
	default:
		return fmt.Errorf("expected string or object, got %s", strings.TrimSpace(string(trimmed[:1])))
	}
}

// String returns the underlying text.
func (f FlexibleText) String() string {
	return string(f)
}

// InterviewData is the bundle a report is built from. Duration is in milliseconds.
// Out-of-range ratings and negative durations are clamped by the report service.
type InterviewData struct {
	Questions     []FlexibleText `json:"questions"`
	Answers       []FlexibleText `json:"answers"`
	Ratings       []float64      `json:"ratings"`
	Duration      int64          `json:"duration"`
	CandidateInfo CandidateInfo  `json:"candidate_info"`
}

// GenerateReportRequest represents the payload for assembling an interview report.
type GenerateReportRequest struct {
	InterviewData InterviewData `json:"interview_data"`
}
