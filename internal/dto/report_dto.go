package dto

import (
	"encoding/json"
	"time"
)

// ReportMetadata describes how and when a report was assembled.
type ReportMetadata struct {
	ReportID          string    `json:"report_id"`
	GeneratedAt       time.Time `json:"generated_at"`
	InterviewDuration int64     `json:"interview_duration"`
	TotalQuestions    int       `json:"total_questions"`
	TotalAnswers      int       `json:"total_answers"`
	AIProvider        string    `json:"ai_provider"`
	Status            string    `json:"status,omitempty"`
}

// ExecutiveSummary is the headline section of a report.
type ExecutiveSummary struct {
	Summary        string   `json:"summary"`
	KeyHighlights  []string `json:"key_highlights"`
	Concerns       []string `json:"concerns"`
	Recommendation string   `json:"recommendation"`
}

// DetailedAnalysis breaks performance down by competency.
type DetailedAnalysis struct {
	CommunicationAnalysis string   `json:"communication_analysis"`
	TechnicalAnalysis     string   `json:"technical_analysis"`
	ExperienceAnalysis    string   `json:"experience_analysis"`
	CulturalFitAnalysis   string   `json:"cultural_fit_analysis,omitempty"`
	LeadershipAnalysis    string   `json:"leadership_analysis,omitempty"`
	ExpertiseAreas        []string `json:"expertise_areas,omitempty"`
	KnowledgeGaps         []string `json:"knowledge_gaps,omitempty"`
}

// StrengthItem is a single evidenced strength.
type StrengthItem struct {
	Strength string `json:"strength"`
	Evidence string `json:"evidence"`
	Impact   string `json:"impact"`
}

// WeaknessItem is a single evidenced weakness.
type WeaknessItem struct {
	Weakness              string `json:"weakness"`
	Evidence              string `json:"evidence"`
	ImprovementSuggestion string `json:"improvement_suggestion"`
}

// StrengthsWeaknesses groups strengths, weaknesses and flags.
type StrengthsWeaknesses struct {
	Strengths       []StrengthItem `json:"strengths"`
	Weaknesses      []WeaknessItem `json:"weaknesses"`
	RedFlags        []string       `json:"red_flags,omitempty"`
	Differentiators []string       `json:"differentiators,omitempty"`
}

// Recommendations is the hiring recommendation section.
type Recommendations struct {
	Recommendation     string   `json:"recommendation"`
	Rationale          string   `json:"rationale"`
	SuggestedRoleLevel string   `json:"suggested_role_level,omitempty"`
	CompensationNotes  string   `json:"compensation_notes,omitempty"`
	OnboardingFocus    []string `json:"onboarding_focus,omitempty"`
	ProbationAreas     []string `json:"probation_areas,omitempty"`
}

// NextStep is one action in the hiring process.
type NextStep struct {
	Step        string `json:"step"`
	Timeline    string `json:"timeline"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// OverallAssessment summarises the candidate using metrics and analysis.
type OverallAssessment struct {
	OverallScore     float64  `json:"overall_score"`
	PerformanceLevel string   `json:"performance_level"`
	KeyTakeaways     []string `json:"key_takeaways"`
	RiskAssessment   string   `json:"risk_assessment"`
	SuccessPotential string   `json:"success_potential"`
}

// InterviewMetrics are the quantitative statistics of an interview. When Error is set the
// metrics could not be computed and only the error marker is serialised.
type InterviewMetrics struct {
	AverageRating      float64 `json:"average_rating"`
	MaxRating          float64 `json:"max_rating"`
	MinRating          float64 `json:"min_rating"`
	ConsistencyScore   float64 `json:"consistency_score"`
	TotalQuestions     int     `json:"total_questions"`
	TotalAnswers       int     `json:"total_answers"`
	ResponseRate       float64 `json:"response_rate"`
	ExcellentResponses int     `json:"excellent_responses"`
	GoodResponses      int     `json:"good_responses"`
	PoorResponses      int     `json:"poor_responses"`
	DurationMinutes    int64   `json:"duration_minutes"`
	QuestionsPerMinute float64 `json:"questions_per_minute"`
	Error              string  `json:"-"`
}

// Available reports whether the metrics were computed.
func (m InterviewMetrics) Available() bool {
	return m.Error == ""
}

// MarshalJSON emits {"error": ...} for unavailable metrics.
func (m InterviewMetrics) MarshalJSON() ([]byte, error) {
	if !m.Available() {
		return json.Marshal(map[string]string{"error": m.Error})
	}
	type plain InterviewMetrics
	return json.Marshal(plain(m))
}

// QAAnalysisEntry is the per-question breakdown of a report.
type QAAnalysisEntry struct {
	QuestionNumber int      `json:"question_number"`
	Question       string   `json:"question"`
	Answer         string   `json:"answer"`
	Rating         float64  `json:"rating"`
	RatingCategory string   `json:"rating_category"`
	KeyInsights    []string `json:"key_insights"`
}

// InterviewReport is assembled per request and never persisted. The whole-report fallback
// carries only metadata, executive summary, overall assessment, metrics and recommendations.
type InterviewReport struct {
	Metadata            ReportMetadata       `json:"report_metadata"`
	ExecutiveSummary    ExecutiveSummary     `json:"executive_summary"`
	OverallAssessment   OverallAssessment    `json:"overall_assessment"`
	Metrics             InterviewMetrics     `json:"metrics"`
	DetailedAnalysis    *DetailedAnalysis    `json:"detailed_analysis,omitempty"`
	StrengthsWeaknesses *StrengthsWeaknesses `json:"strengths_weaknesses,omitempty"`
	Recommendations     Recommendations      `json:"recommendations"`
	NextSteps           []NextStep           `json:"next_steps,omitempty"`
	QAAnalysis          []QAAnalysisEntry    `json:"qa_analysis,omitempty"`
}

// ReportResponse wraps a report with a generation timestamp.
type ReportResponse struct {
	Report    InterviewReport `json:"report"`
	Timestamp string          `json:"timestamp"`
}
