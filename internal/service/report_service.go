package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/smart-interviewer-api/internal/dto"
	"github.com/noah-isme/smart-interviewer-api/pkg/ai"
)

const (
	reportStatusFallback  = "fallback_report"
	manualReviewRequired  = "Manual review required"
	promptAnswerPreview   = 3
	promptAnswerMaxRunes  = 200
	maxKeyInsightsPerItem = 3
)

var insightKeywords = []struct {
	keyword string
	insight string
}{
	{"experience", "Mentioned relevant experience"},
	{"challenge", "Discussed challenges"},
	{"team", "Referenced teamwork"},
	{"learn", "Showed learning mindset"},
}

var stringArray = map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}}

var (
	executiveSummarySchema = ai.Schema{
		"type": "object",
		"properties": map[string]interface{}{
			"summary":        map[string]interface{}{"type": "string"},
			"key_highlights": stringArray,
			"concerns":       stringArray,
			"recommendation": map[string]interface{}{"type": "string"},
		},
		"required": []string{"summary", "key_highlights", "concerns", "recommendation"},
	}

	detailedAnalysisSchema = ai.Schema{
		"type": "object",
		"properties": map[string]interface{}{
			"communication_analysis": map[string]interface{}{"type": "string"},
			"technical_analysis":     map[string]interface{}{"type": "string"},
			"experience_analysis":    map[string]interface{}{"type": "string"},
			"cultural_fit_analysis":  map[string]interface{}{"type": "string"},
			"leadership_analysis":    map[string]interface{}{"type": "string"},
			"expertise_areas":        stringArray,
			"knowledge_gaps":         stringArray,
		},
		"required": []string{"communication_analysis", "technical_analysis", "experience_analysis"},
	}

	strengthsWeaknessesSchema = ai.Schema{
		"type": "object",
		"properties": map[string]interface{}{
			"strengths": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"strength": map[string]interface{}{"type": "string"},
						"evidence": map[string]interface{}{"type": "string"},
						"impact":   map[string]interface{}{"type": "string"},
					},
				},
			},
			"weaknesses": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"weakness":               map[string]interface{}{"type": "string"},
						"evidence":               map[string]interface{}{"type": "string"},
						"improvement_suggestion": map[string]interface{}{"type": "string"},
					},
				},
			},
			"red_flags":       stringArray,
			"differentiators": stringArray,
		},
		"required": []string{"strengths", "weaknesses"},
	}

	recommendationsSchema = ai.Schema{
		"type": "object",
		"properties": map[string]interface{}{
			"recommendation": map[string]interface{}{
				"type": "string",
				"enum": []string{"Strong Hire", "Hire", "No Hire", "Strong No Hire"},
			},
			"rationale":            map[string]interface{}{"type": "string"},
			"suggested_role_level": map[string]interface{}{"type": "string"},
			"compensation_notes":   map[string]interface{}{"type": "string"},
			"onboarding_focus":     stringArray,
			"probation_areas":      stringArray,
		},
		"required": []string{"recommendation", "rationale"},
	}

	nextStepsSchema = ai.Schema{
		"type": "object",
		"properties": map[string]interface{}{
			"next_steps": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"step":        map[string]interface{}{"type": "string"},
						"timeline":    map[string]interface{}{"type": "string"},
						"priority":    map[string]interface{}{"type": "string", "enum": []string{"High", "Medium", "Low"}},
						"description": map[string]interface{}{"type": "string"},
					},
				},
			},
		},
		"required": []string{"next_steps"},
	}

	overallAssessmentSchema = ai.Schema{
		"type": "object",
		"properties": map[string]interface{}{
			"overall_score":     map[string]interface{}{"type": "number", "minimum": 1, "maximum": 10},
			"performance_level": map[string]interface{}{"type": "string"},
			"key_takeaways":     stringArray,
			"risk_assessment":   map[string]interface{}{"type": "string"},
			"success_potential": map[string]interface{}{"type": "string"},
		},
		"required": []string{"overall_score", "performance_level", "key_takeaways"},
	}
)

// ReportService assembles interview reports. Each AI-backed section degrades independently;
// if assembly itself fails the whole-report fallback is returned.
type ReportService interface {
	GenerateReport(ctx context.Context, data dto.InterviewData) dto.InterviewReport
}

type reportService struct {
	ai        AIClient
	sanitizer textSanitizer
	logger    zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// NewReportService constructs a report assembler.
func NewReportService(client AIClient, logger zerolog.Logger) ReportService {
	return &reportService{
		ai:        client,
		sanitizer: newTextSanitizer(),
		logger:    logger.With().Str("component", "report_service").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// reportInput carries the sanitized prompt text alongside the caller's original text;
// deterministic sections read the originals.
type reportInput struct {
	Questions    []string
	Answers      []string
	RawQuestions []string
	RawAnswers   []string
	Ratings      []float64
	DurationMs int64
	Candidate  dto.CandidateInfo
	Average    float64
}

func (s *reportService) GenerateReport(ctx context.Context, data dto.InterviewData) (report dto.InterviewReport) {
	in := s.prepare(data)

	ctx, span := startSpan(ctx, "report.generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("report.questions", len(in.Questions)),
		attribute.Int("report.answers", len(in.Answers)),
		attribute.Int("report.ratings", len(in.Ratings)),
	)

	defer func() {
		if r := recover(); r != nil {
			recordFallback(ctx, s.logger, "generate_report", fmt.Errorf("report assembly panicked: %v", r))
			report = s.fallbackReport(in)
		}
	}()

	report, err := s.assemble(ctx, in)
	if err != nil {
		recordFallback(ctx, s.logger, "generate_report", err)
		return s.fallbackReport(in)
	}
	return report
}

func (s *reportService) prepare(data dto.InterviewData) reportInput {
	in := reportInput{
		Questions:    make([]string, 0, len(data.Questions)),
		Answers:      make([]string, 0, len(data.Answers)),
		RawQuestions: make([]string, 0, len(data.Questions)),
		RawAnswers:   make([]string, 0, len(data.Answers)),
		Ratings:      make([]float64, 0, len(data.Ratings)),
		DurationMs:   max(data.Duration, 0),
		Candidate: dto.CandidateInfo{
			Name:            s.sanitizer.Clean(data.CandidateInfo.Name),
			Role:            s.sanitizer.Clean(data.CandidateInfo.Role),
			ExperienceLevel: s.sanitizer.Clean(data.CandidateInfo.ExperienceLevel),
			Skills:          s.sanitizer.CleanAll(data.CandidateInfo.Skills),
		},
	}
	for _, rating := range data.Ratings {
		in.Ratings = append(in.Ratings, clampRating(rating))
	}
	for _, question := range data.Questions {
		in.RawQuestions = append(in.RawQuestions, question.String())
		in.Questions = append(in.Questions, s.sanitizer.Clean(question.String()))
	}
	for _, answer := range data.Answers {
		in.RawAnswers = append(in.RawAnswers, answer.String())
		in.Answers = append(in.Answers, s.sanitizer.Clean(answer.String()))
	}
	in.Average = averageRating(in.Ratings)
	return in
}

// assemble runs the five independent sections concurrently, then the overall assessment,
// which depends on the metrics and the detailed analysis.
func (s *reportService) assemble(ctx context.Context, in reportInput) (dto.InterviewReport, error) {
	var (
		summary         dto.ExecutiveSummary
		detailed        dto.DetailedAnalysis
		strengths       dto.StrengthsWeaknesses
		recommendations dto.Recommendations
		nextSteps       []dto.NextStep
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guardSection("executive_summary", func() { summary = s.executiveSummary(gctx, in) }))
	g.Go(guardSection("detailed_analysis", func() { detailed = s.detailedAnalysis(gctx, in) }))
	g.Go(guardSection("strengths_weaknesses", func() { strengths = s.strengthsWeaknesses(gctx, in) }))
	g.Go(guardSection("recommendations", func() { recommendations = s.recommendations(gctx, in) }))
	g.Go(guardSection("next_steps", func() { nextSteps = s.nextSteps(gctx, in) }))

	metrics := ComputeMetrics(len(in.Questions), len(in.Answers), in.Ratings, in.DurationMs)

	if err := g.Wait(); err != nil {
		return dto.InterviewReport{}, err
	}

	overall := s.overallAssessment(ctx, metrics, detailed)

	return dto.InterviewReport{
		Metadata:            s.metadata(in),
		ExecutiveSummary:    summary,
		OverallAssessment:   overall,
		Metrics:             metrics,
		DetailedAnalysis:    &detailed,
		StrengthsWeaknesses: &strengths,
		Recommendations:     recommendations,
		NextSteps:           nextSteps,
		QAAnalysis:          buildQAAnalysis(in.RawQuestions, in.RawAnswers, in.Ratings),
	}, nil
}

func guardSection(name string, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s section panicked: %v", name, r)
			}
		}()
		fn()
		return nil
	}
}

func (s *reportService) metadata(in reportInput) dto.ReportMetadata {
	return dto.ReportMetadata{
		ReportID:          s.newID(),
		GeneratedAt:       s.now(),
		InterviewDuration: in.DurationMs,
		TotalQuestions:    len(in.Questions),
		TotalAnswers:      len(in.Answers),
		AIProvider:        s.ai.CurrentProvider(),
	}
}

func (s *reportService) executiveSummary(ctx context.Context, in reportInput) dto.ExecutiveSummary {
	fallback := dto.ExecutiveSummary{
		Summary:        fmt.Sprintf("Interview completed with average rating of %.1f/10. Manual review recommended.", in.Average),
		KeyHighlights:  []string{"Interview conducted"},
		Concerns:       []string{"AI analysis unavailable"},
		Recommendation: manualReviewRequired,
	}

	previewCount := len(in.Answers)
	if previewCount > promptAnswerPreview {
		previewCount = promptAnswerPreview
	}

	prompt := fmt.Sprintf(`Generate an executive summary for an interview with the following data:

Total Questions: %d
Total Answers: %d
Average Rating: %.1f/10
Interview Duration: %d minutes

Questions Asked:
%s

Key Answers:
%s

Provide a concise executive summary (2-3 paragraphs) covering:
1. Overall performance assessment
2. Key strengths demonstrated
3. Areas of concern
4. Recommendation for next steps`,
		len(in.Questions), len(in.Answers), in.Average, in.DurationMs/msPerMinute,
		formatQuestionList(in.Questions), formatAnswerPreview(in.Answers[:previewCount]))

	obj, err := s.ai.GenerateStructured(ctx, prompt, executiveSummarySchema)
	if err != nil {
		recordFallback(ctx, s.logger, "report_executive_summary", err)
		return fallback
	}

	return dto.ExecutiveSummary{
		Summary:        stringOr(obj, "summary", fallback.Summary),
		KeyHighlights:  stringSliceOr(obj, "key_highlights", []string{}),
		Concerns:       stringSliceOr(obj, "concerns", []string{}),
		Recommendation: stringOr(obj, "recommendation", fallback.Recommendation),
	}
}

func (s *reportService) detailedAnalysis(ctx context.Context, in reportInput) dto.DetailedAnalysis {
	fallback := dto.DetailedAnalysis{
		CommunicationAnalysis: manualReviewRequired,
		TechnicalAnalysis:     manualReviewRequired,
		ExperienceAnalysis:    manualReviewRequired,
	}

	prompt := fmt.Sprintf(`Provide detailed analysis of interview performance:

Questions and Answers:
%s

Analyze:
1. Communication skills and clarity
2. Technical knowledge and problem-solving
3. Experience relevance and depth
4. Cultural fit indicators
5. Leadership and teamwork evidence
6. Areas of expertise demonstrated
7. Knowledge gaps identified`, formatQAPairs(in.Questions, in.Answers, in.Ratings))

	obj, err := s.ai.GenerateStructured(ctx, prompt, detailedAnalysisSchema)
	if err != nil {
		recordFallback(ctx, s.logger, "report_detailed_analysis", err)
		return fallback
	}

	return dto.DetailedAnalysis{
		CommunicationAnalysis: stringOr(obj, "communication_analysis", manualReviewRequired),
		TechnicalAnalysis:     stringOr(obj, "technical_analysis", manualReviewRequired),
		ExperienceAnalysis:    stringOr(obj, "experience_analysis", manualReviewRequired),
		CulturalFitAnalysis:   stringOr(obj, "cultural_fit_analysis", ""),
		LeadershipAnalysis:    stringOr(obj, "leadership_analysis", ""),
		ExpertiseAreas:        stringSliceOr(obj, "expertise_areas", nil),
		KnowledgeGaps:         stringSliceOr(obj, "knowledge_gaps", nil),
	}
}

func (s *reportService) strengthsWeaknesses(ctx context.Context, in reportInput) dto.StrengthsWeaknesses {
	fallback := dto.StrengthsWeaknesses{
		Strengths: []dto.StrengthItem{{
			Strength: "Completed interview",
			Evidence: "Participated in all questions",
			Impact:   "Showed engagement",
		}},
		Weaknesses: []dto.WeaknessItem{{
			Weakness:              "Analysis pending",
			Evidence:              "AI analysis unavailable",
			ImprovementSuggestion: manualReviewRequired,
		}},
	}

	prompt := fmt.Sprintf(`Analyze the candidate's strengths and weaknesses based on this interview:

%s

Identify:
1. Top 3-5 strengths with specific evidence
2. Top 3-5 areas for improvement
3. Potential red flags or concerns
4. Unique qualities or differentiators`, formatQAPairs(in.Questions, in.Answers, in.Ratings))

	obj, err := s.ai.GenerateStructured(ctx, prompt, strengthsWeaknessesSchema)
	if err != nil {
		recordFallback(ctx, s.logger, "report_strengths_weaknesses", err)
		return fallback
	}

	result := dto.StrengthsWeaknesses{
		Strengths:       parseStrengthItems(obj["strengths"]),
		Weaknesses:      parseWeaknessItems(obj["weaknesses"]),
		RedFlags:        stringSliceOr(obj, "red_flags", nil),
		Differentiators: stringSliceOr(obj, "differentiators", nil),
	}
	if result.Strengths == nil {
		result.Strengths = fallback.Strengths
	}
	if result.Weaknesses == nil {
		result.Weaknesses = fallback.Weaknesses
	}
	return result
}

func (s *reportService) recommendations(ctx context.Context, in reportInput) dto.Recommendations {
	fallback := fallbackRecommendations(in.Average)

	prompt := fmt.Sprintf(`Provide hiring recommendations based on this interview:

Candidate Info: %s
Average Rating: %.1f/10
Interview Data: %s

Provide:
1. Hiring recommendation (Strong Hire, Hire, No Hire, Strong No Hire)
2. Rationale for the recommendation
3. Suggested role level/position
4. Salary/compensation considerations
5. Onboarding recommendations
6. Areas to focus on during probation`,
		formatCandidate(in.Candidate), in.Average, formatQAPairs(in.Questions, in.Answers, in.Ratings))

	obj, err := s.ai.GenerateStructured(ctx, prompt, recommendationsSchema)
	if err != nil {
		recordFallback(ctx, s.logger, "report_recommendations", err)
		return fallback
	}

	return dto.Recommendations{
		Recommendation:     stringOr(obj, "recommendation", fallback.Recommendation),
		Rationale:          stringOr(obj, "rationale", fallback.Rationale),
		SuggestedRoleLevel: stringOr(obj, "suggested_role_level", ""),
		CompensationNotes:  stringOr(obj, "compensation_notes", ""),
		OnboardingFocus:    stringSliceOr(obj, "onboarding_focus", nil),
		ProbationAreas:     stringSliceOr(obj, "probation_areas", nil),
	}
}

func (s *reportService) nextSteps(ctx context.Context, in reportInput) []dto.NextStep {
	prompt := fmt.Sprintf(`Suggest next steps in the hiring process based on:

Average Rating: %.1f/10
Candidate Info: %s

Provide specific, actionable next steps with timelines.`, in.Average, formatCandidate(in.Candidate))

	obj, err := s.ai.GenerateStructured(ctx, prompt, nextStepsSchema)
	if err != nil {
		recordFallback(ctx, s.logger, "report_next_steps", err)
		return fallbackNextSteps()
	}

	items, _ := objectSliceField(obj, "next_steps")
	steps := make([]dto.NextStep, 0, len(items))
	for _, item := range items {
		step := stringOr(item, "step", "")
		if step == "" {
			continue
		}
		priority := stringOr(item, "priority", "Medium")
		if !oneOf(priority, "High", "Medium", "Low") {
			priority = "Medium"
		}
		steps = append(steps, dto.NextStep{
			Step:        step,
			Timeline:    stringOr(item, "timeline", ""),
			Priority:    priority,
			Description: stringOr(item, "description", ""),
		})
	}

	if len(steps) == 0 {
		recordFallback(ctx, s.logger, "report_next_steps", nil)
		return fallbackNextSteps()
	}
	return steps
}

func (s *reportService) overallAssessment(ctx context.Context, metrics dto.InterviewMetrics, detailed dto.DetailedAnalysis) dto.OverallAssessment {
	fallback := fallbackOverallAssessment(metrics)

	metricsJSON, _ := json.Marshal(metrics)
	detailedJSON, _ := json.Marshal(detailed)

	prompt := fmt.Sprintf(`Provide an overall assessment based on these metrics and analysis:

Metrics: %s
Detailed Analysis: %s

Give a comprehensive overall assessment including:
1. Overall performance score and rationale
2. Key takeaways
3. Risk assessment
4. Potential for success in the role`, metricsJSON, detailedJSON)

	obj, err := s.ai.GenerateStructured(ctx, prompt, overallAssessmentSchema)
	if err != nil {
		recordFallback(ctx, s.logger, "report_overall_assessment", err)
		return fallback
	}

	score := fallback.OverallScore
	if value, ok := numberField(obj, "overall_score"); ok {
		score = clampScore(value)
	}

	return dto.OverallAssessment{
		OverallScore:     score,
		PerformanceLevel: stringOr(obj, "performance_level", fallback.PerformanceLevel),
		KeyTakeaways:     stringSliceOr(obj, "key_takeaways", fallback.KeyTakeaways),
		RiskAssessment:   stringOr(obj, "risk_assessment", fallback.RiskAssessment),
		SuccessPotential: stringOr(obj, "success_potential", fallback.SuccessPotential),
	}
}

func (s *reportService) fallbackReport(in reportInput) dto.InterviewReport {
	metadata := s.metadata(in)
	metadata.Status = reportStatusFallback

	return dto.InterviewReport{
		Metadata: metadata,
		ExecutiveSummary: dto.ExecutiveSummary{
			Summary:        "Interview completed. Please review individual Q&A for detailed assessment.",
			KeyHighlights:  []string{"Interview conducted successfully"},
			Concerns:       []string{},
			Recommendation: manualReviewRequired,
		},
		OverallAssessment: dto.OverallAssessment{
			OverallScore:     5,
			PerformanceLevel: "Needs Review",
			KeyTakeaways:     []string{"Manual analysis required"},
			RiskAssessment:   "Unknown",
			SuccessPotential: "To be determined",
		},
		Metrics: ComputeMetrics(len(in.Questions), len(in.Answers), in.Ratings, in.DurationMs),
		Recommendations: dto.Recommendations{
			Recommendation: "Manual Review Required",
			Rationale:      "AI analysis unavailable",
		},
	}
}

func fallbackRecommendations(avg float64) dto.Recommendations {
	recommendation := "No Hire"
	switch {
	case avg >= 7:
		recommendation = "Hire"
	case avg >= 5:
		recommendation = "Consider"
	}
	return dto.Recommendations{
		Recommendation: recommendation,
		Rationale:      fmt.Sprintf("Based on average rating of %.1f/10", avg),
	}
}

func fallbackNextSteps() []dto.NextStep {
	return []dto.NextStep{
		{
			Step:        "Manual review of interview responses",
			Timeline:    "Within 2 business days",
			Priority:    "High",
			Description: "Review all Q&A responses manually",
		},
		{
			Step:        "Reference checks",
			Timeline:    "Within 1 week",
			Priority:    "Medium",
			Description: "Contact provided references",
		},
	}
}

func fallbackOverallAssessment(metrics dto.InterviewMetrics) dto.OverallAssessment {
	score := 5.0
	if metrics.Available() {
		score = metrics.AverageRating
	}
	return dto.OverallAssessment{
		OverallScore:     score,
		PerformanceLevel: "Needs Review",
		KeyTakeaways:     []string{"Manual analysis required"},
		RiskAssessment:   "Unknown",
		SuccessPotential: "To be determined",
	}
}

func parseStrengthItems(raw interface{}) []dto.StrengthItem {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	parsed := make([]dto.StrengthItem, 0, len(items))
	for _, item := range items {
		switch value := item.(type) {
		case string:
			if strings.TrimSpace(value) != "" {
				parsed = append(parsed, dto.StrengthItem{Strength: strings.TrimSpace(value)})
			}
		case map[string]interface{}:
			if strength := stringOr(value, "strength", ""); strength != "" {
				parsed = append(parsed, dto.StrengthItem{
					Strength: strength,
					Evidence: stringOr(value, "evidence", ""),
					Impact:   stringOr(value, "impact", ""),
				})
			}
		}
	}
	return parsed
}

func parseWeaknessItems(raw interface{}) []dto.WeaknessItem {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	parsed := make([]dto.WeaknessItem, 0, len(items))
	for _, item := range items {
		switch value := item.(type) {
		case string:
			if strings.TrimSpace(value) != "" {
				parsed = append(parsed, dto.WeaknessItem{Weakness: strings.TrimSpace(value)})
			}
		case map[string]interface{}:
			if weakness := stringOr(value, "weakness", ""); weakness != "" {
				parsed = append(parsed, dto.WeaknessItem{
					Weakness:              weakness,
					Evidence:              stringOr(value, "evidence", ""),
					ImprovementSuggestion: stringOr(value, "improvement_suggestion", ""),
				})
			}
		}
	}
	return parsed
}

// buildQAAnalysis walks aligned (question, answer, rating) triples, stopping at the shortest sequence.
func buildQAAnalysis(questions, answers []string, ratings []float64) []dto.QAAnalysisEntry {
	n := min(len(questions), len(answers), len(ratings))
	entries := make([]dto.QAAnalysisEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, dto.QAAnalysisEntry{
			QuestionNumber: i + 1,
			Question:       questions[i],
			Answer:         answers[i],
			Rating:         ratings[i],
			RatingCategory: ratingCategory(ratings[i]),
			KeyInsights:    keyInsights(answers[i]),
		})
	}
	return entries
}

func keyInsights(answer string) []string {
	lower := strings.ToLower(answer)
	insights := make([]string, 0, maxKeyInsightsPerItem)
	for _, candidate := range insightKeywords {
		if len(insights) == maxKeyInsightsPerItem {
			break
		}
		if strings.Contains(lower, candidate.keyword) {
			insights = append(insights, candidate.insight)
		}
	}
	return insights
}

func formatQuestionList(questions []string) string {
	if len(questions) == 0 {
		return "No questions available"
	}
	lines := make([]string, 0, len(questions))
	for i, question := range questions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, question))
	}
	return strings.Join(lines, "\n")
}

func formatAnswerPreview(answers []string) string {
	if len(answers) == 0 {
		return "No answers available"
	}
	lines := make([]string, 0, len(answers))
	for i, answer := range answers {
		lines = append(lines, fmt.Sprintf("%d. %s...", i+1, truncateRunes(answer, promptAnswerMaxRunes)))
	}
	return strings.Join(lines, "\n")
}

func formatQAPairs(questions, answers []string, ratings []float64) string {
	if len(questions) == 0 {
		return "No Q&A data available"
	}
	n := min(len(questions), len(answers), len(ratings))
	blocks := make([]string, 0, n)
	for i := 0; i < n; i++ {
		blocks = append(blocks, fmt.Sprintf("Q%d: %s\nA%d: %s\nRating: %s/10\n", i+1, questions[i], i+1, answers[i], formatScore(ratings[i])))
	}
	return strings.Join(blocks, "\n")
}

func formatCandidate(info dto.CandidateInfo) string {
	if info.IsZero() {
		return "Not provided"
	}
	var parts []string
	if info.Name != "" {
		parts = append(parts, "Name: "+info.Name)
	}
	if info.Role != "" {
		parts = append(parts, "Role: "+info.Role)
	}
	if info.ExperienceLevel != "" {
		parts = append(parts, "Experience Level: "+info.ExperienceLevel)
	}
	if len(info.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(info.Skills, ", "))
	}
	return strings.Join(parts, "; ")
}
