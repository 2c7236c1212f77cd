package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/smart-interviewer-api/internal/dto"
	"github.com/noah-isme/smart-interviewer-api/pkg/ai"
)

var scoreProperty = map[string]interface{}{"type": "number", "minimum": 1, "maximum": 10}

var analysisSchema = ai.Schema{
	"type": "object",
	"properties": map[string]interface{}{
		"overall_rating": scoreProperty,
		"detailed_scores": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"relevance":       scoreProperty,
				"completeness":    scoreProperty,
				"clarity":         scoreProperty,
				"specificity":     scoreProperty,
				"professionalism": scoreProperty,
			},
		},
		"strengths":        map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"weaknesses":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"suggestions":      map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"key_points":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"sentiment":        map[string]interface{}{"type": "string", "enum": []string{"positive", "neutral", "negative"}},
		"confidence_level": map[string]interface{}{"type": "string", "enum": []string{"high", "medium", "low"}},
	},
	"required": []string{"overall_rating", "detailed_scores", "strengths", "weaknesses", "suggestions"},
}

var fallbackSuggestions = []string{
	"Provide specific examples to support your points",
	"Elaborate on your experience and achievements",
	"Use the STAR method (Situation, Task, Action, Result) for behavioral questions",
}

// AnswerService scores interview answers and writes feedback. It never fails: AI errors
// degrade to length and keyword heuristics.
type AnswerService interface {
	AnalyzeAnswer(ctx context.Context, req dto.AnalyzeAnswerRequest) dto.AnswerAnalysis
	GenerateFeedback(ctx context.Context, analysis dto.AnswerAnalysis) string
}

type answerService struct {
	ai        AIClient
	sanitizer textSanitizer
	logger    zerolog.Logger
}

// NewAnswerService constructs an answer analyzer.
func NewAnswerService(client AIClient, logger zerolog.Logger) AnswerService {
	return &answerService{
		ai:        client,
		sanitizer: newTextSanitizer(),
		logger:    logger.With().Str("component", "answer_service").Logger(),
	}
}

func (s *answerService) AnalyzeAnswer(ctx context.Context, req dto.AnalyzeAnswerRequest) dto.AnswerAnalysis {
	ctx, span := startSpan(ctx, "answer.analyze")
	defer span.End()

	metadata := analysisMetadata(req.Question, req.Answer)
	span.SetAttributes(
		attribute.Int("answer.word_count", metadata.WordCount),
		attribute.String("answer.question_type", metadata.QuestionType),
	)

	fallback := fallbackAnalysis(req.Answer, metadata)

	prompt := buildAnalysisPrompt(s.sanitizer.Clean(req.Question), s.sanitizer.Clean(req.Answer), dto.AnswerContext{
		Role:            s.sanitizer.Clean(req.Context.Role),
		ExperienceLevel: s.sanitizer.Clean(req.Context.ExperienceLevel),
		PreviousAnswers: s.sanitizer.CleanAll(req.Context.PreviousAnswers),
	})

	obj, err := s.ai.GenerateStructured(ctx, prompt, analysisSchema)
	if err != nil {
		recordFallback(ctx, s.logger, "analyze_answer", err)
		return fallback
	}

	return mergeAnalysis(obj, fallback)
}

func (s *answerService) GenerateFeedback(ctx context.Context, analysis dto.AnswerAnalysis) string {
	ctx, span := startSpan(ctx, "answer.feedback")
	defer span.End()

	prompt := fmt.Sprintf(`Based on this interview answer analysis, generate constructive feedback for the candidate:

Overall Rating: %s/10
Strengths: %s
Areas for Improvement: %s
Suggestions: %s

Generate 2-3 paragraphs of constructive feedback that:
1. Acknowledges strengths
2. Provides specific improvement suggestions
3. Encourages the candidate
4. Is professional and helpful

Keep it concise but comprehensive.`,
		formatScore(analysis.OverallRating),
		strings.Join(s.sanitizer.CleanAll(analysis.Strengths), ", "),
		strings.Join(s.sanitizer.CleanAll(analysis.Weaknesses), ", "),
		strings.Join(s.sanitizer.CleanAll(analysis.Suggestions), ", "),
	)

	feedback, err := s.ai.GenerateText(ctx, prompt)
	if err == nil && strings.TrimSpace(feedback) != "" {
		return strings.TrimSpace(feedback)
	}

	recordFallback(ctx, s.logger, "generate_feedback", err)
	return fallbackFeedback(analysis)
}

func analysisMetadata(question, answer string) dto.AnalysisMetadata {
	return dto.AnalysisMetadata{
		WordCount:              wordCount(answer),
		EstimatedSpeechSeconds: estimateSpeechSeconds(answer),
		QuestionType:           classifyQuestion(question),
		Complexity:             assessComplexity(answer),
	}
}

func buildAnalysisPrompt(question, answer string, answerCtx dto.AnswerContext) string {
	var b strings.Builder
	b.WriteString("You are an expert interviewer analyzing a candidate's response.\n")
	b.WriteString("Provide a comprehensive analysis of the following Q&A:\n\n")
	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "Answer: %s\n", answer)

	if answerCtx.Role != "" {
		fmt.Fprintf(&b, "\nRole being interviewed for: %s", answerCtx.Role)
	}
	if answerCtx.ExperienceLevel != "" {
		fmt.Fprintf(&b, "\nExpected experience level: %s", answerCtx.ExperienceLevel)
	}
	if len(answerCtx.PreviousAnswers) > 0 {
		fmt.Fprintf(&b, "\nPrevious answers context: %s", strings.Join(answerCtx.PreviousAnswers, " | "))
	}

	b.WriteString(`

Analyze the answer on the following criteria:

1. RELEVANCE (1-10): How well does the answer address the question?
2. COMPLETENESS (1-10): How thorough and complete is the response?
3. CLARITY (1-10): How clear and well-structured is the communication?
4. SPECIFICITY (1-10): How specific and detailed are the examples provided?
5. PROFESSIONALISM (1-10): How professional and appropriate is the tone?

Provide:
- Overall rating (1-10)
- Detailed scores for each criterion
- Key strengths in the answer
- Areas for improvement
- Specific suggestions for better responses
- Key points the candidate made
- Overall sentiment (positive/neutral/negative)
- Confidence level in the response (high/medium/low)

Be constructive and specific in your feedback. Focus on actionable insights.`)
	return b.String()
}

// fallbackAnalysis scores purely from answer length and indicator keywords.
func fallbackAnalysis(answer string, metadata dto.AnalysisMetadata) dto.AnswerAnalysis {
	words := metadata.WordCount
	lower := strings.ToLower(answer)

	var overall, completeness, clarity float64
	switch {
	case words < 10:
		overall, completeness, clarity = 3, 2, 4
	case words < 30:
		overall, completeness, clarity = 5, 4, 6
	case words < 60:
		overall, completeness, clarity = 7, 7, 7
	default:
		overall, completeness, clarity = 8, 8, 8
	}

	hasExample := containsAny(lower, exampleIndicators)
	hasTechnical := containsAny(lower, technicalIndicators)

	relevance := 5.0
	if hasExample {
		relevance = 7
	}
	specificity := 6.0
	if hasTechnical {
		specificity = 8
	}
	professionalism := 6.0
	if len([]rune(answer)) > 50 {
		professionalism = 8
	}

	strengths := []string{"Attempted to answer"}
	if words > 0 {
		strengths[0] = "Provided a response"
	}
	switch {
	case words >= 20 && words <= 100:
		strengths = append(strengths, "Appropriate length")
	case words > 100:
		strengths = append(strengths, "Good length")
	default:
		strengths = append(strengths, "Could be more detailed")
	}

	weaknesses := []string{"Could provide more specific examples"}
	if hasExample {
		weaknesses[0] = "Good use of examples"
	}
	if words < 30 {
		weaknesses = append(weaknesses, "Could be more detailed")
	} else {
		weaknesses = append(weaknesses, "Good level of detail")
	}

	return dto.AnswerAnalysis{
		OverallRating: overall,
		DetailedScores: dto.DetailedScores{
			Relevance:       relevance,
			Completeness:    completeness,
			Clarity:         clarity,
			Specificity:     specificity,
			Professionalism: professionalism,
		},
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Suggestions:     append([]string(nil), fallbackSuggestions...),
		KeyPoints:       firstWords(answer, 10),
		Sentiment:       sentimentFor(overall),
		ConfidenceLevel: confidenceFor(overall),
		Metadata:        metadata,
	}
}

// mergeAnalysis overlays the model's object on the fallback so that every field is present
// and every score is clamped to [1,10]. Metadata is always the locally computed one.
func mergeAnalysis(obj map[string]interface{}, fallback dto.AnswerAnalysis) dto.AnswerAnalysis {
	analysis := fallback

	if rating, ok := numberField(obj, "overall_rating"); ok {
		analysis.OverallRating = rating
	}
	analysis.OverallRating = clampScore(analysis.OverallRating)

	scores, _ := objectField(obj, "detailed_scores")
	analysis.DetailedScores = dto.DetailedScores{
		Relevance:       scoreOr(scores, "relevance", fallback.DetailedScores.Relevance),
		Completeness:    scoreOr(scores, "completeness", fallback.DetailedScores.Completeness),
		Clarity:         scoreOr(scores, "clarity", fallback.DetailedScores.Clarity),
		Specificity:     scoreOr(scores, "specificity", fallback.DetailedScores.Specificity),
		Professionalism: scoreOr(scores, "professionalism", fallback.DetailedScores.Professionalism),
	}

	analysis.Strengths = stringSliceOr(obj, "strengths", fallback.Strengths)
	analysis.Weaknesses = stringSliceOr(obj, "weaknesses", fallback.Weaknesses)
	analysis.Suggestions = stringSliceOr(obj, "suggestions", fallback.Suggestions)
	analysis.KeyPoints = stringSliceOr(obj, "key_points", fallback.KeyPoints)

	analysis.Sentiment = strings.ToLower(stringOr(obj, "sentiment", ""))
	if !oneOf(analysis.Sentiment, "positive", "neutral", "negative") {
		analysis.Sentiment = sentimentFor(analysis.OverallRating)
	}
	analysis.ConfidenceLevel = strings.ToLower(stringOr(obj, "confidence_level", ""))
	if !oneOf(analysis.ConfidenceLevel, "high", "medium", "low") {
		analysis.ConfidenceLevel = confidenceFor(analysis.OverallRating)
	}

	return analysis
}

func scoreOr(obj map[string]interface{}, key string, fallback float64) float64 {
	if obj != nil {
		if value, ok := numberField(obj, key); ok {
			return clampScore(value)
		}
	}
	return clampScore(fallback)
}

func sentimentFor(rating float64) string {
	switch {
	case rating >= 7:
		return "positive"
	case rating >= 5:
		return "neutral"
	default:
		return "negative"
	}
}

func confidenceFor(rating float64) string {
	switch {
	case rating >= 8:
		return "high"
	case rating >= 6:
		return "medium"
	default:
		return "low"
	}
}

func fallbackFeedback(analysis dto.AnswerAnalysis) string {
	var b strings.Builder
	switch {
	case analysis.OverallRating >= 8:
		b.WriteString("Excellent response! You demonstrated strong communication skills and provided valuable insights. ")
	case analysis.OverallRating >= 6:
		b.WriteString("Good response with solid points. You communicated your thoughts clearly. ")
	default:
		b.WriteString("Thank you for your response. There's room for improvement in providing more detailed examples. ")
	}

	if len(analysis.Strengths) > 0 {
		fmt.Fprintf(&b, "Your strengths include: %s. ", strings.Join(firstN(analysis.Strengths, 2), ", "))
	}
	if len(analysis.Weaknesses) > 0 {
		fmt.Fprintf(&b, "To improve, consider: %s. ", strings.Join(firstN(analysis.Weaknesses, 2), ", "))
	}

	b.WriteString("Keep practicing and you'll continue to improve your interview skills!")
	return b.String()
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func formatScore(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%.1f", value)
}
