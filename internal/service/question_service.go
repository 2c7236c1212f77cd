package service

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/smart-interviewer-api/internal/dto"
	"github.com/noah-isme/smart-interviewer-api/pkg/ai"
)

const (
	defaultQuestionType  = "general"
	defaultQuestionCount = 5
	followUpHistoryLimit = 3
)

//go:embed fallback_catalog.yaml
var fallbackCatalogYAML []byte

type fallbackCatalog struct {
	Questions        map[string][]dto.Question `yaml:"questions"`
	FollowUps        []dto.FollowUpQuestion    `yaml:"followups"`
	TypeInstructions map[string]string         `yaml:"type_instructions"`
}

var fallbacks = mustLoadFallbackCatalog(fallbackCatalogYAML)

func mustLoadFallbackCatalog(data []byte) fallbackCatalog {
	var catalog fallbackCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		panic(fmt.Errorf("parse fallback catalog: %w", err))
	}
	if len(catalog.Questions[defaultQuestionType]) == 0 || len(catalog.FollowUps) == 0 {
		panic("fallback catalog must define general questions and follow-ups")
	}
	return catalog
}

var questionSchema = ai.Schema{
	"type": "object",
	"properties": map[string]interface{}{
		"questions": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"question":   map[string]interface{}{"type": "string"},
					"category":   map[string]interface{}{"type": "string"},
					"difficulty": map[string]interface{}{"type": "string", "enum": []string{"easy", "medium", "hard"}},
					"purpose":    map[string]interface{}{"type": "string"},
					"follow_up_suggestions": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
				},
				"required": []string{"question", "category", "difficulty", "purpose"},
			},
		},
	},
	"required": []string{"questions"},
}

var followUpSchema = ai.Schema{
	"type": "object",
	"properties": map[string]interface{}{
		"followup_questions": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"question":  map[string]interface{}{"type": "string"},
					"relevance": map[string]interface{}{"type": "string"},
					"purpose":   map[string]interface{}{"type": "string"},
				},
				"required": []string{"question", "relevance", "purpose"},
			},
		},
	},
	"required": []string{"followup_questions"},
}

// QuestionService generates interview questions and follow-ups. It never fails: any AI error
// yields the static fallback catalog.
type QuestionService interface {
	SuggestQuestions(ctx context.Context, req dto.SuggestQuestionsRequest) []dto.Question
	SuggestFollowUps(ctx context.Context, req dto.SuggestFollowUpRequest) []dto.FollowUpQuestion
}

type questionService struct {
	ai        AIClient
	sanitizer textSanitizer
	logger    zerolog.Logger
}

// NewQuestionService constructs a question generator.
func NewQuestionService(client AIClient, logger zerolog.Logger) QuestionService {
	return &questionService{
		ai:        client,
		sanitizer: newTextSanitizer(),
		logger:    logger.With().Str("component", "question_service").Logger(),
	}
}

func (s *questionService) SuggestQuestions(ctx context.Context, req dto.SuggestQuestionsRequest) []dto.Question {
	questionType := normalizeQuestionType(req.Type)
	count := req.Count
	if count <= 0 {
		count = defaultQuestionCount
	}

	ctx, span := startSpan(ctx, "question.suggest")
	defer span.End()
	span.SetAttributes(attribute.String("interview.type", questionType), attribute.Int("interview.count", count))

	prompt := s.buildQuestionPrompt(questionPromptInput{
		Context:           s.sanitizer.Clean(req.Context),
		Type:              questionType,
		Count:             count,
		PreviousQuestions: s.sanitizer.CleanAll(req.PreviousQuestions),
		Candidate:         s.cleanCandidate(req.CandidateInfo),
	})

	obj, err := s.ai.GenerateStructured(ctx, prompt, questionSchema)
	if err != nil {
		recordFallback(ctx, s.logger, "suggest_questions", err)
		return fallbackQuestions(questionType, count)
	}

	questions := parseQuestions(obj, count)
	if len(questions) == 0 {
		recordFallback(ctx, s.logger, "suggest_questions", nil)
		return fallbackQuestions(questionType, count)
	}
	return questions
}

func (s *questionService) SuggestFollowUps(ctx context.Context, req dto.SuggestFollowUpRequest) []dto.FollowUpQuestion {
	ctx, span := startSpan(ctx, "question.follow_up")
	defer span.End()

	history := req.QAHistory
	if len(history) > followUpHistoryLimit {
		history = history[len(history)-followUpHistoryLimit:]
	}
	cleaned := make([]dto.QAPair, 0, len(history))
	for _, pair := range history {
		cleaned = append(cleaned, dto.QAPair{Question: s.sanitizer.Clean(pair.Question), Answer: s.sanitizer.Clean(pair.Answer)})
	}

	prompt := buildFollowUpPrompt(s.sanitizer.Clean(req.Question), s.sanitizer.Clean(req.Answer), cleaned)

	obj, err := s.ai.GenerateStructured(ctx, prompt, followUpSchema)
	if err != nil {
		recordFallback(ctx, s.logger, "suggest_followup", err)
		return fallbackFollowUps()
	}

	followUps := parseFollowUps(obj)
	if len(followUps) == 0 {
		recordFallback(ctx, s.logger, "suggest_followup", nil)
		return fallbackFollowUps()
	}
	return followUps
}

func (s *questionService) cleanCandidate(info dto.CandidateInfo) dto.CandidateInfo {
	return dto.CandidateInfo{
		Name:            s.sanitizer.Clean(info.Name),
		Role:            s.sanitizer.Clean(info.Role),
		ExperienceLevel: s.sanitizer.Clean(info.ExperienceLevel),
		Skills:          s.sanitizer.CleanAll(info.Skills),
	}
}

func normalizeQuestionType(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	if normalized == "" {
		return defaultQuestionType
	}
	return normalized
}

type questionPromptInput struct {
	Context           string
	Type              string
	Count             int
	PreviousQuestions []string
	Candidate         dto.CandidateInfo
	// HistoryLimit caps PreviousQuestions when positive; zero embeds all of them.
	HistoryLimit int
}

func (s *questionService) buildQuestionPrompt(in questionPromptInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert interviewer conducting a %s interview.\n", in.Type)
	fmt.Fprintf(&b, "Generate %d high-quality interview questions.\n", in.Count)

	if in.Context != "" {
		fmt.Fprintf(&b, "\nInterview Context: %s\n", in.Context)
	}

	var details []string
	if in.Candidate.Role != "" {
		details = append(details, "Role: "+in.Candidate.Role)
	}
	if in.Candidate.ExperienceLevel != "" {
		details = append(details, "Experience Level: "+in.Candidate.ExperienceLevel)
	}
	if len(in.Candidate.Skills) > 0 {
		details = append(details, "Skills: "+strings.Join(in.Candidate.Skills, ", "))
	}
	if len(details) > 0 {
		b.WriteString("\nCandidate Information:\n")
		b.WriteString(strings.Join(details, "\n"))
		b.WriteString("\n")
	}

	previous := in.PreviousQuestions
	if in.HistoryLimit > 0 && len(previous) > in.HistoryLimit {
		previous = previous[len(previous)-in.HistoryLimit:]
	}
	if len(previous) > 0 {
		b.WriteString("\nPrevious questions asked (avoid repetition):\n")
		for i, question := range previous {
			fmt.Fprintf(&b, "%d. %s\n", i+1, question)
		}
	}

	instruction, ok := fallbacks.TypeInstructions[in.Type]
	if !ok {
		instruction = fallbacks.TypeInstructions[defaultQuestionType]
	}
	b.WriteString("\n")
	b.WriteString(instruction)
	b.WriteString(`

For each question, provide:
1. The question text
2. Category (e.g., "Technical", "Behavioral", "Leadership", "Problem-solving")
3. Difficulty level (easy, medium, hard)
4. Purpose of the question
5. 2-3 follow-up question suggestions

Make questions specific, relevant, and designed to reveal the candidate's true capabilities.
Avoid yes/no questions and generic questions.`)

	return b.String()
}

func buildFollowUpPrompt(question, answer string, history []dto.QAPair) string {
	var b strings.Builder
	b.WriteString("You are an expert interviewer. Based on the following question and answer,\n")
	b.WriteString("generate 3-5 relevant follow-up questions to dig deeper into the candidate's response.\n\n")
	fmt.Fprintf(&b, "Original Question: %s\n", question)
	fmt.Fprintf(&b, "Candidate's Answer: %s\n\n", answer)
	b.WriteString("Previous Q&A History:\n")
	for i, pair := range history {
		fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n", i+1, pair.Question, pair.Answer)
	}
	b.WriteString(`
Generate follow-up questions that:
1. Probe deeper into the candidate's experience
2. Ask for specific examples or details
3. Explore challenges and how they were overcome
4. Test understanding and critical thinking
5. Assess cultural fit and values alignment

For each follow-up question, provide:
- The question text
- Why this follow-up is relevant
- What insight it aims to reveal`)
	return b.String()
}

func parseQuestions(obj map[string]interface{}, count int) []dto.Question {
	items, ok := objectSliceField(obj, "questions")
	if !ok {
		return nil
	}

	questions := make([]dto.Question, 0, len(items))
	for _, item := range items {
		text := stringOr(item, "question", "")
		if text == "" {
			continue
		}
		questions = append(questions, dto.Question{
			Question:            text,
			Category:            stringOr(item, "category", "General"),
			Difficulty:          normalizeDifficulty(stringOr(item, "difficulty", "")),
			Purpose:             stringOr(item, "purpose", ""),
			FollowUpSuggestions: stringSliceOr(item, "follow_up_suggestions", []string{}),
		})
		if count > 0 && len(questions) == count {
			break
		}
	}
	return questions
}

func parseFollowUps(obj map[string]interface{}) []dto.FollowUpQuestion {
	items, ok := objectSliceField(obj, "followup_questions")
	if !ok {
		return nil
	}

	followUps := make([]dto.FollowUpQuestion, 0, len(items))
	for _, item := range items {
		text := stringOr(item, "question", "")
		if text == "" {
			continue
		}
		followUps = append(followUps, dto.FollowUpQuestion{
			Question:  text,
			Relevance: stringOr(item, "relevance", ""),
			Purpose:   stringOr(item, "purpose", ""),
		})
	}
	return followUps
}

func normalizeDifficulty(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if oneOf(value, "easy", "medium", "hard") {
		return value
	}
	return "medium"
}

// fallbackQuestions returns up to count catalog entries for the type, or the general catalog
// for unknown types. Copies are returned so callers cannot mutate the catalog.
func fallbackQuestions(questionType string, count int) []dto.Question {
	catalog, ok := fallbacks.Questions[questionType]
	if !ok {
		catalog = fallbacks.Questions[defaultQuestionType]
	}
	if count < 0 {
		count = 0
	}
	if count > len(catalog) {
		count = len(catalog)
	}

	questions := make([]dto.Question, 0, count)
	for _, question := range catalog[:count] {
		question.FollowUpSuggestions = append([]string(nil), question.FollowUpSuggestions...)
		questions = append(questions, question)
	}
	return questions
}

func fallbackFollowUps() []dto.FollowUpQuestion {
	return append([]dto.FollowUpQuestion(nil), fallbacks.FollowUps...)
}
