package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/smart-interviewer-api/internal/dto"
	"github.com/noah-isme/smart-interviewer-api/internal/service"
	"github.com/noah-isme/smart-interviewer-api/internal/utils"
)

// InterviewHandler exposes question, answer and report generation. Generation never fails
// once the payload is valid; degraded results are returned with status 200.
type InterviewHandler struct {
	questions service.QuestionService
	answers   service.AnswerService
	reports   service.ReportService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewInterviewHandler constructs an interview handler.
func NewInterviewHandler(questions service.QuestionService, answers service.AnswerService, reports service.ReportService, validator *validator.Validate, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		questions: questions,
		answers:   answers,
		reports:   reports,
		validator: validator,
		logger:    logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register wires generation routes below /api.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("/suggest-questions", h.suggestQuestions)
	router.Post("/suggest-followup", h.suggestFollowUp)
	router.Post("/analyze-answer", h.analyzeAnswer)
	router.Post("/generate-feedback", h.generateFeedback)
	router.Post("/generate-report", h.generateReport)
}

func (h *InterviewHandler) suggestQuestions(c *fiber.Ctx) error {
	var payload dto.SuggestQuestionsRequest
	if message, ok := bindJSON(c, h.validator, &payload); !ok {
		return utils.SendError(c, fiber.StatusBadRequest, message)
	}

	questions := h.questions.SuggestQuestions(c.UserContext(), payload)
	return utils.SendSuccess(c, "questions generated", dto.QuestionsResponse{
		Questions: questions,
		Timestamp: timestamp(),
	})
}

func (h *InterviewHandler) suggestFollowUp(c *fiber.Ctx) error {
	var payload dto.SuggestFollowUpRequest
	if message, ok := bindJSON(c, h.validator, &payload); !ok {
		return utils.SendError(c, fiber.StatusBadRequest, message)
	}

	followUps := h.questions.SuggestFollowUps(c.UserContext(), payload)
	return utils.SendSuccess(c, "follow-up questions generated", dto.FollowUpResponse{
		FollowUpQuestions: followUps,
		Timestamp:         timestamp(),
	})
}

func (h *InterviewHandler) analyzeAnswer(c *fiber.Ctx) error {
	var payload dto.AnalyzeAnswerRequest
	if message, ok := bindJSON(c, h.validator, &payload); !ok {
		return utils.SendError(c, fiber.StatusBadRequest, message)
	}

	analysis := h.answers.AnalyzeAnswer(c.UserContext(), payload)
	return utils.SendSuccess(c, "answer analyzed", dto.AnalysisResponse{
		Analysis:  analysis,
		Timestamp: timestamp(),
	})
}

func (h *InterviewHandler) generateFeedback(c *fiber.Ctx) error {
	var payload dto.GenerateFeedbackRequest
	if message, ok := bindJSON(c, h.validator, &payload); !ok {
		return utils.SendError(c, fiber.StatusBadRequest, message)
	}

	feedback := h.answers.GenerateFeedback(c.UserContext(), payload.Analysis)
	return utils.SendSuccess(c, "feedback generated", dto.FeedbackResponse{
		Feedback:  feedback,
		Timestamp: timestamp(),
	})
}

func (h *InterviewHandler) generateReport(c *fiber.Ctx) error {
	var payload dto.GenerateReportRequest
	if message, ok := bindJSON(c, h.validator, &payload); !ok {
		return utils.SendError(c, fiber.StatusBadRequest, message)
	}

	report := h.reports.GenerateReport(c.UserContext(), payload.InterviewData)
	requestLogger(h.logger, c).Info().
		Str("report_id", report.Metadata.ReportID).
		Str("status", report.Metadata.Status).
		Int("questions", report.Metadata.TotalQuestions).
		Msg("interview report generated")

	return utils.SendSuccess(c, "report generated", dto.ReportResponse{
		Report:    report,
		Timestamp: timestamp(),
	})
}
