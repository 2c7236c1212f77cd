package service

import (
	"github.com/noah-isme/smart-interviewer-api/internal/dto"
)

const (
	excellentRatingThreshold = 8
	goodRatingThreshold      = 6
	averageRatingThreshold   = 4
	msPerMinute              = 60000
)

// NoRatingsMessage is the marker reported in place of metrics when no rating was supplied.
const NoRatingsMessage = "No ratings available"

// ComputeMetrics derives interview statistics from aligned questions, answers and ratings.
// durationMs is the interview length in milliseconds.
func ComputeMetrics(questions, answers int, ratings []float64, durationMs int64) dto.InterviewMetrics {
	if len(ratings) == 0 {
		return dto.InterviewMetrics{Error: NoRatingsMessage}
	}

	sum, maxRating, minRating := 0.0, ratings[0], ratings[0]
	for _, rating := range ratings {
		sum += rating
		if rating > maxRating {
			maxRating = rating
		}
		if rating < minRating {
			minRating = rating
		}
	}
	n := float64(len(ratings))
	avg := sum / n

	variance := 0.0
	for _, rating := range ratings {
		delta := rating - avg
		variance += delta * delta
	}
	variance /= n

	consistency := 10 - variance
	if variance > 9 {
		consistency = 1
	}

	metrics := dto.InterviewMetrics{
		AverageRating:    round2(avg),
		MaxRating:        maxRating,
		MinRating:        minRating,
		ConsistencyScore: round2(consistency),
		TotalQuestions:   questions,
		TotalAnswers:     answers,
	}

	for _, rating := range ratings {
		switch {
		case rating >= excellentRatingThreshold:
			metrics.ExcellentResponses++
		case rating >= goodRatingThreshold:
			metrics.GoodResponses++
		default:
			metrics.PoorResponses++
		}
	}

	if questions > 0 {
		metrics.ResponseRate = round2(float64(answers) / float64(questions))
	}

	if durationMs > 0 {
		metrics.DurationMinutes = durationMs / msPerMinute
	}
	if metrics.DurationMinutes > 0 {
		metrics.QuestionsPerMinute = round2(float64(questions) / float64(metrics.DurationMinutes))
	}

	return metrics
}

func averageRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0.0
	for _, rating := range ratings {
		sum += rating
	}
	return sum / float64(len(ratings))
}

func ratingCategory(rating float64) string {
	switch {
	case rating >= excellentRatingThreshold:
		return "Excellent"
	case rating >= goodRatingThreshold:
		return "Good"
	case rating >= averageRatingThreshold:
		return "Average"
	default:
		return "Poor"
	}
}
