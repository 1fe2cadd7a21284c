package domain

import (
	"fmt"
	"time"
)

// Grade is a score a student received in a course.
type Grade struct {
	ID           int64     `json:"id,omitempty"`
	CourseID     int64     `json:"courseId"`
	StudentID    int64     `json:"studentId"`
	StudentName  string    `json:"studentName,omitempty"`
	EvaluationID int64     `json:"evaluationId,omitempty"`
	Period       string    `json:"period,omitempty"`
	Score        float64   `json:"score"`
	Weight       float64   `json:"weight,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AverageScore returns the weighted mean of grades. Grades without a weight
// count once. The bool is false when there is nothing to average.
func AverageScore(grades []Grade) (float64, bool) {
	var sum, weights float64
	for _, g := range grades {
		w := g.Weight
		if w <= 0 {
			w = 1
		}
		sum += g.Score * w
		weights += w
	}
	if weights == 0 {
		return 0, false
	}
	return sum / weights, true
}

// FormatAverage renders an average with one decimal, or "--" when unknown.
func FormatAverage(avg *float64) string {
	if avg == nil {
		return "--"
	}
	return fmt.Sprintf("%.1f", *avg)
}
