package service

import (
	"math"

	"github.com/noah-isme/sma-result-portal/internal/dto"
	"github.com/noah-isme/sma-result-portal/internal/models"
)

const (
	defaultMaxMarks  = 100
	passMarkFraction = 0.40
)

// gradeBands maps minimum percentage to grade, highest first.
var gradeBands = []struct {
	min   float64
	grade string
}{
	{85, "O"},
	{75, "A+"},
	{65, "A"},
	{55, "B+"},
	{45, "B"},
	{40, "C"},
}

// FailGrade is awarded below the lowest band.
const FailGrade = "F"

// GradeFromPercentage maps an overall percentage to a letter grade.
func GradeFromPercentage(pct float64) string {
	for _, band := range gradeBands {
		if pct >= band.min {
			return band.grade
		}
	}
	return FailGrade
}

// PassThreshold is the minimum total needed to pass a subject out of maxMarks.
func PassThreshold(maxMarks int) int {
	return int(math.Ceil(passMarkFraction * float64(maxMarks)))
}

// SummariseMarks turns subject marks into result rows and an overall summary.
func SummariseMarks(marks []models.SubjectMarks) ([]dto.SubjectResult, dto.SummaryInfo) {
	results := make([]dto.SubjectResult, 0, len(marks))
	var obtained, possible int
	failed := false
	for _, m := range marks {
		maxMarks := m.MaxMarks
		if maxMarks <= 0 {
			maxMarks = defaultMaxMarks
		}
		total := m.InternalMarks + m.ExternalMarks
		status := dto.StatusPass
		if total < PassThreshold(maxMarks) {
			status = dto.StatusFail
			failed = true
		}
		results = append(results, dto.SubjectResult{
			SubjectID:     m.SubjectID,
			SubjectCode:   m.SubjectCode,
			SubjectName:   m.SubjectName,
			InternalMarks: float64(m.InternalMarks),
			ExternalMarks: float64(m.ExternalMarks),
			TotalMarks:    float64(total),
			MaxMarks:      float64(maxMarks),
			Grade:         m.Grade,
			Status:        status,
		})
		obtained += total
		possible += maxMarks
	}

	var pct float64
	if possible > 0 {
		pct = float64(obtained) / float64(possible) * 100
	}
	grade := GradeFromPercentage(pct)
	status := dto.StatusPass
	if failed || grade == FailGrade {
		status = dto.StatusFail
	}
	return results, dto.SummaryInfo{
		TotalObtained: float64(obtained),
		TotalMax:      float64(possible),
		Percentage:    pct,
		Grade:         grade,
		Status:        status,
	}
}
