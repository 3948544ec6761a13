package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-result-portal/internal/dto"
	"github.com/noah-isme/sma-result-portal/internal/models"
)

func TestGradeFromPercentage(t *testing.T) {
	cases := map[float64]string{
		100:   "O",
		85:    "O",
		84.99: "A+",
		75:    "A+",
		65:    "A",
		55:    "B+",
		45:    "B",
		40:    "C",
		39.9:  "F",
		0:     "F",
	}
	for pct, want := range cases {
		assert.Equal(t, want, GradeFromPercentage(pct), "pct %v", pct)
	}
}

func TestPassThresholdRoundsUp(t *testing.T) {
	assert.Equal(t, 40, PassThreshold(100))
	assert.Equal(t, 30, PassThreshold(75))
	assert.Equal(t, 21, PassThreshold(51))
}

func TestSummariseMarks(t *testing.T) {
	results, summary := SummariseMarks([]models.SubjectMarks{
		{SubjectID: 1, SubjectCode: "CSE401", SubjectName: "Compilers", MaxMarks: 100, InternalMarks: 20, ExternalMarks: 60, Grade: "A"},
		{SubjectID: 2, SubjectCode: "CSE402", SubjectName: "Networks", MaxMarks: 100, InternalMarks: 15, ExternalMarks: 58},
	})
	require.Len(t, results, 2)
	assert.Equal(t, float64(80), results[0].TotalMarks)
	assert.Equal(t, dto.StatusPass, results[1].Status)
	assert.Equal(t, float64(153), summary.TotalObtained)
	assert.Equal(t, float64(200), summary.TotalMax)
	assert.InDelta(t, 76.5, summary.Percentage, 1e-9)
	assert.Equal(t, "A+", summary.Grade)
	assert.Equal(t, dto.StatusPass, summary.Status)
}

func TestSummariseMarksSingleFailFailsOverall(t *testing.T) {
	results, summary := SummariseMarks([]models.SubjectMarks{
		{SubjectCode: "A", MaxMarks: 100, InternalMarks: 25, ExternalMarks: 70},
		{SubjectCode: "B", MaxMarks: 100, InternalMarks: 10, ExternalMarks: 29},
	})
	assert.Equal(t, dto.StatusFail, results[1].Status)
	assert.Equal(t, "A", summary.Grade)
	assert.Equal(t, dto.StatusFail, summary.Status)
}

func TestSummariseMarksDefaultsMaxMarks(t *testing.T) {
	results, summary := SummariseMarks([]models.SubjectMarks{{SubjectCode: "A", InternalMarks: 20, ExternalMarks: 20}})
	assert.Equal(t, float64(100), results[0].MaxMarks)
	assert.Equal(t, dto.StatusPass, results[0].Status)
	assert.Equal(t, "C", summary.Grade)
}

func TestSummariseMarksEmpty(t *testing.T) {
	results, summary := SummariseMarks(nil)
	assert.Empty(t, results)
	assert.Equal(t, float64(0), summary.Percentage)
	assert.Equal(t, FailGrade, summary.Grade)
	assert.Equal(t, dto.StatusFail, summary.Status)
}
