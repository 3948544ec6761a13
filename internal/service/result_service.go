package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-result-portal/internal/dto"
	"github.com/noah-isme/sma-result-portal/internal/models"
	appErrors "github.com/noah-isme/sma-result-portal/pkg/errors"
)

const dateLayout = "2006-01-02"

type resultRepository interface {
	FindStudent(ctx context.Context, registrationNumber, dateOfBirth string) (*models.StudentRecord, error)
	ListSubjectMarks(ctx context.Context, studentID, courseID int64, semester int) ([]models.SubjectMarks, error)
}

var (
	errLookupFieldsRequired = appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "Registration number and Date of Birth are required.")
	errLookupDateFormat     = appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "Date of Birth must be in YYYY-MM-DD format.")
	errStudentNotFound      = appErrors.Clone(appErrors.ErrNotFound, "Student not found. Please check Registration Number and Date of Birth.")
)

// ResultService resolves public result lookups.
type ResultService struct {
	repo    resultRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewResultService constructs the result service. cache and metrics may be nil.
func NewResultService(repo resultRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

// CheckResult returns the result payload of the student identified by registration number and date of birth.
func (s *ResultService) CheckResult(ctx context.Context, req dto.CheckResultRequest) (*dto.ResultPayload, error) {
	regNo := strings.TrimSpace(req.RegistrationNumber)
	dob := strings.TrimSpace(req.DateOfBirth)
	if regNo == "" || dob == "" {
		s.metrics.ObserveLookup(LookupInvalid)
		return nil, errLookupFieldsRequired
	}
	parsed, err := time.Parse(dateLayout, dob)
	if err != nil {
		s.metrics.ObserveLookup(LookupInvalid)
		return nil, errLookupDateFormat
	}
	dob = parsed.Format(dateLayout)

	key := ResultKey(regNo, dob)
	var cached dto.ResultPayload
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		s.metrics.ObserveLookup(LookupFound)
		return &cached, nil
	}

	start := time.Now()
	student, err := s.repo.FindStudent(ctx, regNo, dob)
	s.metrics.ObserveDBQuery("find_student", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.ObserveLookup(LookupNotFound)
			return nil, errStudentNotFound
		}
		s.metrics.ObserveLookup(LookupError)
		s.logger.Error("find student failed", zap.String("registration_number", regNo), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	start = time.Now()
	marks, err := s.repo.ListSubjectMarks(ctx, student.ID, student.CourseID, student.Semester)
	s.metrics.ObserveDBQuery("list_subject_marks", time.Since(start))
	if err != nil {
		s.metrics.ObserveLookup(LookupError)
		s.logger.Error("list subject marks failed", zap.Int64("student_id", student.ID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}

	results, summary := SummariseMarks(marks)
	payload := &dto.ResultPayload{
		Student: dto.StudentInfo{
			StudentName:        student.Name,
			RegistrationNumber: student.RegistrationNumber,
			RollNumber:         student.RollNumber,
			CourseName:         student.CourseName,
			Semester:           student.Semester,
			AcademicYear:       student.AcademicYear,
			DateOfBirth:        student.DateOfBirth.Format(dateLayout),
		},
		Results: results,
		Summary: summary,
	}

	_ = s.cache.Set(ctx, key, payload, 0)
	s.metrics.ObserveLookup(LookupFound)
	return payload, nil
}
