package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-result-portal/internal/dto"
	"github.com/noah-isme/sma-result-portal/internal/models"
	"github.com/noah-isme/sma-result-portal/internal/repository"
	appErrors "github.com/noah-isme/sma-result-portal/pkg/errors"
	"github.com/noah-isme/sma-result-portal/pkg/export"
)

type adminRepository interface {
	CreateStudent(ctx context.Context, student *models.NewStudent) error
	FindStudentID(ctx context.Context, registrationNumber string) (int64, error)
	FindSubjectID(ctx context.Context, subjectCode string) (int64, error)
	UpsertResult(ctx context.Context, marks *models.ResultMarks) error
	ExportRows(ctx context.Context) ([]models.ResultExportRow, error)
}

// ExportHeaders are the column titles of the results export.
var ExportHeaders = []string{"Registration", "Student Name", "Roll", "Course", "Semester", "Year", "Subject Code", "Subject Name", "Internal", "External", "Grade"}

// AdminService implements the operator utilities.
type AdminService struct {
	repo      adminRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdminService constructs the admin service. cache may be nil.
func NewAdminService(repo adminRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// AddStudent registers a new student.
func (s *AdminService) AddStudent(ctx context.Context, req dto.AddStudentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date of birth must be YYYY-MM-DD")
	}
	student := &models.NewStudent{
		Name:               strings.TrimSpace(req.Name),
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		RollNumber:         strings.TrimSpace(req.RollNumber),
		CourseID:           req.CourseID,
		Semester:           req.Semester,
		AcademicYear:       strings.TrimSpace(req.AcademicYear),
		DateOfBirth:        dob,
	}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "registration number already exists")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	s.logger.Info("student added", zap.String("registration_number", student.RegistrationNumber))
	return nil
}

// UpdateResult records the marks of a subject for a student and drops cached lookups of that student.
func (s *AdminService) UpdateResult(ctx context.Context, req dto.UpdateResultRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}
	regNo := strings.TrimSpace(req.RegistrationNumber)
	studentID, err := s.repo.FindStudentID(ctx, regNo)
	if err != nil {
		return notFoundOrInternal(err, "student not found", "failed to load student")
	}
	subjectID, err := s.repo.FindSubjectID(ctx, strings.TrimSpace(req.SubjectCode))
	if err != nil {
		return notFoundOrInternal(err, "subject not found", "failed to load subject")
	}
	marks := &models.ResultMarks{
		StudentID:     studentID,
		SubjectID:     subjectID,
		InternalMarks: req.InternalMarks,
		ExternalMarks: req.ExternalMarks,
		Grade:         strings.TrimSpace(req.Grade),
	}
	if err := s.repo.UpsertResult(ctx, marks); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update result")
	}
	if err := s.cache.Invalidate(ctx, StudentPattern(regNo)); err != nil {
		s.logger.Warn("stale cached results may be served", zap.String("registration_number", regNo), zap.Error(err))
	}
	s.logger.Info("result updated", zap.String("registration_number", regNo), zap.String("subject_code", req.SubjectCode))
	return nil
}

// ExportResults builds the results export dataset.
func (s *AdminService) ExportResults(ctx context.Context) (export.Dataset, error) {
	rows, err := s.repo.ExportRows(ctx)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export results")
	}
	data := export.Dataset{Headers: ExportHeaders, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{
			r.RegistrationNumber,
			r.StudentName,
			r.RollNumber,
			r.CourseName,
			strconv.Itoa(r.Semester),
			r.AcademicYear,
			r.SubjectCode,
			r.SubjectName,
			strconv.Itoa(r.InternalMarks),
			strconv.Itoa(r.ExternalMarks),
			r.Grade,
		})
	}
	return data, nil
}

func notFoundOrInternal(err error, notFound, internal string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internal)
}
