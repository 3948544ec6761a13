package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-result-portal/internal/models"
)

// ResultRepository reads student results for the public lookup.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository constructs a ResultRepository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// FindStudent returns the student matching both registration number and date of birth.
// sql.ErrNoRows is returned unchanged when no student matches.
func (r *ResultRepository) FindStudent(ctx context.Context, registrationNumber, dateOfBirth string) (*models.StudentRecord, error) {
	query := r.db.Rebind(`SELECT s.student_id, s.student_name, s.registration_number, s.roll_number, s.course_id,
        c.course_name, s.semester, s.academic_year, s.date_of_birth
        FROM students s
        JOIN courses c ON s.course_id = c.course_id
        WHERE s.registration_number = ? AND s.date_of_birth = ?
        LIMIT 1`)
	var student models.StudentRecord
	if err := r.db.GetContext(ctx, &student, query, registrationNumber, dateOfBirth); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListSubjectMarks returns every subject of the course semester with the student's marks, ordered by subject.
func (r *ResultRepository) ListSubjectMarks(ctx context.Context, studentID, courseID int64, semester int) ([]models.SubjectMarks, error) {
	query := r.db.Rebind(`SELECT sub.subject_id, sub.subject_code, sub.subject_name, COALESCE(sub.max_marks, 0) AS max_marks,
        COALESCE(r.internal_marks, 0) AS internal_marks, COALESCE(r.external_marks, 0) AS external_marks, COALESCE(r.grade, '') AS grade
        FROM subjects sub
        LEFT JOIN results r ON r.subject_id = sub.subject_id AND r.student_id = ?
        WHERE sub.course_id = ? AND sub.semester = ?
        ORDER BY sub.subject_id`)
	var marks []models.SubjectMarks
	if err := r.db.SelectContext(ctx, &marks, query, studentID, courseID, semester); err != nil {
		return nil, fmt.Errorf("list subject marks: %w", err)
	}
	return marks, nil
}

// Ping verifies the database connection for readiness probes.
func (r *ResultRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
