package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/sma-result-portal/internal/models"
)

// ErrDuplicate reports a unique constraint violation.
var ErrDuplicate = errors.New("duplicate record")

const (
	pqUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// AdminRepository backs the operator utilities.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// CreateStudent inserts a student.
func (r *AdminRepository) CreateStudent(ctx context.Context, student *models.NewStudent) error {
	query := `INSERT INTO students (student_name, registration_number, roll_number, course_id, semester, academic_year, date_of_birth)
        VALUES (:student_name, :registration_number, :roll_number, :course_id, :semester, :academic_year, :date_of_birth)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert student %s: %w: %w", student.RegistrationNumber, ErrDuplicate, err)
		}
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return false
}

// FindStudentID resolves a registration number. sql.ErrNoRows is returned unchanged.
func (r *AdminRepository) FindStudentID(ctx context.Context, registrationNumber string) (int64, error) {
	var id int64
	query := r.db.Rebind("SELECT student_id FROM students WHERE registration_number = ? LIMIT 1")
	if err := r.db.GetContext(ctx, &id, query, registrationNumber); err != nil {
		return 0, err
	}
	return id, nil
}

// FindSubjectID resolves a subject code. sql.ErrNoRows is returned unchanged.
func (r *AdminRepository) FindSubjectID(ctx context.Context, subjectCode string) (int64, error) {
	var id int64
	query := r.db.Rebind("SELECT subject_id FROM subjects WHERE subject_code = ? LIMIT 1")
	if err := r.db.GetContext(ctx, &id, query, subjectCode); err != nil {
		return 0, err
	}
	return id, nil
}

// UpsertResult updates the existing result row of the student+subject or inserts a new one.
func (r *AdminRepository) UpsertResult(ctx context.Context, marks *models.ResultMarks) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert result: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var resultID int64
	lookup := tx.Rebind("SELECT result_id FROM results WHERE student_id = ? AND subject_id = ?")
	switch scanErr := tx.GetContext(ctx, &resultID, lookup, marks.StudentID, marks.SubjectID); {
	case scanErr == nil:
		update := tx.Rebind("UPDATE results SET internal_marks = ?, external_marks = ?, grade = ? WHERE result_id = ?")
		if _, err = tx.ExecContext(ctx, update, marks.InternalMarks, marks.ExternalMarks, marks.Grade, resultID); err != nil {
			return fmt.Errorf("update result: %w", err)
		}
	case errors.Is(scanErr, sql.ErrNoRows):
		insert := tx.Rebind("INSERT INTO results (student_id, subject_id, internal_marks, external_marks, grade) VALUES (?, ?, ?, ?, ?)")
		if _, err = tx.ExecContext(ctx, insert, marks.StudentID, marks.SubjectID, marks.InternalMarks, marks.ExternalMarks, marks.Grade); err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
	default:
		err = fmt.Errorf("find result: %w", scanErr)
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert result: %w", err)
	}
	return nil
}

// ExportRows lists every recorded result ordered by registration number then subject code.
func (r *AdminRepository) ExportRows(ctx context.Context) ([]models.ResultExportRow, error) {
	query := `SELECT st.registration_number, st.student_name, st.roll_number, c.course_name, st.semester, st.academic_year,
        sub.subject_code, sub.subject_name, COALESCE(r.internal_marks, 0) AS internal_marks,
        COALESCE(r.external_marks, 0) AS external_marks, COALESCE(r.grade, '') AS grade
        FROM students st
        JOIN courses c ON st.course_id = c.course_id
        JOIN results r ON r.student_id = st.student_id
        JOIN subjects sub ON sub.subject_id = r.subject_id
        ORDER BY st.registration_number, sub.subject_code`
	var rows []models.ResultExportRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("export results: %w", err)
	}
	return rows, nil
}
