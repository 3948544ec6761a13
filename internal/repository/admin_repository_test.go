package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-result-portal/internal/models"
)

func TestAdminRepositoryCreateStudent(t *testing.T) {
	db, mock, cleanup := newResultMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	dob := time.Date(2002, 3, 12, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO students").
		WithArgs("John Doe", "CSE2025010", "21CSE010", int64(1), 4, "2024-25", dob).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateStudent(context.Background(), &models.NewStudent{
		Name: "John Doe", RegistrationNumber: "CSE2025010", RollNumber: "21CSE010",
		CourseID: 1, Semester: 4, AcademicYear: "2024-25", DateOfBirth: dob,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryCreateStudentDuplicate(t *testing.T) {
	for name, driverErr := range map[string]error{
		"postgres": &pq.Error{Code: "23505"},
		"mysql":    &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"},
	} {
		t.Run(name, func(t *testing.T) {
			db, mock, cleanup := newResultMock(t)
			defer cleanup()
			repo := NewAdminRepository(db)

			mock.ExpectExec("INSERT INTO students").WillReturnError(driverErr)

			err := repo.CreateStudent(context.Background(), &models.NewStudent{RegistrationNumber: "CSE2025010"})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDuplicate)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	assert.False(t, isUniqueViolation(errors.New("connection reset")))
}

func TestAdminRepositoryUpsertResultUpdatesExisting(t *testing.T) {
	db, mock, cleanup := newResultMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT result_id FROM results").
		WithArgs(int64(3), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"result_id"}).AddRow(42))
	mock.ExpectExec("UPDATE results SET internal_marks").
		WithArgs(12, 56, "A", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpsertResult(context.Background(), &models.ResultMarks{StudentID: 3, SubjectID: 9, InternalMarks: 12, ExternalMarks: 56, Grade: "A"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryUpsertResultInsertsMissing(t *testing.T) {
	db, mock, cleanup := newResultMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT result_id FROM results").
		WithArgs(int64(3), int64(9)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO results").
		WithArgs(int64(3), int64(9), 12, 56, "").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	err := repo.UpsertResult(context.Background(), &models.ResultMarks{StudentID: 3, SubjectID: 9, InternalMarks: 12, ExternalMarks: 56})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryUpsertResultRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newResultMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT result_id FROM results").
		WillReturnRows(sqlmock.NewRows([]string{"result_id"}).AddRow(42))
	mock.ExpectExec("UPDATE results").
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	err := repo.UpsertResult(context.Background(), &models.ResultMarks{StudentID: 3, SubjectID: 9})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryFindSubjectIDMissing(t *testing.T) {
	db, mock, cleanup := newResultMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectQuery("SELECT subject_id FROM subjects").
		WithArgs("XX999").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindSubjectID(context.Background(), "XX999")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAdminRepositoryExportRows(t *testing.T) {
	db, mock, cleanup := newResultMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	rows := sqlmock.NewRows([]string{"registration_number", "student_name", "roll_number", "course_name", "semester", "academic_year", "subject_code", "subject_name", "internal_marks", "external_marks", "grade"}).
		AddRow("CSE2025010", "John Doe", "21CSE010", "B.Tech CSE", 4, "2024-25", "CSE401", "Compilers", 12, 56, "A")
	mock.ExpectQuery("ORDER BY st.registration_number, sub.subject_code").WillReturnRows(rows)

	out, err := repo.ExportRows(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Compilers", out[0].SubjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
