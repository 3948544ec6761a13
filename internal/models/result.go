package models

import "time"

// StudentRecord is a student row joined with its course.
type StudentRecord struct {
	ID                 int64     `db:"student_id"`
	Name               string    `db:"student_name"`
	RegistrationNumber string    `db:"registration_number"`
	RollNumber         string    `db:"roll_number"`
	CourseID           int64     `db:"course_id"`
	CourseName         string    `db:"course_name"`
	Semester           int       `db:"semester"`
	AcademicYear       string    `db:"academic_year"`
	DateOfBirth        time.Time `db:"date_of_birth"`
}

// SubjectMarks is a subject of a course semester with the student's marks, zero when none were recorded.
type SubjectMarks struct {
	SubjectID     int64  `db:"subject_id"`
	SubjectCode   string `db:"subject_code"`
	SubjectName   string `db:"subject_name"`
	MaxMarks      int    `db:"max_marks"`
	InternalMarks int    `db:"internal_marks"`
	ExternalMarks int    `db:"external_marks"`
	Grade         string `db:"grade"`
}

// NewStudent is the insert shape of a student.
type NewStudent struct {
	Name               string    `db:"student_name"`
	RegistrationNumber string    `db:"registration_number"`
	RollNumber         string    `db:"roll_number"`
	CourseID           int64     `db:"course_id"`
	Semester           int       `db:"semester"`
	AcademicYear       string    `db:"academic_year"`
	DateOfBirth        time.Time `db:"date_of_birth"`
}

// ResultMarks is the upsert shape of a result row.
type ResultMarks struct {
	StudentID     int64  `db:"student_id"`
	SubjectID     int64  `db:"subject_id"`
	InternalMarks int    `db:"internal_marks"`
	ExternalMarks int    `db:"external_marks"`
	Grade         string `db:"grade"`
}

// ResultExportRow is one line of the results export.
type ResultExportRow struct {
	RegistrationNumber string `db:"registration_number"`
	StudentName        string `db:"student_name"`
	RollNumber         string `db:"roll_number"`
	CourseName         string `db:"course_name"`
	Semester           int    `db:"semester"`
	AcademicYear       string `db:"academic_year"`
	SubjectCode        string `db:"subject_code"`
	SubjectName        string `db:"subject_name"`
	InternalMarks      int    `db:"internal_marks"`
	ExternalMarks      int    `db:"external_marks"`
	Grade              string `db:"grade"`
}
