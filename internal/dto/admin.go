package dto

// AddStudentRequest registers a student for a course semester.
type AddStudentRequest struct {
	Name               string `validate:"required"`
	RegistrationNumber string `validate:"required"`
	RollNumber         string `validate:"required"`
	CourseID           int64  `validate:"required,gt=0"`
	Semester           int    `validate:"required,gt=0"`
	AcademicYear       string `validate:"required"`
	DateOfBirth        string `validate:"required,datetime=2006-01-02"`
}

// UpdateResultRequest sets the marks of one subject for a student.
type UpdateResultRequest struct {
	RegistrationNumber string `validate:"required"`
	SubjectCode        string `validate:"required"`
	InternalMarks      int    `validate:"gte=0"`
	ExternalMarks      int    `validate:"gte=0"`
	Grade              string
}
