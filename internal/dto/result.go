package dto

// ResultStatus is the pass/fail verdict of a subject or a whole result.
type ResultStatus string

const (
	StatusPass ResultStatus = "Pass"
	StatusFail ResultStatus = "Fail"
)

// CheckResultRequest is the body of POST /check_result.
type CheckResultRequest struct {
	RegistrationNumber string `json:"registration_number"`
	DateOfBirth        string `json:"date_of_birth"`
}

// StudentInfo identifies the student a result belongs to.
type StudentInfo struct {
	StudentName        string `json:"student_name"`
	RegistrationNumber string `json:"registration_number"`
	RollNumber         string `json:"roll_number"`
	CourseName         string `json:"course_name"`
	Semester           int    `json:"semester"`
	AcademicYear       string `json:"academic_year"`
	DateOfBirth        string `json:"date_of_birth"`
}

// SubjectResult holds the marks of one subject.
type SubjectResult struct {
	SubjectID     int64        `json:"subject_id,omitempty"`
	SubjectCode   string       `json:"subject_code"`
	SubjectName   string       `json:"subject_name"`
	InternalMarks float64      `json:"internal_marks"`
	ExternalMarks float64      `json:"external_marks"`
	TotalMarks    float64      `json:"total_marks"`
	MaxMarks      float64      `json:"max_marks"`
	Grade         string       `json:"grade"`
	Status        ResultStatus `json:"status"`
}

// SummaryInfo aggregates all subjects.
type SummaryInfo struct {
	TotalObtained float64      `json:"total_obtained"`
	TotalMax      float64      `json:"total_max"`
	Percentage    float64      `json:"percentage"`
	Grade         string       `json:"grade"`
	Status        ResultStatus `json:"status"`
}

// ResultPayload is the success body of POST /check_result.
type ResultPayload struct {
	Student StudentInfo     `json:"student"`
	Results []SubjectResult `json:"results"`
	Summary SummaryInfo     `json:"summary"`
}

// ErrorBody is the failure body of POST /check_result.
type ErrorBody struct {
	Error string `json:"error"`
}
