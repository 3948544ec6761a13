package portal

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/noah-isme/sma-result-portal/internal/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

// DisplayDateLayout renders dates as e.g. "Jan 5, 2020".
const DisplayDateLayout = "Jan 2, 2006"

// GradePlaceholder stands in for a missing subject grade.
const GradePlaceholder = "-"

// HeaderView is the student block above the table.
type HeaderView struct {
	Name               string
	RegistrationNumber string
	RollNumber         string
	CourseName         string
	Semester           string
	AcademicYear       string
	DateOfBirth        string
}

// RowView is one subject row.
type RowView struct {
	Code     string
	Name     string
	Internal string
	External string
	Total    string
	Grade    string
	Status   string
	Pass     bool
}

// SummaryView is the aggregate block below the table.
type SummaryView struct {
	TotalObtained string
	TotalMax      string
	Percentage    string
	Grade         string
	Status        string
	Pass          bool
}

// ResultView is the display model of a payload. All strings are raw; escaping happens in the template.
type ResultView struct {
	Header  HeaderView
	Rows    []RowView
	Summary SummaryView
}

// PageData feeds the lookup page template.
type PageData struct {
	CollegeName string
	// CSRFField is the hidden token input, empty when forms are unprotected.
	CSRFField template.HTML
	View      View
}

// Renderer turns payloads into views and views into HTML.
type Renderer struct {
	loc  *time.Location
	tmpl *template.Template
}

// NewRenderer parses the embedded templates. Dates are interpreted in loc (time.Local when nil).
func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.Local
	}
	tmpl, err := template.New("portal").Funcs(template.FuncMap{
		"statusClass": statusClass,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse portal templates: %w", err)
	}
	return &Renderer{loc: loc, tmpl: tmpl}, nil
}

// Build maps a payload to its display model, keeping subject order.
func (r *Renderer) Build(p *dto.ResultPayload) ResultView {
	if p == nil {
		return ResultView{}
	}
	st := p.Student
	view := ResultView{
		Header: HeaderView{
			Name:               st.StudentName,
			RegistrationNumber: st.RegistrationNumber,
			RollNumber:         st.RollNumber,
			CourseName:         st.CourseName,
			Semester:           strconv.Itoa(st.Semester),
			AcademicYear:       st.AcademicYear,
			DateOfBirth:        FormatDate(st.DateOfBirth, r.loc),
		},
		Rows: make([]RowView, 0, len(p.Results)),
	}
	for _, res := range p.Results {
		grade := res.Grade
		if grade == "" {
			grade = GradePlaceholder
		}
		view.Rows = append(view.Rows, RowView{
			Code:     res.SubjectCode,
			Name:     res.SubjectName,
			Internal: formatMarks(res.InternalMarks),
			External: formatMarks(res.ExternalMarks),
			Total:    formatMarks(res.TotalMarks) + " / " + formatMarks(res.MaxMarks),
			Grade:    grade,
			Status:   string(res.Status),
			Pass:     res.Status == dto.StatusPass,
		})
	}
	sum := p.Summary
	view.Summary = SummaryView{
		TotalObtained: formatMarks(sum.TotalObtained),
		TotalMax:      formatMarks(sum.TotalMax),
		Percentage:    FormatPercentage(sum.Percentage),
		Grade:         sum.Grade,
		Status:        string(sum.Status),
		Pass:          sum.Status == dto.StatusPass,
	}
	return view
}

// Page renders the full lookup page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if err := r.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// FormatDate renders a YYYY-MM-DD date at local midnight in DisplayDateLayout.
// Unparsable input is returned unchanged.
func FormatDate(raw string, loc *time.Location) string {
	if raw == "" {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return raw
	}
	return d.Format(DisplayDateLayout)
}

// FormatPercentage renders exactly two decimals and a trailing percent sign.
func FormatPercentage(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 2, 64) + "%"
}

func formatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func statusClass(pass bool) string {
	if pass {
		return "status pass"
	}
	return "status fail"
}
