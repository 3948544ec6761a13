package portal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-result-portal/internal/dto"
)

func samplePayload() *dto.ResultPayload {
	return &dto.ResultPayload{
		Student: dto.StudentInfo{
			StudentName:        "Asha Rao",
			RegistrationNumber: "REG2024001",
			RollNumber:         "CS-17",
			CourseName:         "Computer Science",
			Semester:           4,
			AcademicYear:       "2024-2025",
			DateOfBirth:        "2005-06-15",
		},
		Results: []dto.SubjectResult{
			{SubjectCode: "CSE401", SubjectName: "Algorithms", InternalMarks: 25, ExternalMarks: 55, TotalMarks: 80, MaxMarks: 100, Grade: "A+", Status: dto.StatusPass},
			{SubjectCode: "CSE402", SubjectName: "Networks", InternalMarks: 10, ExternalMarks: 20, TotalMarks: 30, MaxMarks: 100, Status: dto.StatusFail},
			{SubjectCode: "CSE403", SubjectName: "Databases", InternalMarks: 20.5, ExternalMarks: 23, TotalMarks: 43.5, MaxMarks: 50, Grade: "O", Status: dto.StatusPass},
		},
		Summary: dto.SummaryInfo{TotalObtained: 153.5, TotalMax: 250, Percentage: 61.4, Grade: "B+", Status: dto.StatusFail},
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(time.UTC)
	require.NoError(t, err)
	return r
}

func renderResultPage(t *testing.T, r *Renderer, payload *dto.ResultPayload) string {
	t.Helper()
	content := r.Build(payload)
	view := *NewView()
	view.Result = ResultPanel{Visible: true, Content: &content}

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, PageData{View: view}))
	return buf.String()
}

func TestRendererBuild(t *testing.T) {
	r := newTestRenderer(t)
	view := r.Build(samplePayload())

	assert.Equal(t, "Asha Rao", view.Header.Name)
	assert.Equal(t, "4", view.Header.Semester)
	assert.Equal(t, "Jun 15, 2005", view.Header.DateOfBirth)

	require.Len(t, view.Rows, 3)
	assert.Equal(t, []string{"CSE401", "CSE402", "CSE403"}, []string{view.Rows[0].Code, view.Rows[1].Code, view.Rows[2].Code})
	assert.Equal(t, "80 / 100", view.Rows[0].Total)
	assert.Equal(t, GradePlaceholder, view.Rows[1].Grade)
	assert.False(t, view.Rows[1].Pass)
	assert.Equal(t, "20.5", view.Rows[2].Internal)
	assert.Equal(t, "43.5 / 50", view.Rows[2].Total)

	assert.Equal(t, "153.5", view.Summary.TotalObtained)
	assert.Equal(t, "61.40%", view.Summary.Percentage)
	assert.False(t, view.Summary.Pass)
}

func TestRendererResultPanel(t *testing.T) {
	r := newTestRenderer(t)
	html := renderResultPage(t, r, samplePayload())

	assert.Equal(t, 3, strings.Count(html, "<td>CSE40"))
	assert.Less(t, strings.Index(html, "CSE401"), strings.Index(html, "CSE402"))
	assert.Less(t, strings.Index(html, "CSE402"), strings.Index(html, "CSE403"))
	assert.Contains(t, html, `<td class="status pass">Pass</td>`)
	assert.Contains(t, html, `<td class="status fail">Fail</td>`)
	assert.Contains(t, html, `<td>-</td>`)
	assert.Contains(t, html, "61.40%")
	assert.Contains(t, html, `class="value status fail"`)
	assert.Contains(t, html, "window.print()")
	assert.Contains(t, html, "Jun 15, 2005")
}

func TestRendererEscapesServerText(t *testing.T) {
	r := newTestRenderer(t)
	payload := samplePayload()
	payload.Student.StudentName = `<script>alert("x")</script>`
	payload.Results[0].SubjectName = "<b>Algorithms</b>"

	page := renderResultPage(t, r, payload)

	assert.NotContains(t, page, "<script>")
	assert.NotContains(t, page, "<b>Algorithms</b>")
	assert.Contains(t, page, "&lt;script&gt;")
}

func TestRendererPercentageTwoDecimals(t *testing.T) {
	r := newTestRenderer(t)
	payload := samplePayload()
	payload.Summary = dto.SummaryInfo{TotalObtained: 153, TotalMax: 200, Percentage: 76.5, Grade: "A+", Status: dto.StatusPass}

	view := r.Build(payload)
	assert.Equal(t, "76.50%", view.Summary.Percentage)
	assert.Equal(t, "0.00%", FormatPercentage(0))
}

func TestRendererPage(t *testing.T) {
	r := newTestRenderer(t)
	content := r.Build(samplePayload())
	view := *NewView()
	view.RegistrationNumber = "REG2024001"
	view.Banner = &Banner{Text: MsgResultLoaded, Severity: SeverityInfo}
	view.Result = ResultPanel{Visible: true, Content: &content}

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, PageData{CollegeName: "ABC Engineering College", View: view}))
	page := buf.String()

	assert.Contains(t, page, "ABC Engineering College")
	assert.Contains(t, page, `value="REG2024001"`)
	assert.Contains(t, page, `class="banner info"`)
	assert.Contains(t, page, MsgResultLoaded)
	assert.Contains(t, page, LabelIdle)
	assert.Contains(t, page, "Subject-wise Results")
	assert.NotContains(t, page, `id="resultArea" hidden`)
}

func TestRendererPageHiddenResult(t *testing.T) {
	r := newTestRenderer(t)
	view := *NewView()
	view.Banner = &Banner{Text: "Student not found.", Severity: SeverityError}

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, PageData{View: view}))
	page := buf.String()

	assert.Contains(t, page, `class="banner error"`)
	assert.Contains(t, page, `id="resultArea" hidden`)
	assert.NotContains(t, page, "Subject-wise Results")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate("", time.UTC))
	assert.Equal(t, "Jan 5, 2020", FormatDate("2020-01-05", time.UTC))
	assert.Equal(t, "not-a-date", FormatDate("not-a-date", time.UTC))

	kolkata := time.FixedZone("IST", 5*60*60+30*60)
	assert.Equal(t, "Dec 31, 1999", FormatDate("1999-12-31", kolkata))
}
