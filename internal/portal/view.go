package portal

// Trigger labels.
const (
	LabelIdle = "Check Result"
	LabelBusy = "Checking..."
)

// Severity selects the banner style.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Banner is the single status message above the form.
type Banner struct {
	Text     string
	Severity Severity
}

// IsError reports whether the banner uses the error style.
func (b Banner) IsError() bool {
	return b.Severity == SeverityError
}

// Control is the state of the submit trigger.
type Control struct {
	Disabled bool
	Label    string
}

// ResultPanel holds the rendered result. Content is nil when the panel is empty.
type ResultPanel struct {
	Visible bool
	Content *ResultView
}

// View is the page state owned by a Controller.
type View struct {
	RegistrationNumber string
	DateOfBirth        string
	Trigger            Control
	Banner             *Banner
	Result             ResultPanel
}

// NewView returns an idle, empty view.
func NewView() *View {
	return &View{Trigger: Control{Label: LabelIdle}}
}
