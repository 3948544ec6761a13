package portal

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-result-portal/internal/dto"
	appErrors "github.com/noah-isme/sma-result-portal/pkg/errors"
)

// Banner texts set by the controller.
const (
	MsgLookingUp    = "Looking up your result..."
	MsgResultLoaded = "Result loaded."
)

// ErrSubmitInFlight rejects a submission while a lookup is outstanding.
var ErrSubmitInFlight = errors.New("portal: lookup already in flight")

// Dispatcher sends a lookup to the result API.
type Dispatcher interface {
	CheckResult(ctx context.Context, req dto.CheckResultRequest) (*dto.ResultPayload, error)
}

// Controller owns the lookup form state. It is safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	view     View
	inFlight bool

	validator *InputValidator
	lookup    Dispatcher
	renderer  *Renderer
	logger    *zap.Logger
}

// NewController wires a controller around an idle view.
func NewController(validator *InputValidator, lookup Dispatcher, renderer *Renderer, logger *zap.Logger) *Controller {
	if validator == nil {
		validator = NewInputValidator(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		view:      *NewView(),
		validator: validator,
		lookup:    lookup,
		renderer:  renderer,
		logger:    logger,
	}
}

// SetInputs replaces the raw field values.
func (c *Controller) SetInputs(registrationNumber, dateOfBirth string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.RegistrationNumber = registrationNumber
	c.view.DateOfBirth = dateOfBirth
}

// Submit validates the inputs and performs one lookup.
//
// Outcomes are reported through the view; the returned error is non-nil only for
// ErrSubmitInFlight.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}

	input := LookupInput{
		RegistrationNumber: strings.TrimSpace(c.view.RegistrationNumber),
		DateOfBirth:        c.view.DateOfBirth,
	}
	if err := c.validator.Validate(input); err != nil {
		c.setBanner(validationMessage(err), SeverityError)
		c.mu.Unlock()
		return nil
	}

	c.inFlight = true
	c.view.Trigger = Control{Disabled: true, Label: LabelBusy}
	c.setBanner(MsgLookingUp, SeverityInfo)
	c.mu.Unlock()

	payload, err := c.lookup.CheckResult(ctx, dto.CheckResultRequest{
		RegistrationNumber: input.RegistrationNumber,
		DateOfBirth:        input.DateOfBirth,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	c.view.Trigger = Control{Label: LabelIdle}

	if err != nil {
		c.handleLookupError(err)
		return nil
	}

	content := c.renderer.Build(payload)
	c.view.Result = ResultPanel{Visible: true, Content: &content}
	c.setBanner(MsgResultLoaded, SeverityInfo)
	return nil
}

// Clear empties the form, the banner and the result panel. An outstanding lookup is left alone.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.RegistrationNumber = ""
	c.view.DateOfBirth = ""
	c.view.Banner = nil
	c.hideResult()
}

// ShowMessage replaces the banner.
func (c *Controller) ShowMessage(text string, severity Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setBanner(text, severity)
}

// InFlight reports whether a lookup is outstanding.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Snapshot returns a copy of the current view.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.view
	if c.view.Banner != nil {
		b := *c.view.Banner
		out.Banner = &b
	}
	return out
}

func (c *Controller) handleLookupError(err error) {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && appErr.Code == appErrors.ErrLookupServer.Code {
		c.setBanner(appErr.Message, SeverityError)
		c.hideResult()
		return
	}

	c.logger.Warn("result lookup failed", zap.Error(err))
	c.setBanner(appErrors.ErrLookupTransport.Message, SeverityError)
}

func (c *Controller) setBanner(text string, severity Severity) {
	c.view.Banner = &Banner{Text: text, Severity: severity}
}

func (c *Controller) hideResult() {
	c.view.Result = ResultPanel{}
}

func validationMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return err.Error()
}
