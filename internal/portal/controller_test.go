package portal

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-result-portal/internal/dto"
	appErrors "github.com/noah-isme/sma-result-portal/pkg/errors"
)

type fakeDispatcher struct {
	mu      sync.Mutex
	calls   []dto.CheckResultRequest
	payload *dto.ResultPayload
	err     error

	started chan struct{}
	release chan struct{}
}

func (f *fakeDispatcher) CheckResult(ctx context.Context, req dto.CheckResultRequest) (*dto.ResultPayload, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.payload, f.err
}

func (f *fakeDispatcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestController(t *testing.T, d Dispatcher) *Controller {
	t.Helper()
	return NewController(NewInputValidator(fixedNow), d, newTestRenderer(t), nil)
}

func assertIdleTrigger(t *testing.T, v View) {
	t.Helper()
	assert.False(t, v.Trigger.Disabled)
	assert.Equal(t, LabelIdle, v.Trigger.Label)
}

func TestControllerSubmitInvalidInputSendsNothing(t *testing.T) {
	d := &fakeDispatcher{}
	ctrl := newTestController(t, d)
	ctrl.SetInputs("AB", "2005-06-15")

	require.NoError(t, ctrl.Submit(context.Background()))

	v := ctrl.Snapshot()
	assert.Zero(t, d.callCount())
	require.NotNil(t, v.Banner)
	assert.Equal(t, MsgInvalidRegistration, v.Banner.Text)
	assert.True(t, v.Banner.IsError())
	assertIdleTrigger(t, v)
	assert.False(t, v.Result.Visible)
}

func TestControllerSubmitFutureDateOfBirthSendsNothing(t *testing.T) {
	d := &fakeDispatcher{payload: samplePayload()}
	ctrl := newTestController(t, d)
	ctrl.SetInputs("REG2024001", "2999-01-01")

	require.NoError(t, ctrl.Submit(context.Background()))

	v := ctrl.Snapshot()
	assert.Zero(t, d.callCount())
	require.NotNil(t, v.Banner)
	assert.Equal(t, MsgFutureDateOfBirth, v.Banner.Text)
	assert.True(t, v.Banner.IsError())
	assertIdleTrigger(t, v)
	assert.False(t, v.Result.Visible)
}

func TestControllerSubmitSuccess(t *testing.T) {
	d := &fakeDispatcher{payload: samplePayload()}
	ctrl := newTestController(t, d)
	ctrl.SetInputs("  REG2024001 ", "2005-06-15")

	require.NoError(t, ctrl.Submit(context.Background()))

	require.Equal(t, 1, d.callCount())
	assert.Equal(t, dto.CheckResultRequest{RegistrationNumber: "REG2024001", DateOfBirth: "2005-06-15"}, d.calls[0])

	v := ctrl.Snapshot()
	assert.True(t, v.Result.Visible)
	require.NotNil(t, v.Result.Content)
	assert.Len(t, v.Result.Content.Rows, 3)
	require.NotNil(t, v.Banner)
	assert.Equal(t, MsgResultLoaded, v.Banner.Text)
	assert.Equal(t, SeverityInfo, v.Banner.Severity)
	assertIdleTrigger(t, v)
	assert.Equal(t, "  REG2024001 ", v.RegistrationNumber)
	assert.False(t, ctrl.InFlight())
}

func TestControllerSubmitServerErrorHidesResult(t *testing.T) {
	d := &fakeDispatcher{payload: samplePayload()}
	ctrl := newTestController(t, d)
	ctrl.SetInputs("REG2024001", "2005-06-15")
	require.NoError(t, ctrl.Submit(context.Background()))
	require.True(t, ctrl.Snapshot().Result.Visible)

	serverErr := appErrors.Clone(appErrors.ErrLookupServer, "Student not found. Please check Registration Number and Date of Birth.")
	serverErr.Status = 404
	d.payload, d.err = nil, serverErr
	require.NoError(t, ctrl.Submit(context.Background()))

	v := ctrl.Snapshot()
	require.NotNil(t, v.Banner)
	assert.Equal(t, serverErr.Message, v.Banner.Text)
	assert.True(t, v.Banner.IsError())
	assert.False(t, v.Result.Visible)
	assert.Nil(t, v.Result.Content)
	assertIdleTrigger(t, v)
}

func TestControllerSubmitTransportErrorKeepsResult(t *testing.T) {
	d := &fakeDispatcher{payload: samplePayload()}
	ctrl := newTestController(t, d)
	ctrl.SetInputs("REG2024001", "2005-06-15")
	require.NoError(t, ctrl.Submit(context.Background()))

	d.payload = nil
	d.err = appErrors.Wrap(errors.New("connection refused"), appErrors.ErrLookupTransport.Code, appErrors.ErrLookupTransport.Status, appErrors.ErrLookupTransport.Message)
	require.NoError(t, ctrl.Submit(context.Background()))

	v := ctrl.Snapshot()
	require.NotNil(t, v.Banner)
	assert.Equal(t, appErrors.ErrLookupTransport.Message, v.Banner.Text)
	assert.True(t, v.Banner.IsError())
	assert.NotContains(t, v.Banner.Text, "connection refused")
	assert.True(t, v.Result.Visible)
	assertIdleTrigger(t, v)
}

func TestControllerSubmitUntypedErrorShowsGenericMessage(t *testing.T) {
	d := &fakeDispatcher{err: errors.New("boom")}
	ctrl := newTestController(t, d)
	ctrl.SetInputs("REG2024001", "2005-06-15")

	require.NoError(t, ctrl.Submit(context.Background()))

	v := ctrl.Snapshot()
	require.NotNil(t, v.Banner)
	assert.Equal(t, appErrors.ErrLookupTransport.Message, v.Banner.Text)
}

func TestControllerRejectsReentrantSubmit(t *testing.T) {
	d := &fakeDispatcher{
		payload: samplePayload(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	ctrl := newTestController(t, d)
	ctrl.SetInputs("REG2024001", "2005-06-15")

	done := make(chan error, 1)
	go func() { done <- ctrl.Submit(context.Background()) }()
	<-d.started

	v := ctrl.Snapshot()
	assert.True(t, ctrl.InFlight())
	assert.True(t, v.Trigger.Disabled)
	assert.Equal(t, LabelBusy, v.Trigger.Label)
	require.NotNil(t, v.Banner)
	assert.Equal(t, MsgLookingUp, v.Banner.Text)

	assert.ErrorIs(t, ctrl.Submit(context.Background()), ErrSubmitInFlight)

	close(d.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, d.callCount())
	assert.False(t, ctrl.InFlight())
	assertIdleTrigger(t, ctrl.Snapshot())
}

func TestControllerClear(t *testing.T) {
	d := &fakeDispatcher{payload: samplePayload()}
	ctrl := newTestController(t, d)
	ctrl.SetInputs("REG2024001", "2005-06-15")
	require.NoError(t, ctrl.Submit(context.Background()))

	ctrl.Clear()

	v := ctrl.Snapshot()
	assert.Empty(t, v.RegistrationNumber)
	assert.Empty(t, v.DateOfBirth)
	assert.Nil(t, v.Banner)
	assert.False(t, v.Result.Visible)
	assert.Nil(t, v.Result.Content)
}

func TestControllerShowMessage(t *testing.T) {
	ctrl := newTestController(t, &fakeDispatcher{})
	ctrl.ShowMessage("hello", SeverityInfo)
	ctrl.ShowMessage("later", SeverityError)

	v := ctrl.Snapshot()
	require.NotNil(t, v.Banner)
	assert.Equal(t, Banner{Text: "later", Severity: SeverityError}, *v.Banner)
}
