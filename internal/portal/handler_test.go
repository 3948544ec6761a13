package portal

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csrfmiddleware "github.com/noah-isme/sma-result-portal/pkg/middleware/csrf"
)

func newTestRouter(t *testing.T, d Dispatcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	renderer := newTestRenderer(t)
	validator := NewInputValidator(fixedNow)
	h := NewHandler("ABC Engineering College", renderer, func() *Controller {
		return NewController(validator, d, renderer, nil)
	}, nil)
	r := gin.New()
	h.Register(r)
	return r
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestHandlerIndex(t *testing.T) {
	r := newTestRouter(t, &fakeDispatcher{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "ABC Engineering College")
	assert.Contains(t, body, `name="registration_number"`)
	assert.Contains(t, body, `name="date_of_birth"`)
	assert.Contains(t, body, LabelIdle)
	assert.Contains(t, body, `id="resultArea" hidden`)
}

func TestHandlerLookup(t *testing.T) {
	d := &fakeDispatcher{payload: samplePayload()}
	r := newTestRouter(t, d)

	w := postForm(r, "/lookup", url.Values{"registration_number": {"REG2024001"}, "date_of_birth": {"2005-06-15"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, d.callCount())
	body := w.Body.String()
	assert.Contains(t, body, MsgResultLoaded)
	assert.Contains(t, body, "Asha Rao")
	assert.Contains(t, body, `value="2005-06-15"`)
}

func TestHandlerLookupValidationError(t *testing.T) {
	d := &fakeDispatcher{}
	r := newTestRouter(t, d)

	w := postForm(r, "/lookup", url.Values{"registration_number": {"REG2024001"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, d.callCount())
	assert.Contains(t, w.Body.String(), MsgMissingDateOfBirth)
	assert.Contains(t, w.Body.String(), `class="banner error"`)
}

func TestHandlerClear(t *testing.T) {
	r := newTestRouter(t, &fakeDispatcher{})

	w := postForm(r, "/clear", url.Values{"registration_number": {"REG2024001"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `value="REG2024001"`)
	assert.NotContains(t, w.Body.String(), `class="banner`)
}

func TestHandlerEmbedsFormToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	renderer := newTestRenderer(t)
	h := NewHandler("ABC Engineering College", renderer, func() *Controller {
		return NewController(NewInputValidator(fixedNow), &fakeDispatcher{}, renderer, nil)
	}, nil)
	r := gin.New()
	r.Use(csrfmiddleware.New(csrfmiddleware.Options{AuthKey: []byte("0123456789abcdef0123456789abcdef")}))
	h.Register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="csrf_token"`)

	rejected := postForm(r, "/lookup", url.Values{"registration_number": {"REG2024001"}, "date_of_birth": {"2005-06-15"}})
	assert.Equal(t, http.StatusForbidden, rejected.Code)
}
