package csrf

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillacsrf "github.com/gorilla/csrf"
)

// FieldName is the hidden form field carrying the token.
const FieldName = "csrf_token"

// Options configures form protection.
type Options struct {
	// AuthKey must be 32 bytes.
	AuthKey []byte
	// Secure marks the cookie Secure and enforces same-origin Referer checks for TLS requests.
	Secure bool
	// OnFailure renders the rejection. Defaults to a plain 403.
	OnFailure http.Handler
}

// New guards unsafe methods with a double-submit token. GET, HEAD and OPTIONS pass
// through with a fresh token in the request context.
func New(opts Options) gin.HandlerFunc {
	failure := opts.OnFailure
	if failure == nil {
		failure = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid or missing form token", http.StatusForbidden)
		})
	}
	protect := gorillacsrf.Protect(opts.AuthKey,
		gorillacsrf.Secure(opts.Secure),
		gorillacsrf.Path("/"),
		gorillacsrf.HttpOnly(true),
		gorillacsrf.SameSite(gorillacsrf.SameSiteLaxMode),
		gorillacsrf.FieldName(FieldName),
		gorillacsrf.ErrorHandler(failure),
	)

	return func(c *gin.Context) {
		passed := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})

		req := c.Request
		if !opts.Secure {
			req = gorillacsrf.PlaintextHTTPRequest(req)
		}
		protect(next).ServeHTTP(c.Writer, req)
		if !passed {
			c.Abort()
		}
	}
}
