package portal

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// ControllerFactory builds a fresh controller for one page request.
type ControllerFactory func() *Controller

// Handler serves the lookup page.
type Handler struct {
	collegeName   string
	renderer      *Renderer
	newController ControllerFactory
	logger        *zap.Logger
}

// NewHandler constructs the page handler.
func NewHandler(collegeName string, renderer *Renderer, newController ControllerFactory, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		collegeName:   collegeName,
		renderer:      renderer,
		newController: newController,
		logger:        logger,
	}
}

// Register mounts the page routes.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/lookup", h.Lookup)
	r.POST("/clear", h.Clear)
}

// Index renders an empty form.
func (h *Handler) Index(c *gin.Context) {
	h.render(c, h.newController())
}

// Lookup submits the posted form fields.
func (h *Handler) Lookup(c *gin.Context) {
	ctrl := h.newController()
	ctrl.SetInputs(c.PostForm("registration_number"), c.PostForm("date_of_birth"))
	if err := ctrl.Submit(c.Request.Context()); err != nil {
		h.logger.Warn("submit rejected", zap.Error(err))
	}
	h.render(c, ctrl)
}

// Clear resets the form.
func (h *Handler) Clear(c *gin.Context) {
	ctrl := h.newController()
	ctrl.Clear()
	h.render(c, ctrl)
}

func (h *Handler) render(c *gin.Context, ctrl *Controller) {
	var buf bytes.Buffer
	err := h.renderer.Page(&buf, PageData{
		CollegeName: h.collegeName,
		CSRFField:   csrf.TemplateField(c.Request),
		View:        ctrl.Snapshot(),
	})
	if err != nil {
		h.logger.Error("render page", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
