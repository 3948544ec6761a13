package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-result-portal/internal/dto"
	appErrors "github.com/noah-isme/sma-result-portal/pkg/errors"
	"github.com/noah-isme/sma-result-portal/pkg/response"
)

type resultService interface {
	CheckResult(ctx context.Context, req dto.CheckResultRequest) (*dto.ResultPayload, error)
}

// ResultHandler exposes the public result lookup.
type ResultHandler struct {
	results resultService
}

// NewResultHandler constructs ResultHandler.
func NewResultHandler(results resultService) *ResultHandler {
	return &ResultHandler{results: results}
}

// CheckResult godoc
// @Summary Look up a student's result
// @Tags Results
// @Accept json
// @Produce json
// @Param payload body dto.CheckResultRequest true "Registration number and date of birth"
// @Success 200 {object} dto.ResultPayload
// @Failure 400 {object} dto.ErrorBody
// @Failure 404 {object} dto.ErrorBody
// @Router /check_result [post]
func (h *ResultHandler) CheckResult(c *gin.Context) {
	var req dto.CheckResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payload, err := h.results.CheckResult(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payload)
}
