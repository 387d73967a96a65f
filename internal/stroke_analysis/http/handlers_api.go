package http

import (
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/logging"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/service"
	"github.com/gin-gonic/gin"
)

// analyze is the JSON twin of the upload form.
func (h *Handler) analyze(c *gin.Context) {
	req, cleanup, err := h.readForm(c)
	defer cleanup()

	if err == nil {
		handoff, serr := h.submissions.Submit(c.Request.Context(), middleware.SessionID(c), req)
		if serr == nil {
			c.JSON(http.StatusOK, analyzeResponse{
				HandoffID:      handoff.ID,
				AnalysisResult: handoff.Result,
			})
			return
		}
		err = serr
	}

	status, msg := errorResponse(err)
	c.JSON(status, errorBody{Error: msg})
}

func (h *Handler) getResult(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	result, err := h.submissions.Result(ctx, middleware.SessionID(c), id)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			c.JSON(http.StatusNotFound, errorBody{Error: msgResultNotFound})
			return
		}
		logging.FromContext(ctx).Error("load result failed", "handoff_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody{Error: msgInternal})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) metrics(c *gin.Context) {
	c.JSON(http.StatusOK, service.GetMetrics())
}
