package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/logging"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"github.com/gin-gonic/gin"
)

func (h *Handler) home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", homePage{Title: appTitle})
}

func (h *Handler) uploadForm(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", newUploadPage("", "", h.maxUploadBytes))
}

// submit handles the upload form. Success redirects to the result view with
// the handoff id; any failure re-renders the form with an alert.
func (h *Handler) submit(c *gin.Context) {
	req, cleanup, err := h.readForm(c)
	defer cleanup()

	if err == nil {
		handoff, serr := h.submissions.Submit(c.Request.Context(), middleware.SessionID(c), req)
		if serr == nil {
			c.Redirect(http.StatusSeeOther, "/results?h="+url.QueryEscape(handoff.ID))
			return
		}
		err = serr
	} else {
		logging.FromContext(c.Request.Context()).Warn("upload form rejected", "error", err)
	}

	status, msg := errorResponse(err)
	page := newUploadPage(req.StudentName, string(req.StrokeType), h.maxUploadBytes)
	page.Alert = msg
	c.HTML(status, "upload.html", page)
}

// results renders the handed-off analysis, or the no-data fallback when the
// page is opened without a live handoff.
func (h *Handler) results(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Query("h")

	result, err := h.submissions.Result(ctx, middleware.SessionID(c), id)
	if err != nil {
		if !errors.Is(err, domain.ErrResultNotFound) {
			logging.FromContext(ctx).Error("load result failed", "handoff_id", id, "error", err)
		}
		c.HTML(http.StatusOK, "results.html", newResultsPage(nil))
		return
	}
	c.HTML(http.StatusOK, "results.html", newResultsPage(result))
}
