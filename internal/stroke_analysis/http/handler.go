package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/service"
	"github.com/gin-gonic/gin"
)

// MultipartMemory is how much of an upload is held in memory before the
// rest spills to a temp file.
const MultipartMemory = 32 << 20

type Handler struct {
	submissions    *service.SubmissionService
	maxUploadBytes int64
}

func New(submissions *service.SubmissionService, maxUploadBytes int64) *Handler {
	return &Handler{
		submissions:    submissions,
		maxUploadBytes: maxUploadBytes,
	}
}

// readForm builds an AnalysisRequest from the multipart body. A missing file
// is not an error here; validation reports it so both routes share the rule.
// The returned func closes the opened upload.
func (h *Handler) readForm(c *gin.Context) (domain.AnalysisRequest, func(), error) {
	var req domain.AnalysisRequest
	noop := func() {}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	if err := c.Request.ParseMultipartForm(MultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if isTooLarge(err) {
			return req, noop, errUploadTooLarge
		}
		return req, noop, fmt.Errorf("%w: %v", errBadForm, err)
	}

	req.StudentName = c.PostForm("student_name")
	req.StrokeType = domain.StrokeType(c.PostForm("stroke_type"))

	fh, err := c.FormFile("file")
	if err != nil {
		return req, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return req, noop, fmt.Errorf("%w: open upload: %v", errBadForm, err)
	}
	req.Video = &domain.VideoFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      f,
	}
	return req, func() { _ = f.Close() }, nil
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
