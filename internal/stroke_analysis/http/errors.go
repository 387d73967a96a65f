package http

import (
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
)

var (
	errUploadTooLarge = errors.New("upload exceeds size limit")
	errBadForm        = errors.New("malformed upload form")
)

const (
	msgMissingFile    = "Please upload a video."
	msgMissingName    = "Please enter the student's name."
	msgInvalidStroke  = "Please choose forehand, backhand, serve or volley."
	msgInFlight       = "An analysis is already running. Please wait for it to finish."
	msgTooLarge       = "That video is too large to upload."
	msgBadForm        = "The upload could not be read. Please try again."
	msgRequestFailed  = "Error analyzing video. Make sure the backend is running."
	msgInternal       = "Could not save the analysis. Please try again."
	msgResultNotFound = "analysis result not found"
)

// errorResponse maps a submission error to a status and a user-facing message.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge, msgTooLarge
	case errors.Is(err, errBadForm):
		return http.StatusBadRequest, msgBadForm
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, msgMissingFile
	case errors.Is(err, domain.ErrMissingStudentName):
		return http.StatusBadRequest, msgMissingName
	case errors.Is(err, domain.ErrInvalidStroke):
		return http.StatusBadRequest, msgInvalidStroke
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict, msgInFlight
	case errors.Is(err, domain.ErrRequestFailed):
		return http.StatusBadGateway, msgRequestFailed
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
