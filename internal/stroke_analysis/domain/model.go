package domain

import (
	"io"
	"strings"
	"time"
)

// VideoFile is the uploaded clip as it is streamed to the analysis backend.
type VideoFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Empty reports whether no usable file was selected.
func (v *VideoFile) Empty() bool {
	return v == nil || v.Reader == nil || v.Filename == "" || v.Size == 0
}

// AnalysisRequest is built per submission and never stored.
type AnalysisRequest struct {
	StudentName string
	StrokeType  StrokeType
	Video       *VideoFile
}

// Validate reports the first problem in form order (file, name, stroke)
// and normalizes the fields in place. An empty stroke means DefaultStroke.
func (r *AnalysisRequest) Validate() error {
	if r.Video.Empty() {
		return ErrMissingFile
	}
	r.StudentName = strings.TrimSpace(r.StudentName)
	if r.StudentName == "" {
		return ErrMissingStudentName
	}
	if strings.TrimSpace(string(r.StrokeType)) == "" {
		r.StrokeType = DefaultStroke
		return nil
	}
	st, err := ParseStroke(string(r.StrokeType))
	if err != nil {
		return err
	}
	r.StrokeType = st
	return nil
}

// Suggestions is the backend feedback split into positives and improvements.
type Suggestions struct {
	DoingWell []string `json:"doing_well"`
	WorkOn    []string `json:"work_on"`
}

// AnalysisResult is the payload returned by POST /analyze.
type AnalysisResult struct {
	Student     string         `json:"student"`
	Stroke      string         `json:"stroke"`
	Frames      []string       `json:"frames,omitempty"`
	Metrics     map[string]any `json:"metrics,omitempty"`
	Suggestions Suggestions    `json:"suggestions"`
}

// Normalize replaces null suggestion lists with empty ones.
func (r *AnalysisResult) Normalize() {
	if r.Suggestions.DoingWell == nil {
		r.Suggestions.DoingWell = []string{}
	}
	if r.Suggestions.WorkOn == nil {
		r.Suggestions.WorkOn = []string{}
	}
}

// Handoff carries a result from the submit redirect to the result view.
type Handoff struct {
	ID        string         `json:"id"`
	SessionID string         `json:"session_id,omitempty"`
	Result    AnalysisResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
