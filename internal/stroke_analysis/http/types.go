package http

import (
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/view"
)

const appTitle = "Tennis Technique Analyzer"

type strokeOption struct {
	Value    string
	Label    string
	Selected bool
}

type homePage struct {
	Title string
}

type uploadPage struct {
	Title       string
	StudentName string
	Strokes     []strokeOption
	Alert       string
	MaxUploadMB int64
}

type resultsPage struct {
	Title         string
	NoData        bool
	NoDataMessage string
	View          view.ResultView
	Sections      []view.Section
}

// analyzeResponse is the JSON answer of POST /api/v1/analyze.
type analyzeResponse struct {
	HandoffID string `json:"handoff_id"`
	domain.AnalysisResult
}

type errorBody struct {
	Error string `json:"error"`
}

func newUploadPage(studentName, stroke string, maxUploadBytes int64) uploadPage {
	selected, err := domain.ParseStroke(stroke)
	if err != nil {
		selected = domain.DefaultStroke
	}
	opts := make([]strokeOption, 0, len(domain.AllStrokes()))
	for _, st := range domain.AllStrokes() {
		opts = append(opts, strokeOption{
			Value:    st.String(),
			Label:    st.Label(),
			Selected: st == selected,
		})
	}
	return uploadPage{
		Title:       "Analyze Stroke · " + appTitle,
		StudentName: studentName,
		Strokes:     opts,
		MaxUploadMB: maxUploadBytes >> 20,
	}
}

func newResultsPage(r *domain.AnalysisResult) resultsPage {
	if r == nil {
		return resultsPage{
			Title:         "Results · " + appTitle,
			NoData:        true,
			NoDataMessage: view.NoDataMessage,
		}
	}
	v := view.Build(r)
	return resultsPage{
		Title:    v.Header + " · " + appTitle,
		View:     v,
		Sections: []view.Section{v.DoingWell, v.WorkOn},
	}
}
