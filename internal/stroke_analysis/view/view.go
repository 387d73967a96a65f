// Package view turns an analysis payload into the sections shown on the
// result screen. The HTML templates and the CLI both render from it.
package view

import (
	"fmt"
	"io"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
)

const (
	DoingWellTitle = "What You're Doing Well"
	WorkOnTitle    = "What to Improve"

	DoingWellEmpty = "No positives detected yet."
	WorkOnEmpty    = "No issues detected. Great job!"

	NoDataMessage = "No analysis data available. Try running a new analysis."
)

// Section is one labelled list of suggestions.
type Section struct {
	Title        string
	Items        []string
	EmptyMessage string
	Tone         string // "good" or "bad", used as a CSS class
}

func (s Section) Empty() bool { return len(s.Items) == 0 }

// ResultView is everything the result screen needs.
type ResultView struct {
	Header     string
	Student    string
	Stroke     string
	DoingWell  Section
	WorkOn     Section
	FrameCount int
	Metrics    int
}

// Summary is the "N frames · M metrics" line, or "" when the backend sent
// neither.
func (v ResultView) Summary() string {
	if v.FrameCount == 0 && v.Metrics == 0 {
		return ""
	}
	return fmt.Sprintf("%s · %s", plural(v.FrameCount, "frame"), plural(v.Metrics, "metric"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Build copies the lists so the view keeps backend order without aliasing
// the payload.
func Build(r *domain.AnalysisResult) ResultView {
	return ResultView{
		Header:  fmt.Sprintf("%s — %s", r.Student, r.Stroke),
		Student: r.Student,
		Stroke:  r.Stroke,
		DoingWell: Section{
			Title:        DoingWellTitle,
			Items:        append([]string(nil), r.Suggestions.DoingWell...),
			EmptyMessage: DoingWellEmpty,
			Tone:         "good",
		},
		WorkOn: Section{
			Title:        WorkOnTitle,
			Items:        append([]string(nil), r.Suggestions.WorkOn...),
			EmptyMessage: WorkOnEmpty,
			Tone:         "bad",
		},
		FrameCount: len(r.Frames),
		Metrics:    len(r.Metrics),
	}
}

// WriteText renders v as plain text, one line per suggestion.
func WriteText(w io.Writer, v ResultView) error {
	if _, err := fmt.Fprintf(w, "%s\n", v.Header); err != nil {
		return err
	}
	if summary := v.Summary(); summary != "" {
		if _, err := fmt.Fprintf(w, "%s\n", summary); err != nil {
			return err
		}
	}
	for _, s := range []Section{v.DoingWell, v.WorkOn} {
		if _, err := fmt.Fprintf(w, "\n%s\n", s.Title); err != nil {
			return err
		}
		if s.Empty() {
			if _, err := fmt.Fprintf(w, "  %s\n", s.EmptyMessage); err != nil {
				return err
			}
			continue
		}
		for _, item := range s.Items {
			if _, err := fmt.Fprintf(w, "  - %s\n", item); err != nil {
				return err
			}
		}
	}
	return nil
}
