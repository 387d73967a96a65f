package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/domain"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/service"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/view"
)

// RunAnalyze sends one video to the backend and prints the feedback.
func RunAnalyze(client service.Analyzer, args []string, out io.Writer) error {
	if len(args) < 2 {
		return errors.New(usage)
	}
	videoPath, student := args[0], args[1]
	stroke := domain.DefaultStroke.String()
	if len(args) > 2 {
		stroke = args[2]
	}

	f, err := os.Open(videoPath)
	if err != nil {
		return fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat video: %w", err)
	}

	req := domain.AnalysisRequest{
		StudentName: student,
		StrokeType:  domain.StrokeType(stroke),
		Video: &domain.VideoFile{
			Filename:    filepath.Base(videoPath),
			ContentType: mime.TypeByExtension(filepath.Ext(videoPath)),
			Size:        info.Size(),
			Reader:      f,
		},
	}
	if err := req.Validate(); err != nil {
		return err
	}

	result, err := client.Analyze(context.Background(), req)
	if err != nil {
		return err
	}
	return view.WriteText(out, view.Build(result))
}

// RunPing reports whether the backend answers.
func RunPing(client *service.AnalyzerClient, out io.Writer) error {
	if err := client.Ping(context.Background()); err != nil {
		return fmt.Errorf("analyzer at %s is unreachable: %w", client.BaseURL(), err)
	}
	_, err := fmt.Fprintf(out, "analyzer at %s is up\n", client.BaseURL())
	return err
}
