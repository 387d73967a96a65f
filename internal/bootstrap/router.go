package bootstrap

import (
	"fmt"
	"time"

	httpapi "github.com/GoSim-25-26J-441/stroke-coach/internal/api/http"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/api/http/middleware"
	sahttp "github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/http"
	"github.com/GoSim-25-26J-441/stroke-coach/internal/stroke_analysis/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Analyzer       *service.AnalyzerClient
	Submissions    *service.SubmissionService
	HandoffStore   httpapi.Pinger
	MaxUploadBytes int64
	CORSOrigins    []string
	SecureCookies  bool
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	tmpl, err := sahttp.Templates()
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.SetHTMLTemplate(tmpl)
	r.MaxMultipartMemory = sahttp.MultipartMemory

	checks := []httpapi.HealthCheck{{Name: "analyzer", Pinger: dep.Analyzer}}
	if dep.HandoffStore != nil {
		checks = append(checks, httpapi.HealthCheck{Name: "handoff_store", Pinger: dep.HandoffStore})
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, checks...)
	healthHandler.RegisterRoutes(r)

	handler := sahttp.New(dep.Submissions, dep.MaxUploadBytes)

	pages := r.Group("/")
	pages.Use(middleware.SessionMiddleware(dep.SecureCookies))
	handler.RegisterPages(pages)

	api := r.Group("/api/v1")
	api.Use(cors.New(corsConfig(dep.CORSOrigins)))
	api.Use(middleware.SessionMiddleware(dep.SecureCookies))
	handler.RegisterAPI(api)

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
