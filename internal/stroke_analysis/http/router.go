package http

import "github.com/gin-gonic/gin"

// RegisterPages registers the three screens and the form post.
func (h *Handler) RegisterPages(r gin.IRouter) {
	r.GET("/", h.home)
	r.GET("/analyze", h.uploadForm)
	r.POST("/analyze", h.submit)
	r.GET("/results", h.results)
}

// RegisterAPI registers the JSON routes.
func (h *Handler) RegisterAPI(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/results/:id", h.getResult)
	rg.GET("/metrics", h.metrics)
}
