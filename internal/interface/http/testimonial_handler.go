package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/juicyplanet/internal/application"
	"github.com/oksasatya/juicyplanet/internal/interface/middleware"
	"github.com/oksasatya/juicyplanet/pkg/response"
)

type TestimonialHandler struct {
	Svc *application.TestimonialService
}

func NewTestimonialHandler(svc *application.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{Svc: svc}
}

type createTestimonialRequest struct {
	Author  string `json:"author" binding:"omitempty,max=100"`
	Message string `json:"message" binding:"required,max=2000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

// List GET /api/testimonials
func (h *TestimonialHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.Svc.List(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "testimonials", nil)
}

// Create POST /api/testimonials (auth)
func (h *TestimonialHandler) Create(c *gin.Context) {
	var req createTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	author := req.Author
	if author == "" {
		author = c.GetString(middleware.CtxUserEmailKey)
	}
	t, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.CreateTestimonialInput{
		Author:  author,
		Message: req.Message,
		Rating:  req.Rating,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "testimonial created", nil)
}

// Delete DELETE /api/testimonials/:id (auth, author only)
func (h *TestimonialHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "testimonial deleted", nil)
}
