package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/app/services"
	"github.com/ekurt/campusreg/internal/middleware"
	"github.com/ekurt/campusreg/internal/pkg/helpers"
)

// CollegeController handles college-related endpoints
type CollegeController struct {
	collegeService *services.CollegeService
}

// NewCollegeController creates a new CollegeController
func NewCollegeController(collegeService *services.CollegeService) *CollegeController {
	return &CollegeController{collegeService: collegeService}
}

// ListColleges handles GET /colleges with pagination, search and sorting
func (c *CollegeController) ListColleges(ctx *gin.Context) {
	params := helpers.ParseListParams(ctx, "code", "code", "name")

	colleges, total, err := c.collegeService.ListColleges(ctx, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{
		Items: colleges,
		Total: total,
		Page:  params.Page,
		Pages: helpers.Pages(total, params.PerPage),
	})
}

// GetCollege handles GET /colleges/:code
func (c *CollegeController) GetCollege(ctx *gin.Context) {
	detail, err := c.collegeService.GetCollege(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// CreateCollege handles POST /colleges
func (c *CollegeController) CreateCollege(ctx *gin.Context) {
	var req dto.CollegeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	college, err := c.collegeService.CreateCollege(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, college)
}

// UpdateCollege handles PUT /colleges/:code; the code itself is immutable
func (c *CollegeController) UpdateCollege(ctx *gin.Context) {
	var req dto.CollegeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	college, err := c.collegeService.UpdateCollege(ctx, ctx.Param("code"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, college)
}

// DeleteCollege handles DELETE /colleges/:code. Programs under the college
// are detached, not removed; the response reports how many.
func (c *CollegeController) DeleteCollege(ctx *gin.Context) {
	detached, err := c.collegeService.DeleteCollege(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteResponse{
		Message:          "College deleted successfully",
		DetachedChildren: detached,
	})
}

// GetCollegeStats handles GET /colleges/stats
func (c *CollegeController) GetCollegeStats(ctx *gin.Context) {
	stats, err := c.collegeService.GetCollegeStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
