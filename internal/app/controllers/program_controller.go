package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/app/services"
	"github.com/ekurt/campusreg/internal/middleware"
	"github.com/ekurt/campusreg/internal/pkg/helpers"
)

// ProgramController handles program-related endpoints
type ProgramController struct {
	programService *services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService *services.ProgramService) *ProgramController {
	return &ProgramController{programService: programService}
}

// ListPrograms handles GET /programs. Besides the shared list parameters it
// accepts a college query parameter restricting results to one college.
func (c *ProgramController) ListPrograms(ctx *gin.Context) {
	params := helpers.ParseListParams(ctx, "code", "code", "name", "college")

	programs, total, err := c.programService.ListPrograms(ctx, params, ctx.Query("college"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{
		Items: programs,
		Total: total,
		Page:  params.Page,
		Pages: helpers.Pages(total, params.PerPage),
	})
}

// GetProgram handles GET /programs/:code
func (c *ProgramController) GetProgram(ctx *gin.Context) {
	detail, err := c.programService.GetProgram(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// CreateProgram handles POST /programs
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	var req dto.ProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	program, err := c.programService.CreateProgram(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, program)
}

// UpdateProgram handles PUT /programs/:code. A changed code runs the
// cascading rename and the response reports the carried student rows.
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	var req dto.ProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := c.programService.UpdateProgram(ctx, ctx.Param("code"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// DeleteProgram handles DELETE /programs/:code. Enrolled students are
// detached, not removed; the response reports how many.
func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	detached, err := c.programService.DeleteProgram(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteResponse{
		Message:          "Program deleted successfully",
		DetachedChildren: detached,
	})
}

// GetProgramStats handles GET /programs/stats
func (c *ProgramController) GetProgramStats(ctx *gin.Context) {
	stats, err := c.programService.GetProgramStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
