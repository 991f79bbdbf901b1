package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/app/services"
	"github.com/ekurt/campusreg/internal/middleware"
	"github.com/ekurt/campusreg/internal/pkg/helpers"
)

// StudentController handles student-related endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// ListStudents handles GET /students. Besides the shared list parameters it
// accepts a course query parameter restricting results to one program.
func (c *StudentController) ListStudents(ctx *gin.Context) {
	params := helpers.ParseListParams(ctx, "id", "id", "firstname", "lastname", "course", "year")

	students, total, err := c.studentService.ListStudents(ctx, params, ctx.Query("course"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListResponse{
		Items: students,
		Total: total,
		Page:  params.Page,
		Pages: helpers.Pages(total, params.PerPage),
	})
}

// GetStudent handles GET /students/:id
func (c *StudentController) GetStudent(ctx *gin.Context) {
	student, err := c.studentService.GetStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// CreateStudent handles POST /students
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	student, err := c.studentService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// UpdateStudent handles PUT /students/:id
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// DeleteStudent handles DELETE /students/:id; the stored profile photo is
// removed along with the record.
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Student deleted successfully"})
}

// GetStudentStats handles GET /students/stats
func (c *StudentController) GetStudentStats(ctx *gin.Context) {
	stats, err := c.studentService.GetStudentStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// UploadPhoto handles POST /students/:id/photo with a multipart "photo"
// field. A previously stored photo is replaced.
func (c *StudentController) UploadPhoto(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "No photo file provided"})
		return
	}

	photo, err := c.studentService.UploadPhoto(ctx, ctx.Param("id"), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, photo)
}

// DeletePhoto handles DELETE /students/:id/photo
func (c *StudentController) DeletePhoto(ctx *gin.Context) {
	if err := c.studentService.DeletePhoto(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Profile photo removed"})
}
