package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ekurt/campusreg/internal/app/controllers"
	"github.com/ekurt/campusreg/internal/middleware"
)

// SetupRouter configures all application routes. Reads are public; every
// mutation and the dashboard sit behind the session cookie.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	collegeController *controllers.CollegeController,
	programController *controllers.ProgramController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
	uploadsDir string,
) {
	api := router.Group("/api")

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// --- Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/signup", authController.Signup)
		auth.POST("/logout", authController.Logout)
		auth.GET("/status", authController.Status)

		authProtected := auth.Group("")
		authProtected.Use(authMiddleware.SessionAuth())
		{
			authProtected.GET("/dashboard", authController.GetDashboardStats)
			authProtected.GET("/dashboard/charts", authController.GetDashboardCharts)
		}
	}

	// --- College routes ---
	colleges := api.Group("/colleges")
	{
		colleges.GET("", collegeController.ListColleges)
		colleges.GET("/stats", collegeController.GetCollegeStats)
		colleges.GET("/:code", collegeController.GetCollege)

		collegesProtected := colleges.Group("")
		collegesProtected.Use(authMiddleware.SessionAuth())
		{
			collegesProtected.POST("", collegeController.CreateCollege)
			collegesProtected.PUT("/:code", collegeController.UpdateCollege)
			collegesProtected.DELETE("/:code", collegeController.DeleteCollege)
		}
	}

	// --- Program routes ---
	programs := api.Group("/programs")
	{
		programs.GET("", programController.ListPrograms)
		programs.GET("/stats", programController.GetProgramStats)
		programs.GET("/:code", programController.GetProgram)

		programsProtected := programs.Group("")
		programsProtected.Use(authMiddleware.SessionAuth())
		{
			programsProtected.POST("", programController.CreateProgram)
			programsProtected.PUT("/:code", programController.UpdateProgram)
			programsProtected.DELETE("/:code", programController.DeleteProgram)
		}
	}

	// --- Student routes ---
	students := api.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.GET("/stats", studentController.GetStudentStats)
		students.GET("/:id", studentController.GetStudent)

		studentsProtected := students.Group("")
		studentsProtected.Use(authMiddleware.SessionAuth())
		{
			studentsProtected.POST("", studentController.CreateStudent)
			studentsProtected.PUT("/:id", studentController.UpdateStudent)
			studentsProtected.DELETE("/:id", studentController.DeleteStudent)
			studentsProtected.POST("/:id/photo", studentController.UploadPhoto)
			studentsProtected.DELETE("/:id/photo", studentController.DeletePhoto)
		}
	}

	// Uploaded profile photos are served as static files
	router.Static("/uploads", uploadsDir)
}
