package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ekurt/campusreg/internal/app/models/dto"
	"github.com/ekurt/campusreg/internal/app/services"
	"github.com/ekurt/campusreg/internal/middleware"
	"github.com/ekurt/campusreg/internal/pkg/auth"
	"github.com/ekurt/campusreg/internal/pkg/logger"
)

// AuthController handles authentication and the dashboard endpoints
type AuthController struct {
	authService      *services.AuthService
	dashboardService *services.DashboardService
	sessions         *auth.SessionService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, dashboardService *services.DashboardService, sessions *auth.SessionService) *AuthController {
	return &AuthController{
		authService:      authService,
		dashboardService: dashboardService,
		sessions:         sessions,
	}
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.sessions.CookieName(), token, maxAge, "/", "", c.sessions.Secure(), true)
}

// Login handles POST /auth/login. A successful login issues the session
// cookie; bad credentials answer 401 without revealing which field failed.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, err := c.sessions.IssueToken(user.ID, user.Username)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to issue session token")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An unexpected error occurred"})
		return
	}
	c.setSessionCookie(ctx, token, c.sessions.MaxAge())

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    dto.NewUserInfo(user),
	})
}

// Signup handles POST /auth/signup. Registration does not log the user in;
// the client follows up with a login request.
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := c.authService.Signup(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "Account created successfully",
		User:    dto.NewUserInfo(user),
	})
}

// Logout handles POST /auth/logout by expiring the session cookie. It
// succeeds whether or not a session was present.
func (c *AuthController) Logout(ctx *gin.Context) {
	c.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Status handles GET /auth/status. It answers 200 regardless of session
// state so the frontend can probe without triggering auth errors.
func (c *AuthController) Status(ctx *gin.Context) {
	token, err := ctx.Cookie(c.sessions.CookieName())
	if err != nil || token == "" {
		ctx.JSON(http.StatusOK, dto.AuthStatusResponse{IsAuthenticated: false})
		return
	}

	claims, err := c.sessions.ValidateToken(token)
	if err != nil {
		ctx.JSON(http.StatusOK, dto.AuthStatusResponse{IsAuthenticated: false})
		return
	}

	user, err := c.authService.GetUser(ctx, claims.UserID)
	if err != nil {
		// Session refers to a user that no longer exists
		ctx.JSON(http.StatusOK, dto.AuthStatusResponse{IsAuthenticated: false})
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthStatusResponse{
		IsAuthenticated: true,
		User:            dto.NewUserInfo(user),
	})
}

// GetDashboardStats handles GET /auth/dashboard
func (c *AuthController) GetDashboardStats(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetDashboardCharts handles GET /auth/dashboard/charts
func (c *AuthController) GetDashboardCharts(ctx *gin.Context) {
	charts, err := c.dashboardService.GetCharts(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, charts)
}
