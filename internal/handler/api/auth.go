package api

import (
	"net/http"

	reqdto "hotel-backoffice/internal/handler/dto/request"
	resdto "hotel-backoffice/internal/handler/dto/response"
	"hotel-backoffice/internal/pkg/cookie"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
}

func NewAuthHandler(authCommands commands.AuthCommands) *AuthHandler {
	return &AuthHandler{authCommands: authCommands}
}

// @Summary Staff login
// @Description Authenticate staff and issue an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	out, err := h.authCommands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errs.Is(err, commands.ErrStaffDeactivated):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is deactivated",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	cookie.SetAccessToken(c, out.Token, 24*60*60)
	c.JSON(http.StatusOK, resdto.FromLoginOutput(out))
}

// @Summary Staff logout
// @Description Clear the access token cookie
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessToken(c)
	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Logged out"})
}

// @Summary Register staff
// @Description Register a new staff member (admin only)
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterStaffRequest true "Staff registration"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/staff [post]
func (h *AuthHandler) RegisterStaff(c *gin.Context) {
	var req reqdto.RegisterStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	staffID, err := h.authCommands.RegisterStaff(c.Request.Context(), commands.RegisterStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email is already registered",
			})
		case errs.Is(err, commands.ErrInvalidRole), errs.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: staffID})
}
