package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/voltshop/inventory-api/internal/service"
	"github.com/voltshop/inventory-api/internal/utils"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Name     string `json:"name"`
		Surname  string `json:"surname"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_PARAMETERS", "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Name, req.Surname, req.Password, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 201, "Account created", gin.H{"user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_PARAMETERS", "Invalid request body")
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}
