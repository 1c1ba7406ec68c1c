package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"waterbill-server/entities"
	"waterbill-server/usecases"
)

type AuthHandler struct {
	useCase *usecases.AuthUseCase
}

func NewAuthHandler(useCase *usecases.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		useCase: useCase,
	}
}

type registerRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Mobile        string `json:"mobile"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	GramPanchayat string `json:"gramPanchayat"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	user, err := h.useCase.Register(usecases.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Mobile:          req.Mobile,
		Password:        req.Password,
		Role:            entities.Role(req.Role),
		GramPanchayatID: req.GramPanchayat,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "User created successfully", gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"gramPanchayat": user.GramPanchayat,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	token, user, err := h.useCase.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// RequestOTP handles POST /api/v1/auth/request-otp
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	message, err := h.useCase.RequestLoginOTP(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, message, gin.H{"email": req.Email})
}

// VerifyLoginOTP handles POST /api/v1/auth/verify-login-otp
func (h *AuthHandler) VerifyLoginOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	token, user, err := h.useCase.VerifyLoginOTP(req.Email, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if err := h.useCase.ForgotPassword(req.Email); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "OTP sent to your email", nil)
}

// VerifyOTP handles POST /api/v1/auth/verify-otp. Read-only: it does not
// consume the code.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if err := h.useCase.VerifyOTP(req.Email, req.OTP); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "OTP verified successfully", nil)
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if err := h.useCase.ResetPassword(req.Email, req.OTP, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Password reset successfully", nil)
}

// GetProfile handles GET /api/v1/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	profile, err := h.useCase.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Profile retrieved successfully", profile)
}
