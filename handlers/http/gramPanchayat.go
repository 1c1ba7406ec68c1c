package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"waterbill-server/entities"
	"waterbill-server/repositories"
	"waterbill-server/usecases"
)

type GramPanchayatHandler struct {
	useCase *usecases.GramPanchayatUseCase
	users   repositories.UserRepository
}

func NewGramPanchayatHandler(useCase *usecases.GramPanchayatUseCase, users repositories.UserRepository) *GramPanchayatHandler {
	return &GramPanchayatHandler{
		useCase: useCase,
		users:   users,
	}
}

func (h *GramPanchayatHandler) requireSuperAdmin(c *gin.Context) bool {
	user, err := h.users.GetByID(c.GetString("user_id"))
	if err != nil || user.Role != entities.RoleSuperAdmin {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized"})
		return false
	}
	return true
}

// Create handles POST /api/v1/gram-panchayats (super_admin only).
func (h *GramPanchayatHandler) Create(c *gin.Context) {
	if !h.requireSuperAdmin(c) {
		return
	}

	var gp entities.GramPanchayat
	if err := c.ShouldBindJSON(&gp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if err := h.useCase.Create(&gp); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Gram Panchayat created successfully", gp)
}

// GetAll handles GET /api/v1/gram-panchayats
func (h *GramPanchayatHandler) GetAll(c *gin.Context) {
	gps, err := h.useCase.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Gram Panchayats retrieved successfully", gps)
}

// GetByID handles GET /api/v1/gram-panchayats/:id
func (h *GramPanchayatHandler) GetByID(c *gin.Context) {
	gp, err := h.useCase.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Gram Panchayat retrieved successfully", gp)
}
