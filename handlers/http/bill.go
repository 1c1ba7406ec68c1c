package httpHandler

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"waterbill-server/pdf"
	"waterbill-server/repositories"
	"waterbill-server/usecases"
)

type BillHandler struct {
	useCase  *usecases.BillUseCase
	users    repositories.UserRepository
	renderer *pdf.Renderer
	logger   zerolog.Logger
}

func NewBillHandler(useCase *usecases.BillUseCase, users repositories.UserRepository, renderer *pdf.Renderer, logger zerolog.Logger) *BillHandler {
	return &BillHandler{
		useCase:  useCase,
		users:    users,
		renderer: renderer,
		logger:   logger,
	}
}

// DownloadBill handles GET /api/v1/bills/:id/download. The bill lookup is
// scoped by the requester's gram panchayat, so a bill from another tenant
// is a 404. The rendered file is removed on every exit path.
func (h *BillHandler) DownloadBill(c *gin.Context) {
	billID := c.Param("id")

	user, err := h.users.GetByID(c.GetString("user_id"))
	if err != nil {
		respondError(c, &usecases.NotFoundError{Message: "User not found"})
		return
	}

	gramPanchayatID := ""
	if user.GramPanchayatID != nil {
		gramPanchayatID = *user.GramPanchayatID
	}

	bill, gp, err := h.useCase.GetBillForDownload(billID, gramPanchayatID)
	if err != nil {
		respondError(c, err)
		return
	}

	path, err := h.renderer.RenderBill(bill, bill.House, gp)
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			h.logger.Warn().Err(err).Str("path", path).Msg("failed to delete temporary bill PDF")
		}
	}()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bill_%s.pdf", bill.BillNumber))
	c.File(path)
}
