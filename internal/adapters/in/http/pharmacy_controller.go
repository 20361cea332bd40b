package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeductStockRequest struct {
	ClinicID   uuid.UUID `json:"clinicId" binding:"required" validate:"required"`
	MedicineID uuid.UUID `json:"medicineId" binding:"required" validate:"required"`
	Quantity   int       `json:"quantity" validate:"gt=0"`
}

func (c *Controller) deductStock(ctx *gin.Context) {
	var req DeductStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := c.validate.Struct(req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batches, err := c.pharmacy.DeductStock(ctx.Request.Context(), req.ClinicID, req.MedicineID, req.Quantity)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"batches": batches})
}
