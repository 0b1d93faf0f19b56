package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/akinmix/sibelgpt-backend/internal/model"
	"github.com/akinmix/sibelgpt-backend/internal/repository"
	"github.com/akinmix/sibelgpt-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// PDFHandler serves listing summary PDFs
type PDFHandler struct {
	repo *repository.ListingRepository
}

// NewPDFHandler creates a new PDF handler
func NewPDFHandler(repo *repository.ListingRepository) *PDFHandler {
	return &PDFHandler{repo: repo}
}

// Generate handles GET /generate-property-pdf/:id
func (h *PDFHandler) Generate(c *gin.Context) {
	listingID := strings.TrimSpace(c.Param("id"))
	if listingID == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Geçersiz ilan numarası"})
		return
	}

	row, err := h.repo.GetListingByNo(c.Request.Context(), listingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "İlan bilgisi alınamadı"})
		return
	}
	if row == nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "İlan bulunamadı: " + listingID})
		return
	}
	if row.ListingID == "" {
		row.ListingID = row.IlanNo
	}

	pdfBytes, err := service.RenderListingPDF(*row)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "PDF oluşturulamadı"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ilan-%s.pdf", row.ListingID))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
