package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"medistore/internal/catalog"
)

type medicineRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Stock       *int             `json:"stock"`
	Image       string           `json:"image"`
	CategoryID  string           `json:"categoryId" binding:"required"`
}

// medicineUpdateRequest leaves a field unchanged when it is absent.
type medicineUpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Image       *string          `json:"image"`
	CategoryID  *string          `json:"categoryId"`
}

func (a *api) createMedicine(c *gin.Context) {
	var req medicineRequest
	if !bind(c, &req, "Name, price, and category are required") {
		return
	}
	m, err := a.Catalog.CreateMedicine(c.Request.Context(), identity(c).ID, catalog.MedicineInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Medicine added successfully", m)
}

func (a *api) sellerMedicines(c *gin.Context) {
	meds, err := a.Catalog.SellerMedicines(c.Request.Context(), identity(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Seller medicines fetched successfully", meds)
}

func (a *api) updateMedicine(c *gin.Context) {
	var req medicineUpdateRequest
	if !bind(c, &req, "Invalid medicine fields") {
		return
	}
	m, err := a.Catalog.UpdateMedicine(c.Request.Context(), identity(c).ID, c.Param("id"), catalog.MedicineUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Medicine updated successfully", m)
}

func (a *api) deleteMedicine(c *gin.Context) {
	if err := a.Catalog.DeleteMedicine(c.Request.Context(), identity(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Medicine deleted successfully", nil)
}
