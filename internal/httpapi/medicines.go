package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medistore/internal/catalog"
)

type reviewRequest struct {
	MedicineID string `json:"medicineId" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment"`
}

func (a *api) categories(c *gin.Context) {
	cats, err := a.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Categories fetched successfully", cats)
}

func (a *api) medicines(c *gin.Context) {
	meds, err := a.Catalog.ListMedicines(c.Request.Context(), catalog.Filter{
		CategoryID: c.Query("category"),
		Search:     c.Query("search"),
		MinPrice:   c.Query("minPrice"),
		MaxPrice:   c.Query("maxPrice"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Medicines fetched successfully", meds)
}

func (a *api) medicine(c *gin.Context) {
	m, err := a.Catalog.GetMedicine(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Medicine details fetched successfully", m)
}

func (a *api) addReview(c *gin.Context) {
	var req reviewRequest
	if !bind(c, &req, "MedicineId and rating are required") {
		return
	}
	r, err := a.Catalog.AddReview(c.Request.Context(), identity(c).ID, catalog.ReviewInput{
		MedicineID: req.MedicineID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Review added successfully", r)
}
