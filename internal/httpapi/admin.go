package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medistore/internal/models"
)

type statusRequest struct {
	Status models.UserStatus `json:"status" binding:"required"`
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (a *api) stats(c *gin.Context) {
	st, err := a.Admin.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Dashboard stats fetched successfully", st)
}

func (a *api) users(c *gin.Context) {
	users, err := a.Admin.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Users fetched successfully", users)
}

func (a *api) updateUserStatus(c *gin.Context) {
	var req statusRequest
	if !bind(c, &req, "Invalid status. Must be active or blocked") {
		return
	}
	u, err := a.Admin.UpdateUserStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "User status updated successfully", u)
}

func (a *api) createCategory(c *gin.Context) {
	var req categoryRequest
	if !bind(c, &req, "Name is required") {
		return
	}
	cat, err := a.Admin.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Category created successfully", cat)
}
