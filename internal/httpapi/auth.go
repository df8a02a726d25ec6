package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medistore/internal/auth"
	"medistore/internal/models"
)

type registerRequest struct {
	Email    string      `json:"email" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *api) register(c *gin.Context) {
	var req registerRequest
	if !bind(c, &req, "Email, password, and name are required") {
		return
	}
	sess, err := a.Auth.Register(c.Request.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "User registered successfully", sess)
}

func (a *api) login(c *gin.Context) {
	var req loginRequest
	if !bind(c, &req, "Email and password are required") {
		return
	}
	sess, err := a.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Login successful", sess)
}

func (a *api) me(c *gin.Context) {
	u, err := a.Auth.Me(c.Request.Context(), identity(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "User fetched successfully", u)
}
