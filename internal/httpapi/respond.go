package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"medistore/internal/apperr"
)

// envelope is the body of every response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

// fail writes err as an error envelope and aborts the chain. Internal errors
// are logged and never shown to the client.
func fail(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) || e.Kind == apperr.Internal {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, envelope{
			Message: "Internal server error",
			Error:   apperr.Internal.String(),
		})
		return
	}
	c.AbortWithStatusJSON(e.Kind.Status(), envelope{Message: e.Message, Error: e.Kind.String()})
}

// bind decodes the JSON body into req. A body that is not JSON is reported
// as "Invalid request body"; one that breaks req's binding rules gets invalid.
func bind(c *gin.Context, req any, invalid string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fail(c, apperr.New(apperr.Validation, "%s", invalid))
	} else {
		fail(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	return false
}
