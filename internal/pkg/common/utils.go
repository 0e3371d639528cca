package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID returns a random UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteError writes err as an ErrorResponse, including details only when debug is set
func WriteError(c *gin.Context, err error, debug bool) {
	ce := AsCustomError(err)
	resp := ErrorResponse{
		Code:    ce.Code,
		Message: ce.Message,
	}
	if debug && ce.Err != nil {
		resp.Details = ce.Err.Error()
	}
	c.AbortWithStatusJSON(ce.Status, resp)
}
