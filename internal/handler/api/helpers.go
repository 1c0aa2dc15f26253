package api

import (
	"net/http"

	"hotel-backoffice/internal/handler/middleware"
	"hotel-backoffice/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func requireStaffID(c *gin.Context) (uuid.UUID, bool) {
	staffID, ok := middleware.GetStaffID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, false
	}
	return staffID, true
}

// Read-side errors carry repository kinds rather than command sentinels.
func writeNotFoundOrInternal(c *gin.Context, err error, msg string) {
	if infra.IsKind(err, infra.KindNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": msg,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
