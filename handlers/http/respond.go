package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"waterbill-server/usecases"
)

// respondOK writes the success envelope.
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError maps the usecase error taxonomy onto HTTP statuses and the
// error envelope. Unclassified errors become a 500 with the message echoed.
func respondError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *usecases.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": e.Message})
	case *usecases.AuthError:
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": e.Message})
	case *usecases.NotFoundError:
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": e.Message})
	case *usecases.DeliveryError:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": e.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
			"error":   err.Error(),
		})
	}
}
