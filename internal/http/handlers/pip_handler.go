package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cords_connector/internal/pip"
)

// Access answers the remaining access count for (consumer, target) as a
// plain-text integer. A resource with no governing policy is 404, not a
// silent count.
func Access(pdp *pip.PDP) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetURI := c.Query("targetUri")
		consumerURI := c.Query("consumerUri")

		if targetURI == "" || consumerURI == "" {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}

		count, err := pdp.CheckAndDecrement(consumerURI, targetURI)
		if err != nil {
			if errors.Is(err, pip.ErrNoPolicy) {
				c.JSON(http.StatusNotFound, failed("Error Occurred", err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}

		c.String(http.StatusOK, strconv.Itoa(count))
	}
}

// Purpose reports the purpose bound to an access request. Static until a
// purpose registry exists upstream.
func Purpose() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("targetUri") == "" || c.Query("consumerUri") == "" {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}
		c.String(http.StatusOK, "Marketing")
	}
}

// Role reports the role bound to an access request.
func Role() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("targetUri") == "" || c.Query("consumerUri") == "" {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}
		c.String(http.StatusOK, "User")
	}
}
