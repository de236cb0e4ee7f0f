package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cords_connector/internal/models"
	"cords_connector/internal/store"
)

// AddConnector registers a new data-space connector instance.
func AddConnector(connectors ConnectorStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			ID              string `json:"id" binding:"required"`
			Name            string `json:"name" binding:"required"`
			Type            string `json:"type" binding:"required"`
			Description     string `json:"description" binding:"required"`
			PublicKey       string `json:"public_key" binding:"required"`
			AccessURL       string `json:"access_url" binding:"required,url"`
			ReverseProxyURL string `json:"reverse_proxy_url" binding:"required,url"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}

		connector := models.DataSpaceConnector{
			ConnectorID:     in.ID,
			Name:            in.Name,
			Type:            in.Type,
			Description:     in.Description,
			PublicKey:       in.PublicKey,
			AccessURL:       in.AccessURL,
			ReverseProxyURL: in.ReverseProxyURL,
			Timestamp:       models.Timestamp(),
		}
		if err := connectors.Add(&connector); err != nil {
			if errors.Is(err, store.ErrDuplicateID) {
				c.JSON(http.StatusConflict, failed("Error Occurred", "Id already exists"))
				return
			}
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", "Data base insert failed"))
			return
		}

		c.JSON(http.StatusCreated, connector)
	}
}

// GetConnector returns connector information by id.
func GetConnector(connectors ConnectorStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		connector, err := connectors.ByID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}
		if connector == nil {
			c.JSON(http.StatusNotFound, failed("Error Occurred", "Connector not found"))
			return
		}
		c.JSON(http.StatusOK, connector)
	}
}
