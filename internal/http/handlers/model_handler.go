package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"cords_connector/internal/models"
)

// AddModel registers a new ML model entry.
func AddModel(mlModels ModelStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Name         string                 `json:"name" binding:"required"`
			Version      string                 `json:"version" binding:"required"`
			Description  string                 `json:"description" binding:"required"`
			Semantics    map[string]interface{} `json:"semantics" binding:"required"`
			ArtifactPath string                 `json:"artifact_path"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}

		modelID := models.HashedID(map[string]interface{}{
			"name":        in.Name,
			"version":     in.Version,
			"description": in.Description,
		})
		semJSON, _ := json.Marshal(in.Semantics)

		model := models.MLModel{
			ModelID:      modelID,
			Name:         in.Name,
			Version:      in.Version,
			Description:  in.Description,
			Semantics:    datatypes.JSON(semJSON),
			ArtifactPath: in.ArtifactPath,
			Timestamp:    models.Timestamp(),
		}
		if err := mlModels.Add(&model); err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", "Database Insert Failed"))
			return
		}

		c.JSON(http.StatusCreated, model)
	}
}

// GetModel returns an ML model entry by id.
func GetModel(mlModels ModelStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		model, err := mlModels.ByID(c.Param("model_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}
		if model == nil {
			c.JSON(http.StatusNotFound, failed("Not found", "Model not found"))
			return
		}
		c.JSON(http.StatusOK, model)
	}
}
