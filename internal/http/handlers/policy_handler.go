package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"cords_connector/internal/models"
)

// AddPolicy stores a new policy and links it to a resource.
func AddPolicy(policies PolicyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			ResourceID     string                 `json:"resource_id" binding:"required"`
			PolicyType     string                 `json:"policy_type" binding:"required"`
			PolicyMetadata map[string]interface{} `json:"policy_metadata" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}

		policyID := models.HashedID(map[string]interface{}{
			"resource_id":     in.ResourceID,
			"policy_type":     in.PolicyType,
			"policy_metadata": in.PolicyMetadata,
		})
		metaJSON, _ := json.Marshal(in.PolicyMetadata)

		policy := models.Policy{
			PolicyID:       policyID,
			ResourceID:     in.ResourceID,
			PolicyType:     in.PolicyType,
			PolicyMetadata: datatypes.JSON(metaJSON),
			Timestamp:      models.Timestamp(),
		}
		if err := policies.Add(&policy); err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", "Database Insert Failed"))
			return
		}

		c.JSON(http.StatusCreated, policy)
	}
}

// GetPolicies returns the policies linked to a resource, 404 when none.
func GetPolicies(policies PolicyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceID := c.Param("resource_id")

		list, err := policies.ByResource(resourceID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}
		if len(list) == 0 {
			c.JSON(http.StatusNotFound, failed("Not found", "No policies for resource"))
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// RemovePolicy deletes a policy by its policy_id.
func RemovePolicy(policies PolicyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		policyID := c.Param("policy_id")

		removed, err := policies.Remove(policyID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}
		if !removed {
			c.JSON(http.StatusNotFound, failed("Not found", "No policy matches the provided ID"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "policy_id": policyID})
	}
}
