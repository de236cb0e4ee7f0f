package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"cords_connector/internal/models"
)

type flServiceInput struct {
	Name            string                 `json:"name" binding:"required"`
	Description     string                 `json:"description" binding:"required"`
	FLSession       map[string]interface{} `json:"fl_session" binding:"required"`
	FLAggregation   map[string]interface{} `json:"fl_aggregation" binding:"required"`
	FLCommunication map[string]interface{} `json:"fl_communication" binding:"required"`
	FLSecurity      map[string]interface{} `json:"fl_security" binding:"required"`
	FLTraining      map[string]interface{} `json:"fl_training" binding:"required"`
	ArtifactPath    string                 `json:"artifact_path"`
}

func (in *flServiceInput) toModel() models.FLService {
	session, _ := json.Marshal(in.FLSession)
	aggregation, _ := json.Marshal(in.FLAggregation)
	communication, _ := json.Marshal(in.FLCommunication)
	security, _ := json.Marshal(in.FLSecurity)
	training, _ := json.Marshal(in.FLTraining)

	serviceID := models.HashedID(map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
		"fl_session":  in.FLSession,
	})

	return models.FLService{
		FLServiceID:     serviceID,
		Name:            in.Name,
		Description:     in.Description,
		FLSession:       datatypes.JSON(session),
		FLAggregation:   datatypes.JSON(aggregation),
		FLCommunication: datatypes.JSON(communication),
		FLSecurity:      datatypes.JSON(security),
		FLTraining:      datatypes.JSON(training),
		ArtifactPath:    in.ArtifactPath,
		Timestamp:       models.Timestamp(),
	}
}

// AddService registers a new FL service entry.
func AddService(services FLServiceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in flServiceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing required fields"))
			return
		}

		service := in.toModel()
		if err := services.Add(&service); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Database insert failed"))
			return
		}
		c.JSON(http.StatusCreated, service)
	}
}

// GetService returns an FL service entry by id.
func GetService(services FLServiceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceID := c.Param("fl_service_id")
		service, err := services.ByID(serviceID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}
		if service == nil {
			c.JSON(http.StatusNotFound, failed("FL Service not found", "Service ID "+serviceID+" not found"))
			return
		}
		c.JSON(http.StatusOK, service)
	}
}

// ListServices returns all FL services.
func ListServices(services FLServiceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := services.All()
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}
		if len(list) == 0 {
			c.JSON(http.StatusOK, gin.H{"status": "success", "message": "No FL services available"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// UpdateService updates the mutable fields of an FL service entry.
func UpdateService(services FLServiceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in flServiceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing required fields"))
			return
		}

		updated := in.toModel()
		service, err := services.Update(c.Param("fl_service_id"), map[string]interface{}{
			"name":             updated.Name,
			"description":      updated.Description,
			"fl_session":       updated.FLSession,
			"fl_aggregation":   updated.FLAggregation,
			"fl_communication": updated.FLCommunication,
			"fl_security":      updated.FLSecurity,
			"fl_training":      updated.FLTraining,
			"timestamp":        models.Timestamp(),
		})
		if err != nil {
			c.JSON(http.StatusNotFound, failed("FL Service not found", err.Error()))
			return
		}
		c.JSON(http.StatusOK, service)
	}
}

// ServiceSummary joins FL services with their data-space resources and the
// policies governing those resources.
func ServiceSummary(services FLServiceStore, resources ResourceStore, policies PolicyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceList, err := services.All()
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}
		resourceList, err := resources.All()
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}
		policyList, err := policies.All()
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}

		resourceByAsset := make(map[string]models.DataSpaceResource, len(resourceList))
		for _, r := range resourceList {
			resourceByAsset[r.AssetID] = r
		}
		policiesByResource := make(map[string][]models.Policy)
		for _, p := range policyList {
			policiesByResource[p.ResourceID] = append(policiesByResource[p.ResourceID], p)
		}

		summary := []gin.H{}
		for _, s := range serviceList {
			resource, ok := resourceByAsset[s.FLServiceID]
			if !ok {
				continue
			}
			summary = append(summary, gin.H{
				"service":  s,
				"resource": resource,
				"policies": policiesByResource[resource.ResourceID],
			})
		}

		if len(summary) == 0 {
			c.JSON(http.StatusOK, gin.H{"status": "success", "message": "No FL services available"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// AddServiceWithResource creates an FL service and its data-space resource
// in one call, for the front end.
func AddServiceWithResource(services FLServiceStore, resources ResourceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			flServiceInput
			ConnectorID string `json:"connector_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing required fields"))
			return
		}

		service := in.toModel()
		if err := services.Add(&service); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Database insert failed"))
			return
		}

		resource := models.DataSpaceResource{
			ResourceID: models.HashedID(map[string]interface{}{
				"connector_id": in.ConnectorID,
				"asset_id":     service.FLServiceID,
				"type":         models.ResourceTypeFLService,
			}),
			ConnectorID: in.ConnectorID,
			AssetID:     service.FLServiceID,
			Type:        models.ResourceTypeFLService,
			Timestamp:   models.Timestamp(),
		}
		if err := resources.Add(&resource); err != nil {
			c.JSON(http.StatusNotFound, failed("Error Occurred", "Resource creation failed"))
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":        "success",
			"message":       "FL service and resource created successfully",
			"fl_service_id": service.FLServiceID,
			"resource_id":   resource.ResourceID,
			"connector_id":  in.ConnectorID,
		})
	}
}
