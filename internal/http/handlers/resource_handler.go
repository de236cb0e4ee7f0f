package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cords_connector/internal/broker"
	"cords_connector/internal/description"
	"cords_connector/internal/models"
	"cords_connector/internal/transfer"
)

// CreateResource shares an asset (ML model or FL service) as a data-space
// resource under a connector.
func CreateResource(resources ResourceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			ConnectorID string `json:"connector_id" binding:"required"`
			AssetID     string `json:"asset_id" binding:"required"`
			Type        string `json:"type"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}
		if in.Type == "" {
			in.Type = models.ResourceTypeModel
		}

		resource := models.DataSpaceResource{
			ResourceID: models.HashedID(map[string]interface{}{
				"connector_id": in.ConnectorID,
				"asset_id":     in.AssetID,
				"type":         in.Type,
			}),
			ConnectorID: in.ConnectorID,
			AssetID:     in.AssetID,
			Type:        in.Type,
			Timestamp:   models.Timestamp(),
		}
		if err := resources.Add(&resource); err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", "Data base insert failed"))
			return
		}
		c.JSON(http.StatusCreated, resource)
	}
}

// GetResource returns a resource by its hash identifier.
func GetResource(resources ResourceStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, err := resources.ByID(c.Param("resource_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, failed("Error occurred", err.Error()))
			return
		}
		if resource == nil {
			c.JSON(http.StatusNotFound, failed("Resource not found", "No resource matches the provided ID"))
			return
		}
		c.JSON(http.StatusOK, resource)
	}
}

type descriptionInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Keywords    []string `json:"keywords" binding:"required"`
}

// CreateResourceDescription builds the IDS resource description without
// registering it anywhere.
func CreateResourceDescription(builder *description.Builder) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceID := c.Param("resource_id")

		var in descriptionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}

		doc, err := builder.Build(resourceID, in.Title, in.Description, in.Keywords)
		if err != nil {
			writeBuildError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"resource_id":          resourceID,
			"connector":            "trueconnector",
			"resource_description": doc,
		})
	}
}

// RegisterResource builds the resource description and registers it with
// the external connector broker.
func RegisterResource(builder *description.Builder, connector *broker.TrueConnector) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceID := c.Param("resource_id")

		var in struct {
			descriptionInput
			CatalogID string `json:"catalog_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}

		doc, err := builder.Build(resourceID, in.Title, in.Description, in.Keywords)
		if err != nil {
			writeBuildError(c, err)
			return
		}

		resp, err := connector.Register(c.Request.Context(), in.CatalogID, doc)
		if err != nil {
			var upstream *broker.UpstreamError
			if errors.As(err, &upstream) {
				c.JSON(upstream.StatusCode, failed("Error Occurred", upstream.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// writeBuildError maps description-build failures: unknown resource is 404,
// a semantic failure is 404 (retryable by the caller), a malformed policy
// is an internal data-integrity problem.
func writeBuildError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, description.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, failed("Resource not found", "No resource matches the provided ID"))
	case errors.Is(err, description.ErrSemantics):
		c.JSON(http.StatusNotFound, failed("Resource not found", "Issue during description creation"))
	default:
		c.JSON(http.StatusInternalServerError, failed("Error occurred", err.Error()))
	}
}

// DownloadResource starts a chunked artifact push to the consumer's
// transfer endpoint and returns as soon as the job is accepted.
func DownloadResource(coordinator *transfer.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		resourceID := c.Param("resource_id")

		var in struct {
			ConsumerIP   string `json:"consumer_ip" binding:"required"`
			ConsumerPort int    `json:"consumer_port" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, failed("Error Occurred", "Missing data"))
			return
		}

		job, err := coordinator.Transfer(resourceID, in.ConsumerIP, strconv.Itoa(in.ConsumerPort))
		if err != nil {
			if errors.Is(err, transfer.ErrUnknownResource) {
				c.JSON(http.StatusNotFound, failed("Resource not found", err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, failed("Error Occurred", err.Error()))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"artifact_id":     job.ArtifactID,
			"job_id":          job.JobID,
			"transfer_status": job.State,
			"message":         "transfer initiated",
		})
	}
}

// TransferStatus reports the state of a previously accepted transfer job.
func TransferStatus(tracker *transfer.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, ok := tracker.Get(c.Param("job_id"))
		if !ok {
			c.JSON(http.StatusNotFound, failed("Not found", "No transfer job matches the provided ID"))
			return
		}
		c.JSON(http.StatusOK, job)
	}
}
