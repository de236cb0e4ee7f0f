package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cords_connector/internal/models"
)

func flServiceBody(name string) gin.H {
	return gin.H{
		"name":             name,
		"description":      "federated trainer",
		"fl_session":       gin.H{"num_min_clients": 3},
		"fl_aggregation":   gin.H{"aggregation_method": "FedAvg"},
		"fl_communication": gin.H{"communication_protocol": "grpc"},
		"fl_security":      gin.H{"secure_aggregation_enabled": true},
		"fl_training":      gin.H{"training_rounds": 10},
	}
}

func TestAddAndGetFLService(t *testing.T) {
	services := &fakeFLServiceStore{}
	r := gin.New()
	r.POST("/fl_services/add", AddService(services))
	r.GET("/fl_services/get/:fl_service_id", GetService(services))

	w := doJSON(t, r, http.MethodPost, "/fl_services/add", flServiceBody("trainer"))
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	serviceID, ok := body["fl_service_id"].(string)
	require.True(t, ok)
	assert.Len(t, serviceID, 64)

	w = doJSON(t, r, http.MethodGet, "/fl_services/get/"+serviceID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trainer", decodeBody(t, w)["name"])

	w = doJSON(t, r, http.MethodGet, "/fl_services/get/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddFLServiceMissingBlock(t *testing.T) {
	r := gin.New()
	r.POST("/fl_services/add", AddService(&fakeFLServiceStore{}))

	body := flServiceBody("trainer")
	delete(body, "fl_training")
	w := doJSON(t, r, http.MethodPost, "/fl_services/add", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListFLServicesEmpty(t *testing.T) {
	r := gin.New()
	r.GET("/fl_services/list", ListServices(&fakeFLServiceStore{}))

	w := doJSON(t, r, http.MethodGet, "/fl_services/list", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No FL services available", decodeBody(t, w)["message"])
}

func TestUpdateFLService(t *testing.T) {
	services := &fakeFLServiceStore{services: []models.FLService{
		{FLServiceID: "svc1", Name: "old"},
	}}
	r := gin.New()
	r.PUT("/fl_services/update/:fl_service_id", UpdateService(services))

	w := doJSON(t, r, http.MethodPut, "/fl_services/update/svc1", flServiceBody("renamed"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "renamed", services.services[0].Name)

	w = doJSON(t, r, http.MethodPut, "/fl_services/update/ghost", flServiceBody("x"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServiceSummaryJoinsResourcesAndPolicies(t *testing.T) {
	services := &fakeFLServiceStore{services: []models.FLService{
		{FLServiceID: "svc1", Name: "joined"},
		{FLServiceID: "svc2", Name: "unshared"},
	}}
	resources := &fakeResourceStore{resources: []models.DataSpaceResource{
		{ResourceID: "r1", AssetID: "svc1", Type: models.ResourceTypeFLService},
	}}
	policies := &fakePolicyStore{policies: []models.Policy{
		{PolicyID: "p1", ResourceID: "r1", PolicyType: models.PolicyNTimes},
	}}

	r := gin.New()
	r.GET("/fl_services/summary", ServiceSummary(services, resources, policies))

	w := doJSON(t, r, http.MethodGet, "/fl_services/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Len(t, summary, 1)
	service := summary[0]["service"].(map[string]interface{})
	assert.Equal(t, "joined", service["name"])
	policyList := summary[0]["policies"].([]interface{})
	assert.Len(t, policyList, 1)
}

func TestAddServiceWithResource(t *testing.T) {
	services := &fakeFLServiceStore{}
	resources := &fakeResourceStore{}
	r := gin.New()
	r.POST("/front_end/add_fl_service", AddServiceWithResource(services, resources))

	body := flServiceBody("trainer")
	body["connector_id"] = "c1"
	w := doJSON(t, r, http.MethodPost, "/front_end/add_fl_service", body)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "success", resp["status"])
	require.Len(t, services.services, 1)
	require.Len(t, resources.resources, 1)
	assert.Equal(t, services.services[0].FLServiceID, resources.resources[0].AssetID)
	assert.Equal(t, models.ResourceTypeFLService, resources.resources[0].Type)
}
