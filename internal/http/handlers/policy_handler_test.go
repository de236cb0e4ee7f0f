package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cords_connector/internal/models"
)

func policyRouter(policies PolicyStore) *gin.Engine {
	r := gin.New()
	r.POST("/policy/add_policy", AddPolicy(policies))
	r.GET("/policy/get_policies/:resource_id", GetPolicies(policies))
	r.DELETE("/policy/remove_policy/:policy_id", RemovePolicy(policies))
	return r
}

func TestAddPolicy(t *testing.T) {
	policies := &fakePolicyStore{}
	r := policyRouter(policies)

	w := doJSON(t, r, http.MethodPost, "/policy/add_policy", gin.H{
		"resource_id":     "r1",
		"policy_type":     models.PolicyNTimes,
		"policy_metadata": gin.H{"TIMES": 5, "PIPENDPOINT": "http://pip"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "r1", body["resource_id"])
	assert.Equal(t, models.PolicyNTimes, body["policy_type"])
	assert.Len(t, body["policy_id"], 64)
	require.Len(t, policies.policies, 1)
}

func TestAddPolicyMissingFields(t *testing.T) {
	r := policyRouter(&fakePolicyStore{})

	w := doJSON(t, r, http.MethodPost, "/policy/add_policy", gin.H{"resource_id": "r1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, "Missing data", body["error"])
}

func TestGetPolicies(t *testing.T) {
	policies := &fakePolicyStore{policies: []models.Policy{
		{PolicyID: "p1", ResourceID: "r1", PolicyType: models.PolicyNTimes},
		{PolicyID: "p2", ResourceID: "r2", PolicyType: models.PolicyPurpose},
	}}
	r := policyRouter(policies)

	w := doJSON(t, r, http.MethodGet, "/policy/get_policies/r1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "p1")
	assert.NotContains(t, w.Body.String(), "p2")
}

func TestGetPoliciesNoneIs404(t *testing.T) {
	r := policyRouter(&fakePolicyStore{})

	w := doJSON(t, r, http.MethodGet, "/policy/get_policies/r1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "failed", body["status"])
}

func TestRemovePolicy(t *testing.T) {
	policies := &fakePolicyStore{policies: []models.Policy{
		{PolicyID: "p1", ResourceID: "r1"},
	}}
	r := policyRouter(policies)

	w := doJSON(t, r, http.MethodDelete, "/policy/remove_policy/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, policies.policies)

	w = doJSON(t, r, http.MethodDelete, "/policy/remove_policy/p1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
