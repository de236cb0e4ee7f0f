package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"cords_connector/internal/models"
	"cords_connector/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePolicyStore struct {
	policies []models.Policy
	addErr   error
}

func (f *fakePolicyStore) Add(p *models.Policy) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.policies = append(f.policies, *p)
	return nil
}

func (f *fakePolicyStore) ByResource(resourceID string) ([]models.Policy, error) {
	var out []models.Policy
	for _, p := range f.policies {
		if p.ResourceID == resourceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePolicyStore) All() ([]models.Policy, error) { return f.policies, nil }

func (f *fakePolicyStore) Remove(policyID string) (bool, error) {
	for i, p := range f.policies {
		if p.PolicyID == policyID {
			f.policies = append(f.policies[:i], f.policies[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeResourceStore struct {
	resources []models.DataSpaceResource
}

func (f *fakeResourceStore) Add(r *models.DataSpaceResource) error {
	f.resources = append(f.resources, *r)
	return nil
}

func (f *fakeResourceStore) ByID(resourceID string) (*models.DataSpaceResource, error) {
	for i := range f.resources {
		if f.resources[i].ResourceID == resourceID {
			return &f.resources[i], nil
		}
	}
	return nil, nil
}

func (f *fakeResourceStore) All() ([]models.DataSpaceResource, error) { return f.resources, nil }

type fakeConnectorStore struct {
	connectors map[string]*models.DataSpaceConnector
}

func newFakeConnectorStore() *fakeConnectorStore {
	return &fakeConnectorStore{connectors: make(map[string]*models.DataSpaceConnector)}
}

func (f *fakeConnectorStore) Add(c *models.DataSpaceConnector) error {
	if _, exists := f.connectors[c.ConnectorID]; exists {
		return store.ErrDuplicateID
	}
	f.connectors[c.ConnectorID] = c
	return nil
}

func (f *fakeConnectorStore) ByID(connectorID string) (*models.DataSpaceConnector, error) {
	return f.connectors[connectorID], nil
}

type fakeModelStore struct {
	mlModels map[string]*models.MLModel
}

func newFakeModelStore() *fakeModelStore {
	return &fakeModelStore{mlModels: make(map[string]*models.MLModel)}
}

func (f *fakeModelStore) Add(m *models.MLModel) error {
	f.mlModels[m.ModelID] = m
	return nil
}

func (f *fakeModelStore) ByID(modelID string) (*models.MLModel, error) {
	return f.mlModels[modelID], nil
}

type fakeFLServiceStore struct {
	services []models.FLService
}

func (f *fakeFLServiceStore) Add(s *models.FLService) error {
	f.services = append(f.services, *s)
	return nil
}

func (f *fakeFLServiceStore) ByID(serviceID string) (*models.FLService, error) {
	for i := range f.services {
		if f.services[i].FLServiceID == serviceID {
			return &f.services[i], nil
		}
	}
	return nil, nil
}

func (f *fakeFLServiceStore) All() ([]models.FLService, error) { return f.services, nil }

func (f *fakeFLServiceStore) Update(serviceID string, updates map[string]interface{}) (*models.FLService, error) {
	for i := range f.services {
		if f.services[i].FLServiceID == serviceID {
			if name, ok := updates["name"].(string); ok {
				f.services[i].Name = name
			}
			return &f.services[i], nil
		}
	}
	return nil, fmt.Errorf("fl service %s not found", serviceID)
}

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Add(u *models.User) error {
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserStore) ByEmail(email string) (*models.User, error) {
	return f.users[email], nil
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRecorder(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeRequest(t *testing.T, req *http.Request) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(req.Body).Decode(&out))
	return out
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
