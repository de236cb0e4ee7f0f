package handlers

import "cords_connector/internal/models"

// Store interfaces the handlers close over. The gorm-backed types in
// internal/store satisfy these; tests substitute in-memory fakes.

type PolicyStore interface {
	Add(p *models.Policy) error
	ByResource(resourceID string) ([]models.Policy, error)
	All() ([]models.Policy, error)
	Remove(policyID string) (bool, error)
}

type ResourceStore interface {
	Add(r *models.DataSpaceResource) error
	ByID(resourceID string) (*models.DataSpaceResource, error)
	All() ([]models.DataSpaceResource, error)
}

type ConnectorStore interface {
	Add(c *models.DataSpaceConnector) error
	ByID(connectorID string) (*models.DataSpaceConnector, error)
}

type ModelStore interface {
	Add(m *models.MLModel) error
	ByID(modelID string) (*models.MLModel, error)
}

type FLServiceStore interface {
	Add(f *models.FLService) error
	ByID(serviceID string) (*models.FLService, error)
	All() ([]models.FLService, error)
	Update(serviceID string, updates map[string]interface{}) (*models.FLService, error)
}

type UserStore interface {
	Add(u *models.User) error
	ByEmail(email string) (*models.User, error)
}
