// Package store wraps gorm access to the connector's persisted records.
// Core components (policy engine, PIP, description builder) consume these
// through narrow interfaces declared on their side, so they stay testable
// without a database.
package store

import (
	"errors"

	"gorm.io/gorm"

	"cords_connector/internal/models"
)

var ErrNotFound = gorm.ErrRecordNotFound

type Policies struct{ DB *gorm.DB }

func (s *Policies) Add(p *models.Policy) error {
	return s.DB.Create(p).Error
}

// ByResource returns the policies governing a resource in insertion order.
func (s *Policies) ByResource(resourceID string) ([]models.Policy, error) {
	var policies []models.Policy
	err := s.DB.Where("resource_id = ?", resourceID).Order("id asc").Find(&policies).Error
	return policies, err
}

func (s *Policies) All() ([]models.Policy, error) {
	var policies []models.Policy
	err := s.DB.Order("id asc").Find(&policies).Error
	return policies, err
}

// Remove deletes a policy by its policy_id and reports whether a row went away.
func (s *Policies) Remove(policyID string) (bool, error) {
	res := s.DB.Where("policy_id = ?", policyID).Delete(&models.Policy{})
	return res.RowsAffected > 0, res.Error
}

type Resources struct{ DB *gorm.DB }

func (s *Resources) Add(r *models.DataSpaceResource) error {
	return s.DB.Create(r).Error
}

// ByID returns nil when no resource matches.
func (s *Resources) ByID(resourceID string) (*models.DataSpaceResource, error) {
	var r models.DataSpaceResource
	err := s.DB.Where("resource_id = ?", resourceID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Resources) All() ([]models.DataSpaceResource, error) {
	var rs []models.DataSpaceResource
	err := s.DB.Find(&rs).Error
	return rs, err
}

type Connectors struct{ DB *gorm.DB }

var ErrDuplicateID = errors.New("id already exists")

func (s *Connectors) Add(c *models.DataSpaceConnector) error {
	var existing int64
	if err := s.DB.Model(&models.DataSpaceConnector{}).
		Where("connector_id = ?", c.ConnectorID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return ErrDuplicateID
	}
	return s.DB.Create(c).Error
}

// ByID returns nil when no connector matches.
func (s *Connectors) ByID(connectorID string) (*models.DataSpaceConnector, error) {
	var c models.DataSpaceConnector
	err := s.DB.Where("connector_id = ?", connectorID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type Models struct{ DB *gorm.DB }

func (s *Models) Add(m *models.MLModel) error {
	return s.DB.Create(m).Error
}

// ByID returns nil when no model matches.
func (s *Models) ByID(modelID string) (*models.MLModel, error) {
	var m models.MLModel
	err := s.DB.Where("model_id = ?", modelID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type FLServices struct{ DB *gorm.DB }

func (s *FLServices) Add(f *models.FLService) error {
	return s.DB.Create(f).Error
}

// ByID returns nil when no service matches.
func (s *FLServices) ByID(serviceID string) (*models.FLService, error) {
	var f models.FLService
	err := s.DB.Where("fl_service_id = ?", serviceID).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FLServices) All() ([]models.FLService, error) {
	var fs []models.FLService
	err := s.DB.Find(&fs).Error
	return fs, err
}

func (s *FLServices) Update(serviceID string, updates map[string]interface{}) (*models.FLService, error) {
	res := s.DB.Model(&models.FLService{}).Where("fl_service_id = ?", serviceID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.ByID(serviceID)
}

type Counters struct{ DB *gorm.DB }

// Get returns the counter for a (resource, consumer) pair, or nil when no
// counter exists yet.
func (s *Counters) Get(resourceID, consumerURI string) (*models.AccessCounter, error) {
	var c models.AccessCounter
	err := s.DB.Where("resource_id = ? AND consumer_uri = ?", resourceID, consumerURI).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Counters) Create(c *models.AccessCounter) error {
	return s.DB.Create(c).Error
}

func (s *Counters) Save(c *models.AccessCounter) error {
	return s.DB.Model(&models.AccessCounter{}).
		Where("resource_id = ? AND consumer_uri = ?", c.ResourceID, c.ConsumerURI).
		Update("access_count", c.AccessCount).Error
}

type Users struct{ DB *gorm.DB }

func (s *Users) Add(u *models.User) error {
	return s.DB.Create(u).Error
}

// ByEmail returns nil when no user matches.
func (s *Users) ByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.DB.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
