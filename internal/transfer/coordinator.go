// Package transfer packages model/FL artifacts and pushes them to a
// consumer endpoint over a chunked websocket channel, off the request path.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cords_connector/internal/models"
)

var ErrUnknownResource = errors.New("unknown resource")

type ResourceFinder interface {
	ByID(resourceID string) (*models.DataSpaceResource, error)
}

type ModelFinder interface {
	ByID(modelID string) (*models.MLModel, error)
}

type FLServiceFinder interface {
	ByID(serviceID string) (*models.FLService, error)
}

type Coordinator struct {
	resources    ResourceFinder
	mlModels     ModelFinder
	services     FLServiceFinder
	tracker      *Tracker
	artifactRoot string
	chunkSize    int
	log          *zap.SugaredLogger
}

func NewCoordinator(resources ResourceFinder, mlModels ModelFinder, services FLServiceFinder,
	tracker *Tracker, artifactRoot string, chunkSize int, log *zap.SugaredLogger) *Coordinator {
	return &Coordinator{
		resources:    resources,
		mlModels:     mlModels,
		services:     services,
		tracker:      tracker,
		artifactRoot: artifactRoot,
		chunkSize:    chunkSize,
		log:          log,
	}
}

// Transfer resolves the resource's artifact directory and kicks off the
// package-and-push sequence on a background goroutine, returning the
// accepted job immediately. Only resolution errors surface here; transfer
// errors land in the job record and the log. The returned Job is a
// snapshot taken before the goroutine starts; the live record is only
// reachable through the tracker.
func (c *Coordinator) Transfer(resourceID, consumerHost, consumerPort string) (Job, error) {
	res, err := c.resources.ByID(resourceID)
	if err != nil {
		return Job{}, err
	}
	if res == nil {
		return Job{}, ErrUnknownResource
	}

	artifactDir, err := c.artifactDir(res)
	if err != nil {
		return Job{}, err
	}

	endpoint := "ws://" + net.JoinHostPort(consumerHost, consumerPort)
	job := &Job{
		JobID:      uuid.NewString(),
		ResourceID: resourceID,
		ArtifactID: res.AssetID,
		Endpoint:   endpoint,
		State:      JobQueued,
	}
	c.tracker.Add(job)
	accepted := *job

	go c.run(job.JobID, resourceID, artifactDir, endpoint)

	return accepted, nil
}

func (c *Coordinator) run(jobID, resourceID, artifactDir, endpoint string) {
	workDir, err := os.MkdirTemp("", "cords-transfer-")
	if err != nil {
		c.fail(jobID, resourceID, endpoint, err)
		return
	}
	defer os.RemoveAll(workDir)

	archiveName := resourceID + ".zip"
	archivePath := filepath.Join(workDir, archiveName)
	if err := ZipDirectory(artifactDir, archivePath); err != nil {
		c.fail(jobID, resourceID, endpoint, err)
		return
	}

	c.tracker.SetState(jobID, JobSending, "")
	if err := SendFile(context.Background(), endpoint, archivePath, archiveName, c.chunkSize); err != nil {
		c.fail(jobID, resourceID, endpoint, err)
		return
	}

	c.tracker.SetState(jobID, JobComplete, "")
	c.log.Infow("artifact transfer complete", "resource_id", resourceID, "consumer_endpoint", endpoint)
}

func (c *Coordinator) fail(jobID, resourceID, endpoint string, err error) {
	c.tracker.SetState(jobID, JobFailed, err.Error())
	c.log.Errorw("artifact transfer failed",
		"resource_id", resourceID, "consumer_endpoint", endpoint, "error", err)
}

// artifactDir resolves the owning asset's storage directory: an explicit
// artifact path on the asset record wins, otherwise the configured root
// plus asset id.
func (c *Coordinator) artifactDir(res *models.DataSpaceResource) (string, error) {
	var explicit string
	switch res.Type {
	case models.ResourceTypeModel:
		m, err := c.mlModels.ByID(res.AssetID)
		if err != nil {
			return "", err
		}
		if m == nil {
			return "", fmt.Errorf("%w: model %s", ErrUnknownResource, res.AssetID)
		}
		explicit = m.ArtifactPath
	case models.ResourceTypeFLService:
		f, err := c.services.ByID(res.AssetID)
		if err != nil {
			return "", err
		}
		if f == nil {
			return "", fmt.Errorf("%w: fl service %s", ErrUnknownResource, res.AssetID)
		}
		explicit = f.ArtifactPath
	default:
		return "", fmt.Errorf("%w: unknown resource type %q", ErrUnknownResource, res.Type)
	}

	if explicit != "" {
		return explicit, nil
	}
	return filepath.Join(c.artifactRoot, res.AssetID), nil
}
