// Package contract assembles IDS contract offers from compiled policy
// permissions and merges them into resource descriptions.
package contract

import (
	"time"

	"github.com/google/uuid"

	"cords_connector/internal/models"
	"cords_connector/internal/policy"
)

// ArtifactURI derives the artifact identifier every permission of a
// resource must target.
func ArtifactURI(resourceID string) string {
	return "http://w3id.org/engrd/connector/artifact/cords/" + resourceID
}

// PermissionCompiler is the slice of the policy engine the compiler needs.
type PermissionCompiler interface {
	Compile(resourceID string) (permissions, flPermissions []policy.Permission, err error)
}

type Compiler struct {
	engine PermissionCompiler
}

func NewCompiler(engine PermissionCompiler) *Compiler {
	return &Compiler{engine: engine}
}

// AttachContract builds a fresh contract offer for the resource and merges
// it into the caller's description. Every permission's target is rebound to
// the resource's artifact URI, whatever the template pre-filled. A resource
// with no policies gets an offer with an empty permission list: absence of
// policy means an unrestricted offer, not a failure.
func (c *Compiler) AttachContract(resourceID string, description map[string]interface{}) (map[string]interface{}, error) {
	permissions, flPermissions, err := c.engine.Compile(resourceID)
	if err != nil {
		return nil, err
	}

	target := map[string]interface{}{"@id": ArtifactURI(resourceID)}
	for _, perm := range permissions {
		perm["ids:target"] = target
	}

	now := time.Now().UTC().Format(models.ISOMillis)
	offer := map[string]interface{}{
		"@type": "ids:ContractOffer",
		"@id":   "https://w3id.org/idsa/autogen/contractOffer/" + uuid.NewString(),
		"ids:contractStart": map[string]interface{}{
			"@type":  "http://www.w3.org/2001/XMLSchema#dateTimeStamp",
			"@value": now,
		},
		"ids:contractDate": map[string]interface{}{
			"@type":  "http://www.w3.org/2001/XMLSchema#dateTimeStamp",
			"@value": now,
		},
		"ids:permission": permissions,
	}

	description["ids:contractOffer"] = []interface{}{offer}

	// FL governance is additive: it rides next to the standard offer, never
	// inside it.
	if len(flPermissions) > 0 {
		for _, perm := range flPermissions {
			perm["ids:target"] = target
		}
		description["cords:flPolicies"] = flPermissions
	}

	return description, nil
}
