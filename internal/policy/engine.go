// Package policy turns stored access-control policies into filled IDS
// permission documents, one permission per policy.
package policy

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"cords_connector/internal/models"
)

// MalformedPolicyError reports a stored policy whose metadata is missing a
// key its type requires. The whole compilation for the resource aborts so
// no partial contract is ever issued.
type MalformedPolicyError struct {
	PolicyID   string
	MissingKey string
}

func (e *MalformedPolicyError) Error() string {
	return fmt.Sprintf("policy %s: missing metadata key %s", e.PolicyID, e.MissingKey)
}

// Lister is the slice of the policy store the engine needs.
type Lister interface {
	ByResource(resourceID string) ([]models.Policy, error)
}

// operand selects which constraint field a metadata value is written to.
type operand int

const (
	rightOperandValue operand = iota // ids:rightOperand @value
	rightOperandRef                  // ids:rightOperandReference @id
	pipEndpointRef                   // ids:pipEndpoint @id
)

type binding struct {
	metaKey    string
	constraint int
	field      operand
}

// bindings maps each policy type to the template slots its metadata fills.
// Policy types without an entry are silently skipped at compile time.
var bindings = map[string][]binding{
	models.PolicyEvaluationTime: {
		{"AFTER", 0, rightOperandValue},
		{"BEFORE", 1, rightOperandValue},
	},
	models.PolicyNTimes: {
		{"TIMES", 0, rightOperandValue},
		{"PIPENDPOINT", 0, pipEndpointRef},
	},
	models.PolicyPurpose: {
		{"PURPOSE", 0, rightOperandRef},
		{"PIPENDPOINT", 0, pipEndpointRef},
	},
	models.PolicyRole: {
		{"ROLE", 0, rightOperandRef},
		{"PIPENDPOINT", 0, pipEndpointRef},
	},
	models.PolicyFLSecureAggregation: {
		{"REQUIRED", 0, rightOperandValue},
	},
	models.PolicyFLParticipantReputation: {
		{"MIN_REPUTATION", 0, rightOperandValue},
		{"PIPENDPOINT", 0, pipEndpointRef},
	},
	models.PolicyFLParticipantCPU: {
		{"MIN_CPU", 0, rightOperandValue},
	},
	models.PolicyFLParticipantGeo: {
		{"ALLOWED_REGION", 0, rightOperandRef},
	},
	models.PolicyFLLocalModelPerformance: {
		{"MIN_ACCURACY", 0, rightOperandValue},
	},
	models.PolicyFLIncentiveReward: {
		{"REWARD", 0, rightOperandValue},
	},
	models.PolicyFLLocalModelEvaluation: {
		{"EVALUATION_METRIC", 0, rightOperandRef},
	},
}

type Engine struct {
	store     Lister
	templates map[string]json.RawMessage
}

func NewEngine(store Lister, templates map[string]json.RawMessage) *Engine {
	return &Engine{store: store, templates: templates}
}

// Compile produces the filled permissions for every policy governing a
// resource. General-purpose permissions and FL-specific permissions are
// returned separately; either list may be empty. Unknown policy types
// contribute nothing. A missing metadata key aborts the whole compilation.
func (e *Engine) Compile(resourceID string) (permissions, flPermissions []Permission, err error) {
	policies, err := e.store.ByResource(resourceID)
	if err != nil {
		return nil, nil, err
	}

	permissions = []Permission{}
	flPermissions = []Permission{}

	for _, p := range policies {
		raw, ok := e.templates[p.PolicyType]
		if !ok {
			// Unrecognized policy types are tolerated, not errors.
			continue
		}
		fills, ok := bindings[p.PolicyType]
		if !ok {
			continue
		}

		perm, err := e.fill(resourceID, p, raw, fills)
		if err != nil {
			return nil, nil, err
		}

		if models.IsFLPolicyType(p.PolicyType) {
			flPermissions = append(flPermissions, perm)
		} else {
			permissions = append(permissions, perm)
		}
	}
	return permissions, flPermissions, nil
}

// fill clones the template and writes the policy's metadata into its
// constraint slots. The clone is a fresh unmarshal of the raw template
// bytes, so compilations never share mutable state.
func (e *Engine) fill(resourceID string, p models.Policy, raw json.RawMessage, fills []binding) (Permission, error) {
	var perm Permission
	if err := json.Unmarshal(raw, &perm); err != nil {
		return nil, fmt.Errorf("policy template %s: %w", p.PolicyType, err)
	}

	var meta map[string]interface{}
	if len(p.PolicyMetadata) > 0 {
		if err := json.Unmarshal(p.PolicyMetadata, &meta); err != nil {
			return nil, fmt.Errorf("policy %s: metadata: %w", p.PolicyID, err)
		}
	}

	constraints, _ := perm["ids:constraint"].([]interface{})

	for _, f := range fills {
		value, ok := meta[f.metaKey]
		if !ok {
			return nil, &MalformedPolicyError{PolicyID: p.PolicyID, MissingKey: f.metaKey}
		}
		if f.constraint >= len(constraints) {
			return nil, fmt.Errorf("policy template %s: constraint index %d out of range", p.PolicyType, f.constraint)
		}
		constraint, ok := constraints[f.constraint].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("policy template %s: constraint %d is not an object", p.PolicyType, f.constraint)
		}

		switch f.field {
		case rightOperandValue:
			setNested(constraint, "ids:rightOperand", "@value", value)
		case rightOperandRef:
			setNested(constraint, "ids:rightOperandReference", "@id", value)
		case pipEndpointRef:
			setNested(constraint, "ids:pipEndpoint", "@id", value)
		}
	}

	// Constraint ids are opaque and unique per compilation; the permission
	// id stays traceable to the resource and policy type.
	for _, c := range constraints {
		if constraint, ok := c.(map[string]interface{}); ok {
			constraint["@id"] = "https://w3id.org/idsa/autogen/constraint/" + uuid.NewString()
		}
	}
	perm["@id"] = fmt.Sprintf("https://w3id.org/idsa/autogen/permission/cords_%s_%s", resourceID, p.PolicyType)

	return perm, nil
}

func setNested(constraint map[string]interface{}, outer, inner string, value interface{}) {
	node, ok := constraint[outer].(map[string]interface{})
	if !ok {
		node = map[string]interface{}{}
		constraint[outer] = node
	}
	node[inner] = value
}
