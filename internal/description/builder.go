// Package description produces the full IDS resource description for a
// registered data-space resource: identifiers, timestamps, keywords, the
// asset's semantic graph, and the policy-derived contract offer.
package description

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cords_connector/internal/contract"
	"cords_connector/internal/models"
	"cords_connector/internal/semantics"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrSemantics        = errors.New("semantic generation failed")
)

type ResourceFinder interface {
	ByID(resourceID string) (*models.DataSpaceResource, error)
}

type ModelFinder interface {
	ByID(modelID string) (*models.MLModel, error)
}

type FLServiceFinder interface {
	ByID(serviceID string) (*models.FLService, error)
}

type ContractAttacher interface {
	AttachContract(resourceID string, description map[string]interface{}) (map[string]interface{}, error)
}

// TemplateSource hands out fresh copies of the base description document.
type TemplateSource interface {
	DescriptionTemplate() (map[string]interface{}, error)
}

type Builder struct {
	resources ResourceFinder
	mlModels  ModelFinder
	services  FLServiceFinder
	contracts ContractAttacher
	templates TemplateSource
	log       *zap.SugaredLogger
}

func NewBuilder(resources ResourceFinder, mlModels ModelFinder, services FLServiceFinder,
	contracts ContractAttacher, templates TemplateSource, log *zap.SugaredLogger) *Builder {
	return &Builder{
		resources: resources,
		mlModels:  mlModels,
		services:  services,
		contracts: contracts,
		templates: templates,
		log:       log,
	}
}

// Build assembles the resource description document. Each call produces a
// new, independent document; re-registration never mutates an earlier one.
func (b *Builder) Build(resourceID, title, descText string, keywords []string) (map[string]interface{}, error) {
	res, err := b.resources.ByID(resourceID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrResourceNotFound
	}

	semantic, err := b.assetSemantics(res)
	if err != nil {
		return nil, err
	}

	doc, err := b.templates.DescriptionTemplate()
	if err != nil {
		return nil, err
	}

	now := models.Timestamp()
	doc["@id"] = "https://w3id.org/idsa/autogen/dataResource/cords_" + resourceID
	setTimeField(doc, "ids:created", now)
	setTimeField(doc, "ids:modified", now)
	setLiteralList(doc, "ids:title", title)
	setLiteralList(doc, "ids:description", descText)

	kw, _ := doc["ids:keyword"].([]interface{})
	for _, word := range keywords {
		kw = append(kw, map[string]interface{}{
			"@type":  "http://www.w3.org/2001/XMLSchema#string",
			"@value": word,
		})
	}
	doc["ids:keyword"] = kw

	doc["ids:representation"] = []interface{}{
		map[string]interface{}{
			"@type": "ids:DataRepresentation",
			"@id":   "https://w3id.org/idsa/autogen/dataRepresentation/cords_" + resourceID,
			"ids:instance": []interface{}{
				map[string]interface{}{
					"@type": "ids:Artifact",
					"@id":   contract.ArtifactURI(resourceID),
					"ids:creationDate": map[string]interface{}{
						"@type":  "http://www.w3.org/2001/XMLSchema#dateTimeStamp",
						"@value": now,
					},
				},
			},
		},
	}

	mergeSemantics(doc, semantic)

	return b.contracts.AttachContract(resourceID, doc)
}

// assetSemantics dispatches semantic generation to the collaborator owning
// the resource's asset type.
func (b *Builder) assetSemantics(res *models.DataSpaceResource) (map[string]interface{}, error) {
	switch res.Type {
	case models.ResourceTypeModel:
		m, err := b.mlModels.ByID(res.AssetID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("%w: model %s not found", ErrSemantics, res.AssetID)
		}
		semantic, err := semantics.ForModel(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSemantics, err)
		}
		return semantic, nil

	case models.ResourceTypeFLService:
		f, err := b.services.ByID(res.AssetID)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, fmt.Errorf("%w: fl service %s not found", ErrSemantics, res.AssetID)
		}
		semantic, err := semantics.ForFLService(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSemantics, err)
		}
		return semantic, nil

	default:
		return nil, fmt.Errorf("%w: unknown resource type %q", ErrSemantics, res.Type)
	}
}

func setTimeField(doc map[string]interface{}, key, value string) {
	node, ok := doc[key].(map[string]interface{})
	if !ok {
		node = map[string]interface{}{
			"@type": "http://www.w3.org/2001/XMLSchema#dateTimeStamp",
		}
		doc[key] = node
	}
	node["@value"] = value
}

func setLiteralList(doc map[string]interface{}, key, value string) {
	list, ok := doc[key].([]interface{})
	if ok && len(list) > 0 {
		if entry, ok := list[0].(map[string]interface{}); ok {
			entry["@value"] = value
			return
		}
	}
	doc[key] = []interface{}{map[string]interface{}{
		"@type":  "http://www.w3.org/2001/XMLSchema#string",
		"@value": value,
	}}
}

// mergeSemantics folds the asset's semantic graph into the description:
// contexts are merged, every other top-level node is copied over.
func mergeSemantics(doc, semantic map[string]interface{}) {
	ctx, _ := doc["@context"].(map[string]interface{})
	if ctx == nil {
		ctx = map[string]interface{}{}
		doc["@context"] = ctx
	}
	if semCtx, ok := semantic["@context"].(map[string]interface{}); ok {
		for k, v := range semCtx {
			ctx[k] = v
		}
	}
	for k, v := range semantic {
		if k == "@context" {
			continue
		}
		doc[k] = v
	}
}
