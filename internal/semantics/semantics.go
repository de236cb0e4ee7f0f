// Package semantics builds the CORDS semantic graphs embedded in resource
// descriptions. The graphs are JSON-LD fragments: a @context block plus one
// metadata node per asset type.
package semantics

import (
	"encoding/json"
	"fmt"

	"cords_connector/internal/models"
)

var cordsContext = map[string]interface{}{
	"cords": "http://www.w3id.org/cords/core#",
	"xsd":   "http://www.w3.org/2001/XMLSchema#",
}

// ForModel produces the semantic graph for a registered ML model.
func ForModel(m *models.MLModel) (map[string]interface{}, error) {
	metadata := map[string]interface{}{
		"@type":             "cords:MLModel",
		"cords:modelName":   m.Name,
		"cords:version":     m.Version,
		"cords:description": m.Description,
	}

	if len(m.Semantics) > 0 {
		var tags map[string]interface{}
		if err := json.Unmarshal(m.Semantics, &tags); err != nil {
			return nil, fmt.Errorf("model %s: semantics: %w", m.ModelID, err)
		}
		for k, v := range tags {
			metadata[k] = v
		}
	}

	return map[string]interface{}{
		"@context":         cordsContext,
		"cords:mlmetadata": metadata,
	}, nil
}

// flBlocks maps each stored FL column to its CORDS class, and flKeys maps
// the snake_case record fields onto the vocabulary's camelCase terms.
var flBlocks = []struct {
	class string
	get   func(f *models.FLService) []byte
}{
	{"cords.FLSession", func(f *models.FLService) []byte { return f.FLSession }},
	{"cords.FLAggregation", func(f *models.FLService) []byte { return f.FLAggregation }},
	{"cords.FLCommunication", func(f *models.FLService) []byte { return f.FLCommunication }},
	{"cords.FLSecurity", func(f *models.FLService) []byte { return f.FLSecurity }},
	{"cords.FLTraining", func(f *models.FLService) []byte { return f.FLTraining }},
}

var flKeys = map[string]string{
	"session_id":                   "sessionID",
	"session_start_time":           "sessionStartTime",
	"session_end_time":             "sessionEndTime",
	"num_min_clients":              "numMinClients",
	"num_max_clients":              "numMaxClients",
	"participation_ratio":          "participationRatio",
	"aggregation_method":           "aggregationAlgorithm",
	"aggregation_frequency":        "aggregationFrequency",
	"communication_protocol":       "communicationProtocol",
	"secure_aggregation_enabled":   "secureAggregationEnabled",
	"differential_privacy_enabled": "differentialPrivacyEnabled",
	"encryption_method":            "encryptionMethod",
	"training_rounds":              "trainingRounds",
	"local_epochs":                 "localEpochs",
	"loss_function":                "lossFunction",
}

// ForFLService produces the semantic graph for a federated-learning
// service. Unknown keys inside the stored blocks are dropped rather than
// carried into the vocabulary.
func ForFLService(f *models.FLService) (map[string]interface{}, error) {
	metadata := map[string]interface{}{
		"@type":             "cords:FLService",
		"cords:serviceName": f.Name,
		"cords:description": f.Description,
	}

	for _, block := range flBlocks {
		raw := block.get(f)
		if len(raw) == 0 {
			continue
		}
		var fields map[string]interface{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("fl service %s: %s: %w", f.FLServiceID, block.class, err)
		}
		for k, v := range fields {
			term, ok := flKeys[k]
			if !ok {
				continue
			}
			metadata[block.class+"."+term] = v
		}
	}

	return map[string]interface{}{
		"@context":         cordsContext,
		"cords:flmetadata": metadata,
	}, nil
}
