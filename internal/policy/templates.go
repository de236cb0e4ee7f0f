package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cords_connector/internal/models"
)

// Permission is a filled IDS ODRL-style permission document. Documents keep
// the JSON-LD shape of the underlying templates, so they are handled as
// generic maps rather than rigid structs.
type Permission map[string]interface{}

// templateTypes is the full set of policy types a template file must exist
// for. LoadTemplates fails fast when any is missing so a half-configured
// process never starts.
var templateTypes = []string{
	models.PolicyEvaluationTime,
	models.PolicyNTimes,
	models.PolicyPurpose,
	models.PolicyRole,
	models.PolicyFLSecureAggregation,
	models.PolicyFLParticipantReputation,
	models.PolicyFLParticipantCPU,
	models.PolicyFLParticipantGeo,
	models.PolicyFLLocalModelPerformance,
	models.PolicyFLIncentiveReward,
	models.PolicyFLLocalModelEvaluation,
}

// LoadTemplates reads one permission template per policy type from dir
// (files named <TYPE>.json). The raw bytes are kept and re-unmarshalled on
// every compilation, so a loaded template is never mutated in place.
func LoadTemplates(dir string) (map[string]json.RawMessage, error) {
	templates := make(map[string]json.RawMessage, len(templateTypes))
	for _, t := range templateTypes {
		path := filepath.Join(dir, t+".json")
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("policy template %s: %w", t, err)
		}
		var probe map[string]interface{}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, fmt.Errorf("policy template %s: invalid JSON: %w", t, err)
		}
		if _, ok := probe["ids:constraint"].([]interface{}); !ok {
			return nil, fmt.Errorf("policy template %s: missing ids:constraint array", t)
		}
		templates[t] = json.RawMessage(raw)
	}
	return templates, nil
}
