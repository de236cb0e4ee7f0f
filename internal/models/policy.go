package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Policy types accepted by the template engine. Anything else stored under
// policy_type is kept but contributes no permissions at compile time.
const (
	PolicyEvaluationTime          = "EVALUATION_TIME"
	PolicyNTimes                  = "N_TIMES"
	PolicyPurpose                 = "PURPOSE"
	PolicyRole                    = "ROLE"
	PolicyFLSecureAggregation     = "FL_SECURE_AGGREGATION"
	PolicyFLParticipantReputation = "FL_PARTICIPANT_REPUTATION"
	PolicyFLParticipantCPU        = "FL_PARTICIPANT_CPU"
	PolicyFLParticipantGeo        = "FL_PARTICIPANT_GEO"
	PolicyFLLocalModelPerformance = "FL_LOCAL_MODEL_PERFORMANCE"
	PolicyFLIncentiveReward       = "FL_INCENTIVE_REWARD"
	PolicyFLLocalModelEvaluation  = "FL_LOCAL_MODEL_EVALUATION"
)

// IsFLPolicyType reports whether a policy type belongs to the FL governance
// family, which is attached to descriptions separately from the standard
// contract offer.
func IsFLPolicyType(policyType string) bool {
	return strings.HasPrefix(policyType, "FL_")
}

type Policy struct {
	ID             int64          `gorm:"primaryKey" json:"-"`
	PolicyID       string         `gorm:"size:64;uniqueIndex;not null" json:"policy_id"`
	ResourceID     string         `gorm:"size:64;index;not null" json:"resource_id"`
	PolicyType     string         `gorm:"size:100;not null" json:"policy_type"`
	PolicyMetadata datatypes.JSON `gorm:"type:json" json:"policy_metadata"`
	Timestamp      string         `gorm:"size:40" json:"timestamp"`
	CreatedAt      time.Time      `json:"-"`
}
