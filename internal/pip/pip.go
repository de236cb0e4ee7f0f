// Package pip is the access-counting policy decision point consulted
// during usage-control enforcement. It is a counting oracle, not a gate:
// counts go negative past exhaustion and the HTTP boundary interprets them.
package pip

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"cords_connector/internal/models"
)

// ErrNoPolicy means the target resource has no governing policies at all.
// A resource without policies is not countable through the PIP, even though
// contract generation treats the same condition as an unrestricted offer.
var ErrNoPolicy = errors.New("no policy available for given resource")

type PolicyLister interface {
	ByResource(resourceID string) ([]models.Policy, error)
}

type CounterStore interface {
	// Get returns nil when no counter exists for the pair yet.
	Get(resourceID, consumerURI string) (*models.AccessCounter, error)
	Create(c *models.AccessCounter) error
	Save(c *models.AccessCounter) error
}

// lockStripes bounds the lock table; collisions only serialize unrelated
// pairs, they never un-serialize a pair.
const lockStripes = 64

type PDP struct {
	policies PolicyLister
	counters CounterStore
	log      *zap.SugaredLogger

	locks [lockStripes]sync.Mutex
}

func NewPDP(policies PolicyLister, counters CounterStore, log *zap.SugaredLogger) *PDP {
	return &PDP{
		policies: policies,
		counters: counters,
		log:      log,
	}
}

// keyLock serializes the read-modify-write per (resource, consumer) pair so
// concurrent requests cannot over-count.
func (p *PDP) keyLock(resourceID, consumerURI string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(resourceID))
	h.Write([]byte{0})
	h.Write([]byte(consumerURI))
	return &p.locks[h.Sum32()%lockStripes]
}

// CheckAndDecrement reports the remaining access allotment for a consumer
// against a resource and decrements it. The returned value is always the
// pre-decrement count: the first call against an N_TIMES limit of 5 returns
// 5, the second 4, and calls past exhaustion keep counting down below zero.
func (p *PDP) CheckAndDecrement(consumerURI, targetURI string) (int, error) {
	resourceID := resourceIDFromTarget(targetURI)
	p.log.Infow("access check", "resource_id", resourceID, "consumer_uri", consumerURI)

	policies, err := p.policies.ByResource(resourceID)
	if err != nil {
		return 0, err
	}
	if len(policies) == 0 {
		return 0, ErrNoPolicy
	}

	// The first N_TIMES policy sets the allotment; without one it is zero,
	// which blocks access from the first lookup on.
	limit := 0
	for _, pol := range policies {
		if pol.PolicyType == models.PolicyNTimes {
			limit, err = timesLimit(pol)
			if err != nil {
				return 0, err
			}
			break
		}
	}

	l := p.keyLock(resourceID, consumerURI)
	l.Lock()
	defer l.Unlock()

	counter, err := p.counters.Get(resourceID, consumerURI)
	if err != nil {
		return 0, err
	}

	if counter == nil {
		counter = &models.AccessCounter{
			ResourceID:  resourceID,
			ConsumerURI: consumerURI,
			AccessCount: limit - 1,
		}
		if err := p.counters.Create(counter); err != nil {
			return 0, err
		}
		return limit, nil
	}

	current := counter.AccessCount
	counter.AccessCount = current - 1
	if err := p.counters.Save(counter); err != nil {
		return 0, err
	}
	return current, nil
}

// resourceIDFromTarget extracts the resource id as the final path segment
// of the target URI.
func resourceIDFromTarget(targetURI string) string {
	trimmed := strings.TrimRight(targetURI, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return trimmed
	}
	return trimmed[idx+1:]
}

func timesLimit(pol models.Policy) (int, error) {
	var meta map[string]interface{}
	if err := json.Unmarshal(pol.PolicyMetadata, &meta); err != nil {
		return 0, fmt.Errorf("policy %s: metadata: %w", pol.PolicyID, err)
	}
	switch v := meta["TIMES"].(type) {
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("policy %s: TIMES is not a number: %q", pol.PolicyID, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("policy %s: TIMES missing from metadata", pol.PolicyID)
	}
}
