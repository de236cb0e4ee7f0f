package pip

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"cords_connector/internal/models"
)

type fakePolicies struct {
	byResource map[string][]models.Policy
}

func (f *fakePolicies) ByResource(resourceID string) ([]models.Policy, error) {
	return f.byResource[resourceID], nil
}

type memCounters struct {
	mu       sync.Mutex
	counters map[string]*models.AccessCounter
}

func newMemCounters() *memCounters {
	return &memCounters{counters: make(map[string]*models.AccessCounter)}
}

func (m *memCounters) key(resourceID, consumerURI string) string {
	return resourceID + "|" + consumerURI
}

func (m *memCounters) Get(resourceID, consumerURI string) (*models.AccessCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.counters[m.key(resourceID, consumerURI)]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (m *memCounters) Create(c *models.AccessCounter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *c
	m.counters[m.key(c.ResourceID, c.ConsumerURI)] = &copied
	return nil
}

func (m *memCounters) Save(c *models.AccessCounter) error {
	return m.Create(c)
}

func nTimesPolicy(t *testing.T, resourceID string, times interface{}) models.Policy {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{"TIMES": times, "PIPENDPOINT": "http://pip"})
	require.NoError(t, err)
	return models.Policy{
		PolicyID:       "p-" + resourceID,
		ResourceID:     resourceID,
		PolicyType:     models.PolicyNTimes,
		PolicyMetadata: datatypes.JSON(raw),
	}
}

func newTestPDP(policies map[string][]models.Policy) (*PDP, *memCounters) {
	counters := newMemCounters()
	pdp := NewPDP(&fakePolicies{byResource: policies}, counters, zap.NewNop().Sugar())
	return pdp, counters
}

const target = "http://w3id.org/engrd/connector/artifact/cords/r1"

func TestCheckAndDecrementCountsDownPastZero(t *testing.T) {
	pdp, _ := newTestPDP(map[string][]models.Policy{
		"r1": {nTimesPolicy(t, "r1", 5)},
	})

	want := []int{5, 4, 3, 2, 1, 0, -1}
	for _, expected := range want {
		count, err := pdp.CheckAndDecrement("http://consumer.local", target)
		require.NoError(t, err)
		assert.Equal(t, expected, count)
	}
}

func TestCheckAndDecrementNoPolicies(t *testing.T) {
	pdp, _ := newTestPDP(map[string][]models.Policy{})

	_, err := pdp.CheckAndDecrement("http://consumer.local", target)
	assert.ErrorIs(t, err, ErrNoPolicy)
}

func TestCheckAndDecrementNoNTimesPolicyMeansZeroAllotment(t *testing.T) {
	pdp, _ := newTestPDP(map[string][]models.Policy{
		"r1": {{
			PolicyID:       "p1",
			ResourceID:     "r1",
			PolicyType:     models.PolicyPurpose,
			PolicyMetadata: datatypes.JSON(`{"PURPOSE": "x"}`),
		}},
	})

	count, err := pdp.CheckAndDecrement("http://consumer.local", target)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = pdp.CheckAndDecrement("http://consumer.local", target)
	require.NoError(t, err)
	assert.Equal(t, -1, count)
}

func TestCheckAndDecrementStringTimes(t *testing.T) {
	pdp, _ := newTestPDP(map[string][]models.Policy{
		"r1": {nTimesPolicy(t, "r1", "3")},
	})

	count, err := pdp.CheckAndDecrement("http://consumer.local", target)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCheckAndDecrementIsolatesConsumers(t *testing.T) {
	pdp, _ := newTestPDP(map[string][]models.Policy{
		"r1": {nTimesPolicy(t, "r1", 2)},
	})

	count, err := pdp.CheckAndDecrement("http://consumer-a", target)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = pdp.CheckAndDecrement("http://consumer-b", target)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = pdp.CheckAndDecrement("http://consumer-a", target)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCheckAndDecrementTrailingSlashTarget(t *testing.T) {
	pdp, _ := newTestPDP(map[string][]models.Policy{
		"r1": {nTimesPolicy(t, "r1", 1)},
	})

	count, err := pdp.CheckAndDecrement("http://consumer.local", target+"/")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCheckAndDecrementManyPairsStayIndependent(t *testing.T) {
	pdp, _ := newTestPDP(map[string][]models.Policy{
		"r1": {nTimesPolicy(t, "r1", 3)},
	})

	// More consumers than lock stripes, so colliding pairs share a mutex
	// yet must keep independent counts.
	const consumers = 3 * lockStripes
	var wg sync.WaitGroup
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uri := fmt.Sprintf("http://consumer-%d", i)
			count, err := pdp.CheckAndDecrement(uri, target)
			assert.NoError(t, err)
			assert.Equal(t, 3, count)
		}(i)
	}
	wg.Wait()

	for i := 0; i < consumers; i++ {
		uri := fmt.Sprintf("http://consumer-%d", i)
		count, err := pdp.CheckAndDecrement(uri, target)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	}
}

func TestCheckAndDecrementConcurrentAccessDoesNotOverCount(t *testing.T) {
	pdp, _ := newTestPDP(map[string][]models.Policy{
		"r1": {nTimesPolicy(t, "r1", 1)},
	})

	const workers = 32
	results := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, err := pdp.CheckAndDecrement("http://consumer.local", target)
			assert.NoError(t, err)
			results <- count
		}()
	}
	wg.Wait()
	close(results)

	granted := 0
	seen := map[int]bool{}
	for count := range results {
		assert.False(t, seen[count], "count %d handed out twice", count)
		seen[count] = true
		if count > 0 {
			granted++
		}
	}
	assert.Equal(t, 1, granted, "exactly one caller should see a positive count")
}
