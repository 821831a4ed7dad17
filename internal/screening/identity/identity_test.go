package identity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotation_RoundRobin(t *testing.T) {
	r := NewRotationWithPools(map[CheckType][]Profile{
		CheckCredit: {
			{FirstName: "A"},
			{FirstName: "B"},
			{FirstName: "C"},
		},
	})

	var names []string
	for range 7 {
		p, ok := r.Next(CheckCredit)
		require.True(t, ok)
		names = append(names, p.FirstName)
	}
	assert.Equal(t, []string{"A", "B", "C", "A", "B", "C", "A"}, names)
}

func TestRotation_IndependentCounters(t *testing.T) {
	r := NewRotationWithPools(map[CheckType][]Profile{
		CheckCredit:   {{FirstName: "C1"}, {FirstName: "C2"}},
		CheckEviction: {{FirstName: "E1"}, {FirstName: "E2"}},
	})

	p, _ := r.Next(CheckCredit)
	assert.Equal(t, "C1", p.FirstName)
	p, _ = r.Next(CheckCredit)
	assert.Equal(t, "C2", p.FirstName)

	// Eviction counter is untouched by credit traffic.
	p, _ = r.Next(CheckEviction)
	assert.Equal(t, "E1", p.FirstName)
}

func TestRotation_UnknownCheck(t *testing.T) {
	r := NewRotationWithPools(map[CheckType][]Profile{})
	_, ok := r.Next(CheckFraud)
	assert.False(t, ok)
}

func TestRotation_DefaultPoolsSeeded(t *testing.T) {
	r := NewRotation()
	for _, check := range []CheckType{CheckFraud, CheckIdentity, CheckCredit, CheckCriminal, CheckEviction} {
		p, ok := r.Next(check)
		require.True(t, ok, "pool missing for %s", check)
		assert.NotEmpty(t, p.SSN)
	}
}

func TestRotation_ConcurrentStrictRoundRobin(t *testing.T) {
	const workers = 50
	r := NewRotationWithPools(map[CheckType][]Profile{
		CheckFraud: {{FirstName: "A"}, {FirstName: "B"}},
	})

	var wg sync.WaitGroup
	counts := make(chan string, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, _ := r.Next(CheckFraud)
			counts <- p.FirstName
		}()
	}
	wg.Wait()
	close(counts)

	seen := map[string]int{}
	for name := range counts {
		seen[name]++
	}
	// With a mutex-guarded counter the two entries split the traffic exactly.
	assert.Equal(t, workers/2, seen["A"])
	assert.Equal(t, workers/2, seen["B"])
}
