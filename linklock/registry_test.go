package linklock_test

import (
	"sync"
	"testing"

	"github.com/hirelane/interview-server/linklock"
	"github.com/stretchr/testify/require"
)

func TestTryClaimFirstAccessBinds(t *testing.T) {
	registry := linklock.NewInMemoryRegistry()

	owned, created := registry.TryClaim("link-1", "fp-a")
	require.True(t, owned)
	require.True(t, created)

	owner, exists := registry.Owner("link-1")
	require.True(t, exists)
	require.Equal(t, "fp-a", owner)
}

func TestTryClaimSameFingerprintContinues(t *testing.T) {
	registry := linklock.NewInMemoryRegistry()
	registry.TryClaim("link-1", "fp-a")

	owned, created := registry.TryClaim("link-1", "fp-a")
	require.True(t, owned)
	require.False(t, created)
}

func TestTryClaimDifferentFingerprintLockedOut(t *testing.T) {
	registry := linklock.NewInMemoryRegistry()
	registry.TryClaim("link-1", "fp-a")

	owned, created := registry.TryClaim("link-1", "fp-b")
	require.False(t, owned)
	require.False(t, created)

	// Ownership is unchanged for the lifetime of the link
	owner, _ := registry.Owner("link-1")
	require.Equal(t, "fp-a", owner)
}

func TestReleaseAllowsNewClaim(t *testing.T) {
	registry := linklock.NewInMemoryRegistry()
	registry.TryClaim("link-1", "fp-a")

	registry.Release("link-1")
	registry.Release("link-1") // absent release is a no-op

	owned, created := registry.TryClaim("link-1", "fp-b")
	require.True(t, owned)
	require.True(t, created)
}

func TestConcurrentClaimsExactlyOneOwner(t *testing.T) {
	registry := linklock.NewInMemoryRegistry()

	const claimants = 16
	owners := make([]bool, claimants)
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			owned, _ := registry.TryClaim("link-1", string(rune('a'+i)))
			owners[i] = owned
		}(i)
	}
	wg.Wait()

	ownedCount := 0
	for _, owned := range owners {
		if owned {
			ownedCount++
		}
	}
	require.Equal(t, 1, ownedCount)
}

// Many concurrent claims from the same browser all own the link, but exactly
// one observes created=true. The creation report is the claim's own result,
// never a separate read that a concurrent claimant could race.
func TestConcurrentSameFingerprintExactlyOneCreation(t *testing.T) {
	registry := linklock.NewInMemoryRegistry()

	const claimants = 16
	owners := make([]bool, claimants)
	creations := make([]bool, claimants)
	var wg sync.WaitGroup
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			owners[i], creations[i] = registry.TryClaim("link-1", "fp-a")
		}(i)
	}
	wg.Wait()

	createdCount := 0
	for i := 0; i < claimants; i++ {
		require.True(t, owners[i])
		if creations[i] {
			createdCount++
		}
	}
	require.Equal(t, 1, createdCount)
}
