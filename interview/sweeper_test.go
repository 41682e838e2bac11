package interview_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hirelane/interview-server/interview"
	"github.com/hirelane/interview-server/session"
)

func TestSweepExpiredFinalizesOnlyExhaustedSessions(t *testing.T) {
	f := setupTestFixture(t)

	old, err := f.startLinked(t, testFPOne)
	require.NoError(t, err)
	_, err = f.submit(t, old.SessionID, testFPOne, 1)
	require.NoError(t, err)

	f.clock.Advance(20 * time.Minute)

	fresh, err := f.service.StartSession(context.Background(), interview.StartRequest{
		CandidateEmail: "b@x.com",
		Fingerprint:    testFPTwo,
	})
	require.NoError(t, err)

	f.clock.Advance(11 * time.Minute) // old at 31m, fresh at 11m

	require.Equal(t, 1, f.sweeper.SweepExpired())

	oldRecord, ok := f.store.Get(old.SessionID)
	require.True(t, ok)
	require.Equal(t, session.StatusExpired, oldRecord.Status)
	require.Len(t, oldRecord.Results, 1)
	require.NotNil(t, oldRecord.Final)

	freshRecord, ok := f.store.Get(fresh.SessionID)
	require.True(t, ok)
	require.Equal(t, session.StatusActive, freshRecord.Status)

	// A second pass finds nothing left to expire
	require.Equal(t, 0, f.sweeper.SweepExpired())
}

// The frequent sweep finalizes but retains the record and link lock; only the
// max-age sweep, or an explicit end, runs teardown.
func TestSweepExpiredRetainsRecordAndLock(t *testing.T) {
	f := setupTestFixture(t)

	started, err := f.startLinked(t, testFPOne)
	require.NoError(t, err)
	_, err = f.submit(t, started.SessionID, testFPOne, 1)
	require.NoError(t, err)

	f.clock.Advance(31 * time.Minute)
	require.Equal(t, 1, f.sweeper.SweepExpired())

	_, ok := f.store.Get(started.SessionID)
	require.True(t, ok)
	owner, owned := f.locks.Owner(testLinkID)
	require.True(t, owned)
	require.Equal(t, testFPOne, owner)

	// The candidate can still read the terminal state
	status, err := f.service.GetStatus(context.Background(), started.SessionID, testFPOne)
	require.NoError(t, err)
	require.Equal(t, session.StatusExpired, status.Status)
}

func TestSweepMaxAgeTearsDownOldSessions(t *testing.T) {
	f := setupTestFixture(t)

	started, err := f.startLinked(t, testFPOne)
	require.NoError(t, err)
	_, err = f.submit(t, started.SessionID, testFPOne, 1)
	require.NoError(t, err)

	f.clock.Advance(25 * time.Hour)

	require.Equal(t, 1, f.sweeper.SweepMaxAge())

	_, ok := f.store.Get(started.SessionID)
	require.False(t, ok)
	_, owned := f.locks.Owner(testLinkID)
	require.False(t, owned)

	// The unfinalized record still got its report before removal
	reports := f.artifacts.Reports()
	require.Len(t, reports, 1)
	require.Equal(t, started.SessionID, reports[0].SessionID)
	require.Equal(t, 1, reports[0].QuestionsAnswered)
}

func TestSweepMaxAgeSparesYoungSessions(t *testing.T) {
	f := setupTestFixture(t)

	started, err := f.startLinked(t, testFPOne)
	require.NoError(t, err)

	f.clock.Advance(23 * time.Hour)

	require.Equal(t, 0, f.sweeper.SweepMaxAge())
	_, ok := f.store.Get(started.SessionID)
	require.True(t, ok)
}

// An already-finalized record past max age is removed without a second report.
func TestSweepMaxAgeAfterExpiry(t *testing.T) {
	f := setupTestFixture(t)

	started, err := f.startLinked(t, testFPOne)
	require.NoError(t, err)
	_, err = f.submit(t, started.SessionID, testFPOne, 1)
	require.NoError(t, err)

	f.clock.Advance(31 * time.Minute)
	require.Equal(t, 1, f.sweeper.SweepExpired())

	f.clock.Advance(25 * time.Hour)
	require.Equal(t, 1, f.sweeper.SweepMaxAge())

	require.Equal(t, 0, f.store.Len())
	require.Len(t, f.artifacts.Reports(), 1)
}

// The sweep's scan must never touch record state outside the per-session
// lock. Several sessions hit the budget boundary while late answers are in
// flight; every record ends expired with exactly one finalization, whichever
// side got there first.
func TestSweepConcurrentWithFinalizingRequests(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	const sessions = 4
	ids := make([]string, 0, sessions)
	for i := 0; i < sessions; i++ {
		started, err := f.service.StartSession(ctx, interview.StartRequest{
			CandidateEmail: fmt.Sprintf("c%d@x.com", i),
			Fingerprint:    fmt.Sprintf("fp-%d", i),
		})
		require.NoError(t, err)
		_, err = f.service.SubmitAnswer(ctx, interview.SubmitRequest{
			SessionID:   started.SessionID,
			Fingerprint: fmt.Sprintf("fp-%d", i),
			QuestionID:  1,
			AnswerText:  "a considered answer",
		})
		require.NoError(t, err)
		ids = append(ids, started.SessionID)
	}

	f.clock.Advance(30 * time.Minute) // exact boundary for every session

	var wg sync.WaitGroup
	for i, sessionID := range ids {
		wg.Add(1)
		go func(i int, sessionID string) {
			defer wg.Done()
			_, _ = f.service.SubmitAnswer(ctx, interview.SubmitRequest{
				SessionID:   sessionID,
				Fingerprint: fmt.Sprintf("fp-%d", i),
				QuestionID:  2,
				AnswerText:  "too late",
			})
		}(i, sessionID)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.sweeper.SweepExpired()
	}()
	wg.Wait()

	for _, sessionID := range ids {
		record, ok := f.store.Get(sessionID)
		require.True(t, ok)
		require.Equal(t, session.StatusExpired, record.Status)
		require.Len(t, record.Results, 1)
		require.NotNil(t, record.Final)
	}
	require.Len(t, f.artifacts.Reports(), sessions)
}

func TestSweeperStartStop(t *testing.T) {
	f := setupTestFixture(t)

	f.sweeper.Start()
	f.sweeper.Stop()
	// Stop on a stopped sweeper is a no-op
	f.sweeper.Stop()
}
