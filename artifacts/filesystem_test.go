package artifacts_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hirelane/interview-server/artifacts"
	apperrors "github.com/hirelane/interview-server/internal/errors"
	"github.com/hirelane/interview-server/session"
	"github.com/stretchr/testify/require"
)

func writeQuestionSet(t *testing.T, folder, linkID string, questions []session.Question) {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"link_id":   linkID,
		"job_role":  "Backend Engineer",
		"questions": questions,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(folder, "interview_"+linkID+".json"), payload, 0o644))
}

func TestQuestionSetRoundTrip(t *testing.T) {
	dataFolder := t.TempDir()
	store := artifacts.NewFilesystemStore(dataFolder, t.TempDir())

	writeQuestionSet(t, dataFolder, "link-1", []session.Question{
		{Text: "Explain a goroutine leak and how you would find one.", Difficulty: session.DifficultyMedium, PassingThreshold: 50},
	})

	require.True(t, store.Exists("link-1"))

	questions, err := store.QuestionSet("link-1")
	require.NoError(t, err)
	require.Len(t, questions, 1)
	require.Equal(t, session.DifficultyMedium, questions[0].Difficulty)
}

func TestQuestionSetMissing(t *testing.T) {
	store := artifacts.NewFilesystemStore(t.TempDir(), t.TempDir())

	require.False(t, store.Exists("nope"))
	_, err := store.QuestionSet("nope")
	require.True(t, apperrors.Is(err, apperrors.ErrQuestionSetNotFound))
}

func TestDeleteIsIdempotent(t *testing.T) {
	dataFolder := t.TempDir()
	store := artifacts.NewFilesystemStore(dataFolder, t.TempDir())
	writeQuestionSet(t, dataFolder, "link-1", []session.Question{{Text: "q", Difficulty: session.DifficultyEasy, PassingThreshold: 50}})

	require.NoError(t, store.Delete("link-1"))
	require.False(t, store.Exists("link-1"))
	require.NoError(t, store.Delete("link-1")) // second delete is a no-op
}

func TestWriteReport(t *testing.T) {
	resultsFolder := t.TempDir()
	store := artifacts.NewFilesystemStore(t.TempDir(), resultsFolder)

	filename, err := store.WriteReport(artifacts.Report{
		SessionID:      "sess-1",
		CandidateEmail: "a@x.com",
		StartTime:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2025, 6, 1, 10, 25, 0, 0, time.UTC),
		EndReason:      "completed",
		Final:          session.FinalResults{FinalScore: 72.5, OverallStatus: "Good"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	var report artifacts.Report
	require.NoError(t, json.Unmarshal(data, &report))
	require.Equal(t, "sess-1", report.SessionID)
	require.Equal(t, 72.5, report.Final.FinalScore)
}
