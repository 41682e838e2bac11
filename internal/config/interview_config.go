package config

import (
	"strconv"
	"time"
)

// InterviewConfig holds the timing and sizing knobs of the session lifecycle.
type InterviewConfig interface {
	GetInterviewTimeLimit() time.Duration
	GetMaxSessionAge() time.Duration
	GetExpirySweepInterval() time.Duration
	GetMaxAgeSweepInterval() time.Duration
	GetQuestionsPerInterview() int
}

type Interview struct{}

var _ InterviewConfig = Interview{}

// GetInterviewTimeLimit returns the hard wall-clock budget of one interview.
// The timer starts at session creation and is never reset by resumption.
func (Interview) GetInterviewTimeLimit() time.Duration {
	return time.Duration(intEnv("INTERVIEW_TIME_LIMIT_MINUTES", 30)) * time.Minute
}

// GetMaxSessionAge bounds how long any session record may linger, independent
// of the interview time budget.
func (Interview) GetMaxSessionAge() time.Duration {
	return time.Duration(intEnv("SESSION_MAX_AGE_HOURS", 24)) * time.Hour
}

func (Interview) GetExpirySweepInterval() time.Duration {
	return time.Duration(intEnv("EXPIRY_SWEEP_SECONDS", 30)) * time.Second
}

func (Interview) GetMaxAgeSweepInterval() time.Duration {
	return time.Duration(intEnv("MAX_AGE_SWEEP_MINUTES", 60)) * time.Minute
}

func (Interview) GetQuestionsPerInterview() int {
	return intEnv("QUESTIONS_PER_INTERVIEW", 5)
}

func intEnv(envVar string, defaultValue int) int {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
