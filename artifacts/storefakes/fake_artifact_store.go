package fakeartifactstore

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/hirelane/interview-server/artifacts"
	apperrors "github.com/hirelane/interview-server/internal/errors"
	"github.com/hirelane/interview-server/session"
)

var _ artifacts.Store = (*FakeArtifactStore)(nil)

// FakeArtifactStore is an in-memory artifact store for tests.
type FakeArtifactStore struct {
	lock         sync.Mutex
	questionSets map[string][]session.Question
	defaultSet   []session.Question
	reports      []artifacts.Report
	deleted      map[string]int
}

func NewFakeArtifactStore() *FakeArtifactStore {
	return &FakeArtifactStore{
		questionSets: make(map[string][]session.Question),
		deleted:      make(map[string]int),
	}
}

// ProvisionQuestionSet registers a question set for a link.
func (s *FakeArtifactStore) ProvisionQuestionSet(linkID string, questions []session.Question) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.questionSets[linkID] = questions
}

// SetDefaultQuestionSet registers the generic ad-hoc pool.
func (s *FakeArtifactStore) SetDefaultQuestionSet(questions []session.Question) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.defaultSet = questions
}

func (s *FakeArtifactStore) QuestionSet(linkID string) ([]session.Question, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	questions, ok := s.questionSets[linkID]
	if !ok {
		return nil, errors.Wrap(apperrors.ErrQuestionSetNotFound, linkID)
	}
	out := make([]session.Question, len(questions))
	copy(out, questions)
	return out, nil
}

func (s *FakeArtifactStore) DefaultQuestionSet() ([]session.Question, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.defaultSet) == 0 {
		return nil, errors.Wrap(apperrors.ErrQuestionSetNotFound, "default pool")
	}
	out := make([]session.Question, len(s.defaultSet))
	copy(out, s.defaultSet)
	return out, nil
}

func (s *FakeArtifactStore) Exists(linkID string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.questionSets[linkID]
	return ok
}

func (s *FakeArtifactStore) Delete(linkID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.questionSets, linkID)
	s.deleted[linkID]++
	return nil
}

func (s *FakeArtifactStore) WriteReport(report artifacts.Report) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.reports = append(s.reports, report)
	return "fake://report/" + report.SessionID, nil
}

// Reports returns every report written so far.
func (s *FakeArtifactStore) Reports() []artifacts.Report {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]artifacts.Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// DeleteCount returns how many times Delete was invoked for a link.
func (s *FakeArtifactStore) DeleteCount(linkID string) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.deleted[linkID]
}
