package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	apperrors "github.com/hirelane/interview-server/internal/errors"
	"github.com/hirelane/interview-server/session"
)

// FilesystemStore reads question sets from the data folder and writes reports
// to the results folder.
type FilesystemStore struct {
	dataFolder    string
	resultsFolder string
	nowTime       func() time.Time
}

var _ Store = (*FilesystemStore)(nil)

// NewFilesystemStore creates a file-backed artifact store.
func NewFilesystemStore(dataFolder, resultsFolder string) *FilesystemStore {
	return &FilesystemStore{
		dataFolder:    dataFolder,
		resultsFolder: resultsFolder,
		nowTime:       time.Now,
	}
}

func (s *FilesystemStore) questionSetPath(linkID string) string {
	return filepath.Join(s.dataFolder, fmt.Sprintf("interview_%s.json", linkID))
}

// questionSetFile is the on-disk shape a generator provisions per link.
type questionSetFile struct {
	LinkID    string             `json:"link_id"`
	JobRole   string             `json:"job_role"`
	Questions []session.Question `json:"questions"`
}

func (s *FilesystemStore) QuestionSet(linkID string) ([]session.Question, error) {
	data, err := os.ReadFile(s.questionSetPath(linkID))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(apperrors.ErrQuestionSetNotFound, linkID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "[QuestionSet] read %s", linkID)
	}

	var file questionSetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(err, "[QuestionSet] unmarshal %s", linkID)
	}
	if len(file.Questions) == 0 {
		return nil, errors.Wrap(apperrors.ErrQuestionSetNotFound, linkID)
	}
	return file.Questions, nil
}

func (s *FilesystemStore) DefaultQuestionSet() ([]session.Question, error) {
	data, err := os.ReadFile(filepath.Join(s.dataFolder, "questions.json"))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(apperrors.ErrQuestionSetNotFound, "default pool")
	}
	if err != nil {
		return nil, errors.Wrap(err, "[DefaultQuestionSet] read")
	}

	var questions []session.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, errors.Wrap(err, "[DefaultQuestionSet] unmarshal")
	}
	return questions, nil
}

func (s *FilesystemStore) Exists(linkID string) bool {
	_, err := os.Stat(s.questionSetPath(linkID))
	return err == nil
}

func (s *FilesystemStore) Delete(linkID string) error {
	err := os.Remove(s.questionSetPath(linkID))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "[Delete] %s", linkID)
	}
	return nil
}

func (s *FilesystemStore) WriteReport(report Report) (string, error) {
	if err := os.MkdirAll(s.resultsFolder, 0o755); err != nil {
		return "", errors.Wrap(err, "[WriteReport] mkdir")
	}

	filename := filepath.Join(s.resultsFolder,
		fmt.Sprintf("interview_%s_%s.json", report.SessionID, s.nowTime().Format("20060102_150405")))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "[WriteReport] marshal")
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", errors.Wrap(err, "[WriteReport] write")
	}
	return filename, nil
}
