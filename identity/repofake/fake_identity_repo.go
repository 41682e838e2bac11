package fakeidentityrepo

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hirelane/interview-server/identity"
	apperrors "github.com/hirelane/interview-server/internal/errors"
)

var _ identity.Repo = (*FakeIdentityRepo)(nil)

// FakeIdentityRepo is an in-memory identity map for tests. Set FailWrites to
// simulate a durable-storage outage.
type FakeIdentityRepo struct {
	entries    map[string]string
	lock       sync.Mutex
	FailWrites bool
}

func NewFakeIdentityRepo() *FakeIdentityRepo {
	return &FakeIdentityRepo{
		entries: make(map[string]string),
	}
}

func (r *FakeIdentityRepo) Resolve(_ context.Context, userIdentifier string) (string, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if id, ok := r.entries[userIdentifier]; ok {
		return id, nil
	}
	if r.FailWrites {
		return "", errors.Wrap(apperrors.ErrIdentityMapWrite, "fake write failure")
	}
	id := uuid.New().String()
	r.entries[userIdentifier] = id
	return id, nil
}

// Len returns the number of persisted mappings.
func (r *FakeIdentityRepo) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return len(r.entries)
}
