package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Store keeps media blobs in process memory. It backs local development
// and the test suites; failures can be injected per reference to exercise
// best-effort cleanup paths.
type Store struct {
	mu           sync.RWMutex
	objects      map[string][]byte
	contentTypes map[string]string
	storeErr     error
	deleteErrs   map[string]error
}

// NewStore creates an empty in-memory media store.
func NewStore() *Store {
	return &Store{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
		deleteErrs:   make(map[string]error),
	}
}

func (s *Store) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storeErr != nil {
		err := s.storeErr
		s.storeErr = nil
		return "", err
	}

	ref := uuid.NewString()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[ref] = buf
	s.contentTypes[ref] = contentType
	return ref, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.deleteErrs[ref]; ok {
		return err
	}
	if _, ok := s.objects[ref]; !ok {
		return fmt.Errorf("object with ref %s not found", ref)
	}
	delete(s.objects, ref)
	delete(s.contentTypes, ref)
	return nil
}

// Has reports whether a blob is currently stored under ref.
func (s *Store) Has(ref string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[ref]
	return ok
}

// Len returns the number of stored blobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// FailNextStore makes the next Store call return err.
func (s *Store) FailNextStore(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeErr = err
}

// FailDeleteOf makes every Delete of ref return err.
func (s *Store) FailDeleteOf(ref string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteErrs[ref] = err
}
