package usecase

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// StagedCV is a raw uploaded file waiting for a batch run.
type StagedCV struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	UploadDate string `json:"uploadDate"`
	Content    []byte `json:"-"`
}

// StagingStore keeps uploaded CVs between the upload call and the analyze
// call. Entries are scoped to a session id so concurrent uploads never see
// each other's files; a session lives until it is explicitly cleared or
// overwritten by a new upload for the same id.
type StagingStore struct {
	mu       sync.Mutex
	sessions map[string][]StagedCV
	nextID   int
}

func NewStagingStore() *StagingStore {
	return &StagingStore{sessions: make(map[string][]StagedCV), nextID: 1}
}

// NewSession returns a fresh session id.
func (s *StagingStore) NewSession() string {
	return uuid.NewString()
}

// Add stages one CV under the given session and returns its assigned entry.
func (s *StagingStore) Add(sessionID, filename, uploadDate string, content []byte) StagedCV {
	s.mu.Lock()
	defer s.mu.Unlock()
	cv := StagedCV{
		ID:         fmt.Sprintf("cv-%d", s.nextID),
		Filename:   filename,
		UploadDate: uploadDate,
		Content:    content,
	}
	s.nextID++
	s.sessions[sessionID] = append(s.sessions[sessionID], cv)
	return cv
}

// List returns the CVs staged under a session, in upload order.
func (s *StagingStore) List(sessionID string) []StagedCV {
	s.mu.Lock()
	defer s.mu.Unlock()
	cvs := s.sessions[sessionID]
	out := make([]StagedCV, len(cvs))
	copy(out, cvs)
	return out
}

// Clear drops every CV staged under a session.
func (s *StagingStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
