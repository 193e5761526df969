package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cardsharp/drainvault/internal/fileutil"
)

// Store persists sessions as JSON at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a saved session is present
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads the saved session. Returns nil when the file is missing or
// unreadable; a corrupt save starts a fresh run rather than ending it.
func (s *Store) Load() *Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	// Decode over a fresh session so fields absent from older saves
	// keep their defaults.
	sess := New()
	if err := json.Unmarshal(data, sess); err != nil {
		return nil
	}

	sess.Achievements = MergeAchievementState(sess.Achievements)
	if sess.TotalCredits < sess.Balance {
		sess.TotalCredits = sess.Balance
	}
	return sess
}

// Save writes the session atomically, so readers see either the old
// save or the new one, never a torn write.
func (s *Store) Save(sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return fileutil.WriteAtomic(s.path, data, 0600)
}

// Delete removes the saved session. Deleting a save that does not exist
// is not an error.
func (s *Store) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}
