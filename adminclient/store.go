package adminclient

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Store persists one session between runs.
type Store interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// FileStore keeps the session as a JSON file, the CLI counterpart of the web
// client's localStorage slot.
type FileStore struct {
	Path string
}

func (f *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		// A corrupt file is the same as no session.
		return nil, nil
	}
	if session.SessionID == "" || session.ExpiresAt.IsZero() {
		return nil, nil
	}
	return &session, nil
}

func (f *FileStore) Save(session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
