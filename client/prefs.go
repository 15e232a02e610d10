package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Prefs is the remember-me data a booking frontend keeps per device.
// It is a convenience only; the backend never trusts it.
type Prefs struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	LastService string `json:"lastService"`
	RememberMe  bool   `json:"rememberMe"`
}

// PrefsStore persists Prefs as a JSON file.
type PrefsStore struct {
	path string
}

func NewPrefsStore(path string) *PrefsStore {
	return &PrefsStore{path: path}
}

// Load returns the saved preferences, or zero prefs when none exist yet.
func (s *PrefsStore) Load() (Prefs, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Prefs{}, nil
		}
		return Prefs{}, err
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		// a corrupt file behaves like no file
		return Prefs{}, nil
	}
	return p, nil
}

// Save writes the preferences. Saving with RememberMe false clears the
// stored contact details instead.
func (s *PrefsStore) Save(p Prefs) error {
	if !p.RememberMe {
		return s.Clear()
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *PrefsStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
