// Package appstate persists small facts between runs, such as the last
// connected cube and the last recorded session.
package appstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SeamusWaldron/cubelet/internal/config"
)

// Filename is the state file name inside the config directory.
const Filename = "state.json"

// AppState is the persisted application state.
type AppState struct {
	LastDeviceAddress string `json:"last_device_address,omitempty"`
	LastDeviceName    string `json:"last_device_name,omitempty"`
	LastSessionID     string `json:"last_session_id,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultPath returns ~/.cubelet/state.json.
func DefaultPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, Filename), nil
}

// Open loads the state file at path. A missing file yields an empty state.
func Open(path string) (*StateFile, error) {
	sf := &StateFile{path: path}
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return sf, nil
}

// OpenDefault opens the state file at the default path.
func OpenDefault() (*StateFile, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Path returns the file path.
func (sf *StateFile) Path() string {
	return sf.path
}

// Load reads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse %s: %w", sf.path, err)
	}
	return nil
}

// Save writes the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(sf.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetLastDevice records the last connected device.
func (sf *StateFile) SetLastDevice(address, name string) error {
	sf.state.LastDeviceAddress = address
	sf.state.LastDeviceName = name
	return sf.Save()
}

// SetLastSession records the last journaled session.
func (sf *StateFile) SetLastSession(id string) error {
	sf.state.LastSessionID = id
	return sf.Save()
}

// ClearLastSession forgets the last session, for example after it was
// deleted.
func (sf *StateFile) ClearLastSession() error {
	sf.state.LastSessionID = ""
	return sf.Save()
}

// LastDeviceAddress returns the last connected device address.
func (sf *StateFile) LastDeviceAddress() string {
	return sf.state.LastDeviceAddress
}

// LastSessionID returns the last journaled session ID.
func (sf *StateFile) LastSessionID() string {
	return sf.state.LastSessionID
}
