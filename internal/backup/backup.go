// Package backup exports the household snapshot as a passphrase-encrypted
// file and reads such files back for restore.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dukerupert/questboard/internal/model"
)

// FormatVersion is bumped whenever the envelope layout changes.
const FormatVersion = 1

// Extension is the file suffix of an encrypted export.
const Extension = ".qbk"

var ErrUnsupportedVersion = errors.New("unsupported backup version")

type envelope struct {
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	Snapshot  *model.Snapshot `json:"snapshot"`
}

// Export serializes and encrypts snap.
func Export(snap *model.Snapshot, passphrase string, now time.Time) ([]byte, error) {
	if passphrase == "" {
		return nil, errors.New("passphrase is required")
	}
	plaintext, err := json.Marshal(envelope{Version: FormatVersion, CreatedAt: now, Snapshot: snap})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return Seal(plaintext, passphrase)
}

// Import decrypts and parses an export.
func Import(data []byte, passphrase string) (*model.Snapshot, error) {
	plaintext, err := Open(data, passphrase)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(plaintext, &env); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	if env.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	if env.Snapshot == nil {
		return nil, errors.New("backup has no snapshot")
	}
	return env.Snapshot, nil
}

// Filename names an export taken at now.
func Filename(now time.Time) string {
	return "questboard-" + now.Format("20060102-150405") + Extension
}

// WriteFile exports snap into dir and returns the file path and size.
func WriteFile(dir string, snap *model.Snapshot, passphrase string, now time.Time) (string, int64, error) {
	data, err := Export(snap, passphrase, now)
	if err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", 0, fmt.Errorf("create backup dir: %w", err)
	}
	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", 0, fmt.Errorf("write backup: %w", err)
	}
	return path, int64(len(data)), nil
}

// ReadFile imports the export at path.
func ReadFile(path, passphrase string) (*model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return Import(data, passphrase)
}
