// Package yamlio reads and writes snapshots as human-editable YAML.
package yamlio

import (
	"fmt"
	"io"
	"os"
	"time"

	"lifeos/domain/snapshot"

	"gopkg.in/yaml.v3"
)

// Encode writes snap as YAML
func Encode(w io.Writer, snap *snapshot.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return enc.Close()
}

// Decode reads and validates a YAML snapshot
func Decode(r io.Reader) (*snapshot.Snapshot, error) {
	snap := snapshot.New(time.Time{})
	if err := yaml.NewDecoder(r).Decode(snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version == 0 {
		snap.Version = snapshot.CurrentVersion
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// WriteFile encodes snap to path
func WriteFile(path string, snap *snapshot.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile decodes the snapshot stored at path
func ReadFile(path string) (*snapshot.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
