package engine

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest summarizes a finished render. It is written next to the frames so
// downstream tooling knows how to stitch them.
type Manifest struct {
	Frames    int       `json:"frames"`
	Plays     int       `json:"plays"`
	FPS       float64   `json:"fps"`
	Stitch    string    `json:"stitch"`
	CreatedAt time.Time `json:"created_at"`
}

// Save writes the manifest to a JSON file.
func (m *Manifest) Save(path string) error {
	m.CreatedAt = time.Now()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadManifest reads a manifest written by Save.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
