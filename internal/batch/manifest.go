package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clock3d/internal/animation"
	"clock3d/internal/clockface"
)

// FaceAngles pairs a face with its hand angles for one frame.
type FaceAngles struct {
	Face   string           `json:"face"`
	Angles clockface.Angles `json:"angles"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index int          `json:"index"`
	Time  time.Time    `json:"time"`
	Image string       `json:"image,omitempty"`
	Faces []FaceAngles `json:"faces,omitempty"`
	Error string       `json:"error,omitempty"`
}

// Manifest describes a timelapse run.
type Manifest struct {
	RunID    string          `json:"run_id"`
	Start    time.Time       `json:"start"`
	Step     string          `json:"step"`
	Location string          `json:"location"`
	Frames   []ManifestEntry `json:"frames"`
}

// NewManifest builds the manifest for a finished run. Failed frames keep their
// time and error but no image.
func NewManifest(runID string, cfg Config, results []Result) Manifest {
	loc := time.Local
	if cfg.Location != nil {
		loc = cfg.Location
	}
	m := Manifest{
		RunID:    runID,
		Start:    cfg.Start.In(loc),
		Step:     cfg.Step.String(),
		Location: loc.String(),
		Frames:   make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		e := ManifestEntry{Index: r.Index, Time: r.Time, Faces: r.Faces}
		if r.Success {
			e.Image = filepath.ToSlash(r.Path)
		} else {
			e.Error = r.Error
		}
		m.Frames[i] = e
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("batch: mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("batch: read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("batch: parse manifest %s: %w", path, err)
	}
	return m, nil
}

func faceAngles(stage *animation.Stage, frame animation.Frame) []FaceAngles {
	out := make([]FaceAngles, len(frame.Angles))
	for i, a := range frame.Angles {
		out[i] = FaceAngles{Face: stage.Faces[i].Name, Angles: a}
	}
	return out
}
