package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/offlinefirst/snapvault/pkg/screenshots"
)

// SchemaVersion captures the manifest version for compatibility checks.
const SchemaVersion = 1

// Manifest is the durable metadata describing a saved screenshot.
type Manifest struct {
	SchemaVersion int       `json:"schema_version"`
	CapturedAt    time.Time `json:"captured_at"`
	Hostname      string    `json:"hostname"`
	AppVersion    string    `json:"app_version"`
	Backend       string    `json:"backend"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	ImagePath     string    `json:"image_path"`
}

// New constructs a manifest from capture metadata.
func New(meta screenshots.Metadata, hostname, appVersion string) Manifest {
	return Manifest{
		SchemaVersion: SchemaVersion,
		CapturedAt:    meta.CapturedAt,
		Hostname:      hostname,
		AppVersion:    appVersion,
		Backend:       meta.Backend,
		Width:         meta.Width,
		Height:        meta.Height,
		ImagePath:     meta.ImagePath,
	}
}

// SidecarPath returns the manifest location for a saved image path.
func SidecarPath(imagePath string) string {
	return strings.TrimSuffix(imagePath, ".png") + ".json"
}

// Save writes the manifest as indented JSON.
func Save(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %q: %w", path, err)
	}
	return nil
}

// Load reads a manifest back from disk.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %q: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("unmarshal manifest %q: %w", path, err)
	}
	if m.SchemaVersion != SchemaVersion {
		return Manifest{}, fmt.Errorf("unsupported manifest schema version %d", m.SchemaVersion)
	}
	return m, nil
}
