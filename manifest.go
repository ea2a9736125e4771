package ncprep

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manifest describes one transform run. It is written as YAML next to (or
// anywhere apart from) the output when the user asks for it.
type Manifest struct {
	Transform string          `yaml:"transform"`
	Input     string          `yaml:"input"`
	Output    string          `yaml:"output,omitempty"`
	Started   time.Time       `yaml:"started"`
	Duration  string          `yaml:"duration"`
	Checks    []ManifestCheck `yaml:"checks"`
	Counts    map[string]int  `yaml:"counts,omitempty"`
	Digest    string          `yaml:"digest,omitempty"`
}

// ManifestCheck is the outcome of one sanity check.
type ManifestCheck struct {
	Name    string `yaml:"name"`
	Status  string `yaml:"status"`
	Message string `yaml:"message,omitempty"`
}

// FormatDigest renders an output digest the way manifests store it.
func FormatDigest(d uint64) string {
	return fmt.Sprintf("%016x", d)
}

// WriteFile marshals the manifest and writes it atomically to path.
func (m *Manifest) WriteFile(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshaling manifest")
	}
	out, err := CreateAtomic(path)
	if err != nil {
		return errors.Wrap(err, "creating manifest")
	}
	defer out.Abort()
	if _, err := out.Write(data); err != nil {
		return errors.Wrap(err, "writing manifest")
	}
	_, err = out.Commit()
	return errors.Wrap(err, "committing manifest")
}

// ReadManifest loads a manifest written by WriteFile.
func ReadManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, errors.Wrap(err, "unmarshaling manifest")
	}
	return m, nil
}
