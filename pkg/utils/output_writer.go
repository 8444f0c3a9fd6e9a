/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: output_writer.go
Description: Utility for writing run artifacts to an output directory.
Names files by artifact kind and run id and creates the directory on demand.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactPath returns dir/<kind>_<runID>.<ext>
func ArtifactPath(dir, kind, runID, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", kind, runID, ext))
}

// WriteArtifact writes raw bytes as a run artifact and returns its path
func WriteArtifact(dir, kind, runID, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := ArtifactPath(dir, kind, runID, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", kind, err)
	}
	return path, nil
}

// WriteJSONArtifact marshals v as indented JSON and writes it as a run artifact
func WriteJSONArtifact(dir, kind, runID string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	return WriteArtifact(dir, kind, runID, "json", data)
}
