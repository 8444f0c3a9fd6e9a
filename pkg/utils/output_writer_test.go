/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: output_writer_test.go
Description: Tests for run artifact writing.
*/

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArtifact(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := WriteArtifact(dir, "model", "abc", "alfa", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "model_abc.alfa"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestWriteJSONArtifact(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteJSONArtifact(dir, "summary", "abc", map[string]int{"states": 3})
	require.NoError(t, err)
	assert.Equal(t, ArtifactPath(dir, "summary", "abc", "json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"states": 3}`, string(data))

	_, err = WriteJSONArtifact(dir, "bad", "abc", make(chan int))
	assert.Error(t, err)
}
