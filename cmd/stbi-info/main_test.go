package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, m))

	path := filepath.Join(dir, "pic.png")
	assert.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Setenv("CONFIG", "")

	var out bytes.Buffer
	cmd := newCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	path := writePNG(t, t.TempDir(), 4, 3)

	out, err := execute(t, path)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s: 4x3 channels=3 stride=12\n", path), out)
}

func TestInfoForcedComponents(t *testing.T) {
	path := writePNG(t, t.TempDir(), 4, 3)

	out, err := execute(t, "-c", "4", path)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s: 4x3 channels=4 stride=16\n", path), out)
}

func TestInfoFailure(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, 4, 3)
	missing := filepath.Join(dir, "missing.png")

	out, err := execute(t, path, missing)
	assert.EqualError(t, err, "1 of 2 files failed to decode")
	assert.Contains(t, out, fmt.Sprintf("%s: 4x3 channels=3 stride=12\n", path))
	assert.Contains(t, out, missing+": IO error: ")
}

func TestInfoNeedsFiles(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}

func TestInfoConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, 2, 2)
	conf := filepath.Join(dir, "stbi.conf")
	assert.NoError(t, os.WriteFile(conf, []byte("force_components = 1\n"), 0644))

	out, err := execute(t, "--config", conf, path)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s: 2x2 channels=1 stride=2\n", path), out)

	// an explicit flag wins over the file
	out, err = execute(t, "--config", conf, "-c", "2", path)
	assert.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s: 2x2 channels=2 stride=4\n", path), out)
}
