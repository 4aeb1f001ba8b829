package media

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/01moynul/artstudio-golang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	u := &Uploader{Dir: dir, BaseURL: "http://localhost:8080/", MaxBytes: 1 << 20}

	ref, err := u.Save(bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.Equal(t, models.MediaImage, ref.Kind)
	assert.Equal(t, int64(len(pngHeader)), ref.Size)
	assert.True(t, strings.HasSuffix(ref.Key, ".png"))
	assert.Equal(t, "http://localhost:8080/uploads/"+ref.Key, ref.URL)

	stored, err := os.ReadFile(filepath.Join(dir, ref.Key))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	require.NoError(t, u.Remove(ref.Key))
	_, err = os.Stat(filepath.Join(dir, ref.Key))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, u.Remove(ref.Key))
}

func TestSaveNamesFilesByDetectedType(t *testing.T) {
	dir := t.TempDir()
	u := &Uploader{Dir: dir, BaseURL: "http://localhost:8080"}

	// GIF header followed by markup: sniffed as an image, must not keep .html.
	polyglot := "GIF89a\x01\x00\x01\x00\x00\x00\x00<html><script>alert(1)</script></html>"
	ref, err := u.Save(strings.NewReader(polyglot))
	require.NoError(t, err)
	assert.Equal(t, models.MediaImage, ref.Kind)
	assert.Equal(t, ".gif", filepath.Ext(ref.Key))

	ref, err = u.Save(bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(ref.Key))
}

func TestSaveRejectsOtherKinds(t *testing.T) {
	u := &Uploader{Dir: t.TempDir()}
	_, err := u.Save(strings.NewReader("just some notes"))
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestSaveRejectsLargeFiles(t *testing.T) {
	dir := t.TempDir()
	u := &Uploader{Dir: dir, MaxBytes: 10}
	_, err := u.Save(bytes.NewReader(pngHeader))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemoveRejectsPaths(t *testing.T) {
	u := &Uploader{Dir: t.TempDir()}
	assert.Error(t, u.Remove("../etc/passwd"))
	assert.Error(t, u.Remove(""))
}

func TestKindOf(t *testing.T) {
	k, ok := KindOf("video/mp4")
	assert.True(t, ok)
	assert.Equal(t, models.MediaVideo, k)

	_, ok = KindOf("application/pdf")
	assert.False(t, ok)
}
