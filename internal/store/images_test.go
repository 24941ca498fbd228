package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageName(t *testing.T) {
	id, err := ParseImageName("101_X_20230615083000.jpg")
	require.NoError(t, err)
	assert.Equal(t, 101, id.CameraId)
	assert.Equal(t, time.Date(2023, 6, 15, 8, 30, 0, 0, time.UTC), id.Timestamp)
}

func TestParseImageNameExtraFields(t *testing.T) {
	// Only the first and third fields carry identity.
	id, err := ParseImageName("2706_view_20230101120000_retake.jpg")
	require.NoError(t, err)
	assert.Equal(t, 2706, id.CameraId)
	assert.Equal(t, 12, id.Timestamp.Hour())
}

func TestParseImageNameRejections(t *testing.T) {
	bad := []string{
		"snapshot.jpg",              // no identity fields
		"101_20230615083000.jpg",    // timestamp in the wrong position
		"abc_X_20230615083000.jpg",  // non-numeric camera id
		"101_X_2023061508300.jpg",   // 13-digit timestamp
		"101_X_20231315083000.jpg",  // month 13
		"101_X_notatimestamp00.jpg", // non-numeric timestamp
		"-1_X_20230615083000.jpg",   // negative camera id
	}
	for _, name := range bad {
		_, err := ParseImageName(name)
		assert.ErrorIs(t, err, ErrInvalidImageName, "name %q", name)
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"101_X_20230615083000.jpg", "102_X_20230615083000.JPG", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	// artifact subdirectory from a previous run must not be descended into
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "North"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "North", "North_101_bbox.jpg"), []byte("x"), 0644))

	paths, err := ListImages(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "101_X_20230615083000.jpg"), paths[0])
	assert.Equal(t, filepath.Join(dir, "102_X_20230615083000.JPG"), paths[1])
}

func TestListImagesMissingDir(t *testing.T) {
	_, err := ListImages(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
