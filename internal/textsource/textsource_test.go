package textsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o644))

	text, err := ExtractText(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", text)
}

func TestExtractTextMissingFile(t *testing.T) {
	_, err := ExtractText(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestExtractTextRejectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644))

	_, err := ExtractText(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestDocName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/physics.txt", "physics"},
		{"notes.md", "notes"},
		{"dir/sub/waves.pdf.txt", "waves.pdf"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DocName(tt.path), tt.path)
	}
}
