package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for content sniffing to recognize it.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

// makeFileHeader builds a real multipart.FileHeader the way gin would hand
// one to a handler.
func makeFileHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestValidate(t *testing.T) {
	store := NewStore(t.TempDir(), 1024)

	tests := []struct {
		name        string
		filename    string
		contentType string
		body        []byte
		wantErr     error
	}{
		{
			name:        "png accepted",
			filename:    "pic.png",
			contentType: "image/png",
			body:        pngHeader,
		},
		{
			name:        "pdf accepted",
			filename:    "doc.pdf",
			contentType: "application/pdf",
			body:        []byte("%PDF-1.4 fixture"),
		},
		{
			name:        "mp4 accepted via declared type",
			filename:    "clip.mp4",
			contentType: "video/mp4",
			body:        []byte{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name:        "plain text rejected",
			filename:    "notes.txt",
			contentType: "text/plain",
			body:        []byte("just text"),
			wantErr:     ErrFileType,
		},
		{
			name:        "spoofed extension rejected",
			filename:    "evil.png",
			contentType: "image/png",
			body:        []byte("<html><body>nope</body></html>"),
			wantErr:     ErrFileType,
		},
		{
			name:        "oversize rejected",
			filename:    "big.png",
			contentType: "image/png",
			body:        append(pngHeader, make([]byte, 2048)...),
			wantErr:     ErrFileSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := makeFileHeader(t, tt.filename, tt.contentType, tt.body)
			err := store.Validate(fh)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveRemoveExists(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1024)

	fh := makeFileHeader(t, "pic.png", "image/png", pngHeader)
	path, err := store.Save(fh)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".png", filepath.Ext(path))
	assert.True(t, store.Exists(path))

	require.NoError(t, store.Remove(path))
	assert.False(t, store.Exists(path))

	// Removing an already removed file is not an error.
	assert.NoError(t, store.Remove(path))
}

func TestSaveRejectsInvalidWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 1024)

	fh := makeFileHeader(t, "notes.txt", "text/plain", []byte("just text"))
	_, err := store.Save(fh)
	require.ErrorIs(t, err, ErrFileType)

	entries, err := filepath.Glob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := NewStore(t.TempDir(), 1024)

	first, err := store.Save(makeFileHeader(t, "pic.png", "image/png", pngHeader))
	require.NoError(t, err)
	second, err := store.Save(makeFileHeader(t, "pic.png", "image/png", pngHeader))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, store.Exists(first))
	assert.True(t, store.Exists(second))
}
