package storage

import (
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var objectURL = regexp.MustCompile(`^http://cdn\.test/media/avatars/[0-9A-HJKMNP-TV-Z]{26}\.png$`)

func newTestStore(t *testing.T) *MediaStore {
	t.Helper()
	store, err := NewMediaStore(t.TempDir(), "http://cdn.test/")
	require.NoError(t, err)
	return store
}

func TestSaveNamesObjectsWithULIDAndExtension(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save(context.Background(), "avatars", "Photo.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Regexp(t, objectURL, url, "name is a ULID with the lowercased original extension")
}

func TestSaveOpenDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	url, err := store.Save(ctx, "documents", "cv.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	name := strings.TrimPrefix(url, "http://cdn.test/media/")

	r, err := store.Open(ctx, name)
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, r.Close())
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(body))

	require.NoError(t, store.Delete(ctx, name))
	_, err = store.Open(ctx, name)
	assert.Error(t, err)
}

func TestListWalksAllFolders(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Save(ctx, "images", "a.png", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "documents", "b.pdf", strings.NewReader("bb"))
	require.NoError(t, err)

	objects, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	for _, obj := range objects {
		assert.Equal(t, store.URLFor(obj.Name), obj.URL)
		assert.Positive(t, obj.Size)
		assert.False(t, obj.ModTime.IsZero())
	}
}

func TestObjectNameRejectsTraversal(t *testing.T) {
	name := objectName("../../etc", "passwd.png")
	assert.False(t, strings.Contains(name, ".."), "folder is cleaned before use")

	name = objectName("", "plain.png")
	assert.NotContains(t, name, "/", "empty folder stores at the root")
}

func TestImagePolicy(t *testing.T) {
	assert.NoError(t, ImagePolicy.ValidateFile("me.png", "image/png", 1024))
	assert.NoError(t, ImagePolicy.ValidateFile("me.webp", "image/webp; charset=binary", 1024))

	assert.Error(t, ImagePolicy.ValidateFile("me.png", "image/png", 6<<20), "over the size cap")
	assert.Error(t, ImagePolicy.ValidateFile("me.png", "application/pdf", 1024), "wrong content type")
	assert.Error(t, ImagePolicy.ValidateFile("me.bmp", "image/bmp", 1024), "extension not allowed")
	assert.Error(t, ImagePolicy.ValidateFile("noext", "image/png", 1024), "missing extension")
}

func TestPDFPolicy(t *testing.T) {
	assert.NoError(t, PDFPolicy.ValidateFile("cv.pdf", "application/pdf", 1024))
	assert.Error(t, PDFPolicy.ValidateFile("cv.pdf", "image/png", 1024))
	assert.Error(t, PDFPolicy.ValidateFile("cv.docx", "application/pdf", 1024))
	assert.Error(t, PDFPolicy.ValidateFile("cv.pdf", "application/pdf", 11<<20))
}
