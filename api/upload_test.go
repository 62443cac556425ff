package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/session"
)

// pngHeader is enough for content sniffing to recognize image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type recordedUpload struct {
	Method   string
	Path     string
	Auth     string
	Filename string
	PartType string
	Content  []byte
	FormErr  error
}

// newUploadServer wires a Client to a stub that pulls one file out of the
// given multipart field and records what arrived.
func newUploadServer(t *testing.T, field string) (*Client, *session.FileStore, *recordedUpload) {
	t.Helper()

	rec := &recordedUpload{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Auth = r.Header.Get("Authorization")

		file, header, err := r.FormFile(field)
		if err != nil {
			rec.FormErr = err
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"statusCode":400,"data":null,"message":"file missing","success":false}`)
			return
		}
		defer file.Close()

		rec.Filename = header.Filename
		rec.PartType = header.Header.Get("Content-Type")
		rec.Content, _ = io.ReadAll(file)

		io.WriteString(w, okEnvelope(`{"_id":"u1","username":"maria"}`))
	}))
	t.Cleanup(srv.Close)

	store, err := session.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewClient(srv.URL, store), store, rec
}

func TestUpdateUserAvatar(t *testing.T) {
	client, store, rec := newUploadServer(t, "avatar")
	require.NoError(t, store.SetTokens("access-1", "refresh-1"))

	img := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	user, err := client.UpdateUserAvatar(context.Background(), "avatar.png", bytes.NewReader(img))
	require.NoError(t, err)
	require.Equal(t, "maria", user.Username)

	require.NoError(t, rec.FormErr)
	require.Equal(t, http.MethodPatch, rec.Method)
	require.Equal(t, "/users/avatar", rec.Path)
	require.Equal(t, "Bearer access-1", rec.Auth)
	require.Equal(t, "avatar.png", rec.Filename)
	require.Equal(t, "image/png", rec.PartType)
	require.Equal(t, img, rec.Content)
}

func TestUpdateUserCoverImage(t *testing.T) {
	client, _, rec := newUploadServer(t, "coverImage")

	// Bigger than the sniff window, so the copy path runs too. No session
	// stored: the upload still goes out, unauthenticated.
	content := bytes.Repeat([]byte("cover-bytes-"), 200)
	_, err := client.UpdateUserCoverImage(context.Background(), "cover.jpg", bytes.NewReader(content))
	require.NoError(t, err)

	require.NoError(t, rec.FormErr)
	require.Equal(t, "/users/cover-image", rec.Path)
	require.Empty(t, rec.Auth)
	require.Equal(t, "cover.jpg", rec.Filename)
	require.Equal(t, content, rec.Content)
}
