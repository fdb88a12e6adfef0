package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fidel-otieno2/KinKeep.app/pkg/storage"
)

func setupService(t *testing.T) (UploadService, *storage.LocalStorage) {
	t.Helper()
	store, err := storage.NewLocalStorage(storage.LocalConfig{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:8080/media",
	})
	require.NoError(t, err)
	return NewUploadService(store, 10*time.Second, time.Hour), store
}

func request(name, uploadType string, size int64, body string) *UploadRequest {
	return &UploadRequest{
		Filename:    name,
		Size:        size,
		ContentType: "application/octet-stream",
		Type:        uploadType,
		Reader:      strings.NewReader(body),
	}
}

func TestUploadStoresFileAndReturnsURL(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	resp, err := svc.Upload(ctx, request("holiday.jpg", TypeImage, 5, "12345"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.URL, "http://localhost:8080/media/image/"))
	assert.True(t, strings.HasSuffix(resp.Key, ".jpg"))
	assert.Equal(t, int64(5), resp.Size)
	assert.Zero(t, resp.DurationSeconds, "images carry no duration")

	rc, err := store.Read(ctx, resp.Key)
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(content))
}

func TestUploadUsesRequestedFolder(t *testing.T) {
	svc, _ := setupService(t)

	req := request("voice.mp3", TypeAudio, 3, "abc")
	req.Folder = "stories"
	req.DurationSeconds = 12.5
	resp, err := svc.Upload(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Key, "stories/"))
	assert.Equal(t, 12.5, resp.DurationSeconds)
}

func TestUploadRejectsUnknownType(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.Upload(context.Background(), request("doc.pdf", "document", 3, "abc"))
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestUploadRejectsWrongExtensionForType(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	// A video extension under the image type is refused.
	_, err := svc.Upload(ctx, request("clip.mp4", TypeImage, 3, "abc"))
	assert.ErrorIs(t, err, ErrInvalidExtension)
	_, err = svc.Upload(ctx, request("noext", TypeImage, 3, "abc"))
	assert.ErrorIs(t, err, ErrInvalidExtension)

	// Extension matching is case-insensitive.
	_, err = svc.Upload(ctx, request("PHOTO.JPG", TypeImage, 3, "abc"))
	require.NoError(t, err)
}

func TestUploadEnforcesPerTypeSizeCaps(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, request("big.jpg", TypeImage, maxImageSize+1, ""))
	assert.ErrorIs(t, err, ErrFileTooLarge)
	_, err = svc.Upload(ctx, request("big.mp3", TypeAudio, maxAudioSize+1, ""))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	// The video cap is higher than the image cap.
	req := request("film.mp4", TypeVideo, maxImageSize+1, "abc")
	req.Size = 3
	_, err = svc.Upload(ctx, req)
	require.NoError(t, err)
}
