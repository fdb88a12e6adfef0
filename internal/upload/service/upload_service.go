package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fidel-otieno2/KinKeep.app/pkg/log"
	"github.com/fidel-otieno2/KinKeep.app/pkg/storage"
)

var (
	ErrInvalidType      = errors.New("invalid upload type")
	ErrInvalidExtension = errors.New("file extension not allowed for this type")
	ErrFileTooLarge     = errors.New("file exceeds the size limit for this type")
)

// Upload types and their limits.
const (
	TypeImage = "image"
	TypeVideo = "video"
	TypeAudio = "audio"

	maxImageSize = 10 << 20  // 10 MB
	maxVideoSize = 100 << 20 // 100 MB
	maxAudioSize = 25 << 20  // 25 MB
)

var allowedExtensions = map[string]map[string]bool{
	TypeImage: {".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true},
	TypeVideo: {".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true},
	TypeAudio: {".mp3": true, ".wav": true, ".ogg": true, ".m4a": true, ".aac": true},
}

var sizeLimits = map[string]int64{
	TypeImage: maxImageSize,
	TypeVideo: maxVideoSize,
	TypeAudio: maxAudioSize,
}

// UploadRequest carries one validated multipart file.
type UploadRequest struct {
	Filename    string
	Size        int64
	ContentType string
	Type        string
	Folder      string
	// DurationSeconds is an optional client-supplied duration for audio and
	// video, echoed back untouched.
	DurationSeconds float64
	Reader          io.Reader
}

// UploadResponse is the stored file's durable location.
type UploadResponse struct {
	URL             string  `json:"url"`
	Key             string  `json:"key"`
	Type            string  `json:"type"`
	Size            int64   `json:"size"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// UploadService validates media files and hands them to the storage backend.
type UploadService interface {
	Upload(ctx context.Context, req *UploadRequest) (*UploadResponse, error)
}

type uploadService struct {
	store     storage.Storage
	timeout   time.Duration
	urlExpiry time.Duration
}

var _ UploadService = (*uploadService)(nil)

func NewUploadService(store storage.Storage, timeout, urlExpiry time.Duration) UploadService {
	return &uploadService{store: store, timeout: timeout, urlExpiry: urlExpiry}
}

func (s *uploadService) Upload(ctx context.Context, req *UploadRequest) (*UploadResponse, error) {
	exts, ok := allowedExtensions[req.Type]
	if !ok {
		return nil, ErrInvalidType
	}
	ext := strings.ToLower(filepath.Ext(req.Filename))
	if !exts[ext] {
		return nil, ErrInvalidExtension
	}
	if req.Size > sizeLimits[req.Type] {
		return nil, ErrFileTooLarge
	}

	folder := req.Folder
	if folder == "" {
		folder = req.Type
	}
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	writeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.store.Write(writeCtx, key, req.Reader, req.Size, req.ContentType); err != nil {
		return nil, fmt.Errorf("store %s: %w", key, err)
	}

	url, err := s.store.GetURL(ctx, key, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("url for %s: %w", key, err)
	}

	log.Ctx(ctx).Info().
		Str("key", key).
		Str("type", req.Type).
		Int64("size", req.Size).
		Msg("file uploaded")

	resp := &UploadResponse{
		URL:  url,
		Key:  key,
		Type: req.Type,
		Size: req.Size,
	}
	if req.Type == TypeAudio || req.Type == TypeVideo {
		resp.DurationSeconds = req.DurationSeconds
	}
	return resp, nil
}
