package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"rentdesk/internal/config"
	"rentdesk/internal/notify"
	"rentdesk/internal/storage"
	"rentdesk/internal/utils"
)

// ErrOversizedUpload is returned when an upload exceeds the configured size
// limit. It is the only media failure surfaced to the caller; everything else
// degrades to the inline data-URL fallback.
var ErrOversizedUpload = errors.New("file exceeds the upload size limit")

// MediaUpload describes one incoming property attachment.
type MediaUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte // inline content, used for the data-URL fallback
}

// IMediaService defines the interface for property media uploads. When S3 is
// configured the service hands back a presigned PUT URL; otherwise the file
// content is inlined as a data URL on the property itself.
type IMediaService interface {
	UploadMedia(ctx context.Context, propertyID utils.SixID, upload MediaUpload) (string, error)
	PresignUpload(ctx context.Context, propertyID utils.SixID, filename, contentType string, size int64) (string, string, error)
}

// mediaService implements IMediaService.
type mediaService struct {
	cfg             *config.Config
	s3              storage.IS3Storage // nil when S3 is not configured
	propertyService IPropertyService
	sink            notify.Sink
}

// NewMediaService creates a new MediaService. s3 may be nil, in which case
// every upload takes the data-URL path.
func NewMediaService(cfg *config.Config, s3 storage.IS3Storage, propertyService IPropertyService, sink notify.Sink) IMediaService {
	return &mediaService{
		cfg:             cfg,
		s3:              s3,
		propertyService: propertyService,
		sink:            sink,
	}
}

func (s *mediaService) maxSize() int64 {
	return int64(s.cfg.UploadMaxSizeMB) * 1024 * 1024
}

func (s *mediaService) rejectOversized(ctx context.Context, size int64) error {
	if size <= s.maxSize() {
		return nil
	}
	notify.Send(ctx, s.sink, notify.SeverityDestructive, "Upload Error",
		fmt.Sprintf("File(s) exceed %dMB size limit. Please upload smaller files.", s.cfg.UploadMaxSizeMB))
	return ErrOversizedUpload
}

// UploadMedia stores the upload inline as a data URL and attaches it to the
// property. Oversized files are rejected before anything is stored.
func (s *mediaService) UploadMedia(ctx context.Context, propertyID utils.SixID, upload MediaUpload) (string, error) {
	if err := s.rejectOversized(ctx, upload.Size); err != nil {
		return "", err
	}

	url := fmt.Sprintf("data:%s;base64,%s", upload.ContentType,
		base64.StdEncoding.EncodeToString(upload.Data))

	video := strings.HasPrefix(upload.ContentType, "video/")
	if err := s.propertyService.AttachMedia(ctx, propertyID, url, video); err != nil {
		return "", err
	}
	return url, nil
}

// PresignUpload returns a presigned S3 PUT URL and the final object URL for a
// direct upload, after the size check. The caller attaches the object URL to
// the property once the PUT succeeds. Falls back to an error when S3 is not
// configured; callers should use UploadMedia instead in that case.
func (s *mediaService) PresignUpload(ctx context.Context, propertyID utils.SixID, filename, contentType string, size int64) (string, string, error) {
	if err := s.rejectOversized(ctx, size); err != nil {
		return "", "", err
	}
	if s.s3 == nil {
		return "", "", fmt.Errorf("S3 storage is not configured")
	}

	putURL, objectKey, err := s.s3.GeneratePresignedPutURL(ctx, propertyID.String(), filename, contentType)
	if err != nil {
		return "", "", err
	}

	objectURL := objectKey
	if s.cfg.MediaBaseS3URL != "" {
		objectURL = strings.TrimRight(s.cfg.MediaBaseS3URL, "/") + "/" + objectKey
	}
	return putURL, objectURL, nil
}
