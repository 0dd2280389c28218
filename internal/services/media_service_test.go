package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentdesk/internal/config"
	"rentdesk/internal/models"
)

func newMediaFixture(t *testing.T) (IPropertyService, IMediaService, *recorderSink) {
	t.Helper()
	stores := newTestStores()
	sink := &recorderSink{}
	props := NewPropertyService(stores, sink)
	media := NewMediaService(&config.Config{UploadMaxSizeMB: 1}, nil, props, sink)
	return props, media, sink
}

func TestUploadMediaInlinesDataURL(t *testing.T) {
	ctx := context.Background()
	props, media, _ := newMediaFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	content := []byte("fake-jpeg-bytes")
	url, err := media.UploadMedia(ctx, p.ID, MediaUpload{
		Filename:    "front.jpg",
		ContentType: "image/jpeg",
		Size:        int64(len(content)),
		Data:        content,
	})
	require.NoError(t, err)
	expected := fmt.Sprintf("data:image/jpeg;base64,%s", base64.StdEncoding.EncodeToString(content))
	assert.Equal(t, expected, url)

	got, _, err := props.FindPropertyByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 1)
	assert.Equal(t, expected, got.Images[0])
	assert.Empty(t, got.Videos)
}

func TestUploadMediaRoutesVideosSeparately(t *testing.T) {
	ctx := context.Background()
	props, media, _ := newMediaFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	_, err := media.UploadMedia(ctx, p.ID, MediaUpload{
		Filename:    "tour.mp4",
		ContentType: "video/mp4",
		Size:        4,
		Data:        []byte("mp4!"),
	})
	require.NoError(t, err)

	got, _, err := props.FindPropertyByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Images)
	assert.Len(t, got.Videos, 1)
}

func TestUploadMediaRejectsOversized(t *testing.T) {
	ctx := context.Background()
	props, media, sink := newMediaFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)
	sink.reset()

	_, err := media.UploadMedia(ctx, p.ID, MediaUpload{
		Filename:    "huge.jpg",
		ContentType: "image/jpeg",
		Size:        2 * 1024 * 1024, // limit is 1MB in this fixture
	})
	assert.ErrorIs(t, err, ErrOversizedUpload)

	n, ok := sink.find("Upload Error")
	require.True(t, ok)
	assert.Equal(t, "File(s) exceed 1MB size limit. Please upload smaller files.", n.Description)

	// Nothing was attached.
	got, _, err := props.FindPropertyByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Images)
}

func TestPresignUploadWithoutS3(t *testing.T) {
	ctx := context.Background()
	props, media, _ := newMediaFixture(t)
	p := seedProperty(t, props, models.PropertyStatusAvailable)

	_, _, err := media.PresignUpload(ctx, p.ID, "front.jpg", "image/jpeg", 100)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOversizedUpload)
}
