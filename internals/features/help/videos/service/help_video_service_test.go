package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kompetensi_backend/internals/configs"
	database "kompetensi_backend/internals/databases"
	"kompetensi_backend/internals/features/help/videos/dto"
	m "kompetensi_backend/internals/features/help/videos/model"
	helper "kompetensi_backend/internals/helpers"
	"kompetensi_backend/internals/helpers/apperr"
	helperAuth "kompetensi_backend/internals/helpers/auth"
	"kompetensi_backend/internals/helpers/storage"
)

func newService(t *testing.T) (*Service, *storage.Memory) {
	t.Helper()
	db := database.NewTestDB(t, &m.HelpVideoModel{})
	store := storage.NewMemory("help", "https://cdn.test/help")
	cfg := configs.HelpConfig{MaxFileMB: 1, ThumbnailMaxW: 64, ThumbnailMaxH: 36, ThumbnailQ: 80}
	return New(db, store, cfg, nil), store
}

func pngUpload(t *testing.T, name string, w, h int) *storage.Upload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &storage.Upload{Filename: name, Size: int64(buf.Len()), Body: bytes.NewReader(buf.Bytes())}
}

func session() helperAuth.Session {
	return helperAuth.Session{AccountID: uuid.New()}
}

func createReq() dto.CreateHelpVideoRequest {
	d := " 12:30 "
	return dto.CreateHelpVideoRequest{
		Title:       "Tutorial Input Kompetensi",
		Description: "Langkah demi langkah",
		VideoURL:    "https://www.youtube.com/watch?v=abc123",
		Duration:    &d,
	}
}

func TestCreateWithoutThumbnail(t *testing.T) {
	svc, store := newService(t)

	row, err := svc.Create(context.Background(), session(), createReq(), nil)
	require.NoError(t, err)
	assert.Nil(t, row.HelpVideoThumbnailURL)
	require.NotNil(t, row.HelpVideoDuration)
	assert.Equal(t, "12:30", *row.HelpVideoDuration)
	assert.Equal(t, 0, store.Len())
}

func TestCreateRejectsRelativeOrNonHTTPURL(t *testing.T) {
	svc, _ := newService(t)
	for _, u := range []string{"", "/videos/1", "ftp://host/video.mp4", "youtube.com/watch"} {
		req := createReq()
		req.VideoURL = u
		_, err := svc.Create(context.Background(), session(), req, nil)
		var fe apperr.FieldErrors
		require.ErrorAs(t, err, &fe, "url %q", u)
		assert.Contains(t, fe, "help_video_url")
	}
}

func TestCreateConvertsThumbnailToWebP(t *testing.T) {
	svc, store := newService(t)

	row, err := svc.Create(context.Background(), session(), createReq(), pngUpload(t, "cover.png", 640, 360))
	require.NoError(t, err)
	require.NotNil(t, row.HelpVideoThumbnailPath)
	key := *row.HelpVideoThumbnailPath
	assert.True(t, strings.HasPrefix(key, "thumbnails/"))
	assert.True(t, strings.HasSuffix(key, "-cover.webp"))
	assert.Equal(t, "https://cdn.test/help/"+key, *row.HelpVideoThumbnailURL)

	data, ct, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, "image/webp", ct)
	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 36, cfg.Height)
}

func TestCreateRejectsNonImageThumbnail(t *testing.T) {
	svc, store := newService(t)
	bad := &storage.Upload{Filename: "cover.png", Size: 4, Body: strings.NewReader("nope")}

	_, err := svc.Create(context.Background(), session(), createReq(), bad)
	var fe apperr.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "thumbnail")
	assert.Equal(t, 0, store.Len())
}

func TestUpdateReplacesAndRemovesThumbnail(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	row, err := svc.Create(ctx, session(), createReq(), pngUpload(t, "a.png", 20, 20))
	require.NoError(t, err)
	first := *row.HelpVideoThumbnailPath

	upd, err := svc.Update(ctx, row.HelpVideoID, dto.UpdateHelpVideoRequest{}, pngUpload(t, "b.png", 20, 20))
	require.NoError(t, err)
	second := *upd.HelpVideoThumbnailPath
	assert.NotEqual(t, first, second)
	_, _, ok := store.Get(first)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())

	upd, err = svc.Update(ctx, row.HelpVideoID, dto.UpdateHelpVideoRequest{RemoveThumbnail: true}, nil)
	require.NoError(t, err)
	assert.Nil(t, upd.HelpVideoThumbnailPath)
	assert.Nil(t, upd.HelpVideoThumbnailURL)
	assert.Equal(t, 0, store.Len())
}

func TestUpdatePatchFields(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	row, err := svc.Create(ctx, session(), createReq(), nil)
	require.NoError(t, err)

	upd, err := svc.Update(ctx, row.HelpVideoID, dto.UpdateHelpVideoRequest{
		VideoURL: helper.Set("https://vimeo.com/123"),
		Duration: helper.Set(""),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://vimeo.com/123", upd.HelpVideoURL)
	assert.Nil(t, upd.HelpVideoDuration)
	assert.Equal(t, "Tutorial Input Kompetensi", upd.HelpVideoTitle)

	_, err = svc.Update(ctx, row.HelpVideoID, dto.UpdateHelpVideoRequest{VideoURL: helper.Set("bukan url")}, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Update(ctx, uuid.New(), dto.UpdateHelpVideoRequest{Title: helper.Set("x")}, nil)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteRemovesThumbnail(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	row, err := svc.Create(ctx, session(), createReq(), pngUpload(t, "a.png", 10, 10))
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	_, err = svc.Delete(ctx, row.HelpVideoID)
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())

	rows, err := svc.List(ctx, "tutorial")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
