package usecases

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"houses-api/apperr"
	"houses-api/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type memStore struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func (s *memStore) Save(_ context.Context, name string, r io.Reader) error {
	if s.err != nil {
		return s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = map[string][]byte{}
	}
	s.files[name] = data
	return nil
}

func newPhotoUC(f *fixture, store PhotoStore, max int64) *PhotoUseCase {
	return NewPhotoUseCase(f.houses, f.lifecycle, store, max, f.events, logger.Nop())
}

func pngFile(name string) *PhotoFile {
	return &PhotoFile{
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(pngHeader)),
		Body:        bytes.NewReader(pngHeader),
	}
}

func TestUploadHousePhoto_Stores(t *testing.T) {
	f := newFixture(t)
	h := f.createHouse(t, publisher, "Oak Hall")
	store := &memStore{}

	name, err := newPhotoUC(f, store, 1000).UploadHousePhoto(context.Background(), publisher, h.ID, pngFile("me.PNG"))
	require.NoError(t, err)
	assert.Equal(t, "photo_"+h.ID+".png", name)
	assert.Equal(t, pngHeader, store.files[name])

	got, err := f.houseUC.GetHouse(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Photo)
}

func TestUploadHousePhoto_ExtensionFromContent(t *testing.T) {
	f := newFixture(t)
	h := f.createHouse(t, publisher, "Oak Hall")

	name, err := newPhotoUC(f, &memStore{}, 1000).UploadHousePhoto(context.Background(), publisher, h.ID, pngFile("noext"))
	require.NoError(t, err)
	assert.Equal(t, "photo_"+h.ID+".png", name)
}

func TestUploadHousePhoto_Rejections(t *testing.T) {
	f := newFixture(t)
	h := f.createHouse(t, publisher, "Oak Hall")
	uc := newPhotoUC(f, &memStore{}, 10)
	ctx := context.Background()

	_, err := uc.UploadHousePhoto(ctx, publisher, h.ID, nil)
	assert.True(t, apperr.Is(err, apperr.KindUpload))
	assert.Equal(t, "Please upload a file", err.Error())

	text := &PhotoFile{Filename: "a.txt", ContentType: "text/plain", Size: 5, Body: strings.NewReader("hello")}
	_, err = uc.UploadHousePhoto(ctx, publisher, h.ID, text)
	assert.Equal(t, "Please upload an image file", err.Error())

	_, err = uc.UploadHousePhoto(ctx, publisher, h.ID, pngFile("big.png"))
	assert.True(t, apperr.Is(err, apperr.KindUpload))
	assert.Equal(t, "Please upload an image less than 10", err.Error())

	disguised := &PhotoFile{Filename: "a.png", ContentType: "image/png", Size: 5, Body: strings.NewReader("hello")}
	_, err = uc.UploadHousePhoto(ctx, publisher, h.ID, disguised)
	assert.Equal(t, "Please upload an image file", err.Error())

	got, err := f.houseUC.GetHouse(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "no-photo.jpg", got.Photo)
}

func TestUploadHousePhoto_ForbiddenAndMissing(t *testing.T) {
	f := newFixture(t)
	h := f.createHouse(t, publisher, "Oak Hall")
	uc := newPhotoUC(f, &memStore{}, 1000)

	_, err := uc.UploadHousePhoto(context.Background(), stranger, h.ID, pngFile("a.png"))
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = uc.UploadHousePhoto(context.Background(), publisher, "missing", pngFile("a.png"))
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestUploadHousePhoto_StoreFailure(t *testing.T) {
	f := newFixture(t)
	h := f.createHouse(t, publisher, "Oak Hall")
	uc := newPhotoUC(f, &memStore{err: errors.New("disk full")}, 1000)

	_, err := uc.UploadHousePhoto(context.Background(), publisher, h.ID, pngFile("a.png"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindStorage))
	assert.Equal(t, "Problem with file upload", err.Error())
}
