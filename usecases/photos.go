package usecases

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"houses-api/apperr"
	"houses-api/entities"
	"houses-api/logger"
	"houses-api/repositories"

	"github.com/gabriel-vasile/mimetype"
)

// PhotoStore persists uploaded house photos under a name.
type PhotoStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
}

// PhotoFile is an uploaded file as received from the client.
type PhotoFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

const sniffLen = 3072

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

type PhotoUseCase struct {
	houses    repositories.HouseRepository
	lifecycle *Lifecycle
	store     PhotoStore
	maxSize   int64
	events    EventPublisher
	log       *logger.Logger
}

func NewPhotoUseCase(houses repositories.HouseRepository, lifecycle *Lifecycle, store PhotoStore, maxSize int64, events EventPublisher, log *logger.Logger) *PhotoUseCase {
	return &PhotoUseCase{
		houses:    houses,
		lifecycle: lifecycle,
		store:     store,
		maxSize:   maxSize,
		events:    publisherOrNop(events),
		log:       log.With("component", "photos"),
	}
}

// UploadHousePhoto stores an image for a house and records its file name.
func (uc *PhotoUseCase) UploadHousePhoto(ctx context.Context, actor Actor, houseID string, file *PhotoFile) (string, error) {
	house, err := uc.houses.GetByID(ctx, nil, houseID)
	if err != nil {
		return "", translate(err, houseNotFound(houseID), nil)
	}
	if err := uc.lifecycle.AuthorizeMutation(actor, "update", Owned{Kind: "house", ID: house.ID, OwnerID: house.UserID}); err != nil {
		return "", err
	}

	if file == nil || file.Body == nil {
		return "", apperr.Upload("Please upload a file")
	}
	if file.ContentType != "" && !strings.HasPrefix(file.ContentType, "image") {
		return "", apperr.Upload("Please upload an image file")
	}
	if file.Size > uc.maxSize {
		return "", apperr.Upload("Please upload an image less than %d", uc.maxSize)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Body, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", apperr.Upload("Could not read uploaded file")
	}
	head = head[:n]
	detected := mimetype.Detect(head)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", apperr.Upload("Please upload an image file")
	}

	name := fmt.Sprintf("photo_%s%s", house.ID, extension(file.Filename, detected))
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), file.Body), uc.maxSize)
	if err := uc.store.Save(ctx, name, body); err != nil {
		uc.log.Error("photo store failed", "house_id", house.ID, "file", name, "error", err)
		return "", apperr.Storage(err, "Problem with file upload")
	}

	if err := uc.houses.UpdatePhoto(ctx, nil, house.ID, name); err != nil {
		return "", translate(err, houseNotFound(houseID), nil)
	}

	uc.events.PublishHouseEvent(houseEvent(entities.EventHouseUpdated, house.ID, house.ID, house.AverageRating))
	return name, nil
}

func extension(filename string, detected *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if safeExt.MatchString(ext) {
		return ext
	}
	return detected.Extension()
}
