// Package storage holds the backends house photos can be written to.
package storage

import (
	"context"
	"fmt"
	"io"

	"houses-api/confs"
	"houses-api/logger"
)

// Store saves a photo under name. Implementations overwrite an existing photo
// of the same name.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Close(ctx context.Context) error
}

// New builds the store selected by PHOTO_STORE.
func New(ctx context.Context, cfg *confs.Config, log *logger.Logger) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.PhotoStore {
	case "gcs":
		log.Info("Using GCS photo store", "bucket", cfg.GCSBucket)
		store, err = NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentials)
	case "gridfs":
		log.Info("Using GridFS photo store", "db", cfg.MongoDB)
		store, err = NewGridFSStore(ctx, cfg.MongoURI, cfg.MongoDB, log)
	case "local", "":
		log.Info("Using local photo store", "path", cfg.FileUploadPath)
		store, err = NewLocalStore(cfg.FileUploadPath)
	default:
		return nil, fmt.Errorf("unsupported photo store %q", cfg.PhotoStore)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
