package storage

import (
	"context"
	"fmt"
	"io"

	"houses-api/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFSStore writes photos into the "photos" GridFS bucket of a MongoDB database.
type GridFSStore struct {
	client *mongo.Client
	bucket *gridfs.Bucket
	log    *logger.Logger
}

// revisionBucket is the part of a GridFS bucket used to prune old revisions.
type revisionBucket interface {
	FindContext(ctx context.Context, filter interface{}, opts ...*options.GridFSFindOptions) (*mongo.Cursor, error)
	DeleteContext(ctx context.Context, fileID interface{}) error
}

func NewGridFSStore(ctx context.Context, uri, dbName string, log *logger.Logger) (*GridFSStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	bucket, err := gridfs.NewBucket(client.Database(dbName), options.GridFSBucket().SetName("photos"))
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &GridFSStore{client: client, bucket: bucket, log: log.With("component", "gridfs")}, nil
}

// Save uploads the new file and then removes older revisions with the same name.
func (s *GridFSStore) Save(ctx context.Context, name string, r io.Reader) error {
	stream, err := s.bucket.OpenUploadStream(name)
	if err != nil {
		return fmt.Errorf("open upload stream: %w", err)
	}
	if _, err := io.Copy(stream, r); err != nil {
		_ = stream.Abort()
		return fmt.Errorf("upload %s: %w", name, err)
	}
	if err := stream.Close(); err != nil {
		return fmt.Errorf("close upload %s: %w", name, err)
	}

	pruneRevisions(ctx, s.bucket, name, stream.FileID, s.log)
	return nil
}

// pruneRevisions deletes every file called name except keep. Failures are
// logged; the new revision is already stored.
func pruneRevisions(ctx context.Context, bucket revisionBucket, name string, keep interface{}, log *logger.Logger) int {
	cursor, err := bucket.FindContext(ctx, bson.M{"filename": name, "_id": bson.M{"$ne": keep}})
	if err != nil {
		log.Warn("failed to list old photo revisions", "name", name, "error", err)
		return 0
	}
	defer cursor.Close(ctx)

	deleted := 0
	for cursor.Next(ctx) {
		var old struct {
			ID interface{} `bson:"_id"`
		}
		if err := cursor.Decode(&old); err != nil {
			log.Warn("failed to decode photo revision", "name", name, "error", err)
			continue
		}
		if err := bucket.DeleteContext(ctx, old.ID); err != nil {
			log.Warn("failed to delete old photo revision", "name", name, "file_id", old.ID, "error", err)
			continue
		}
		deleted++
	}
	if err := cursor.Err(); err != nil {
		log.Warn("failed to iterate photo revisions", "name", name, "error", err)
	}
	return deleted
}

func (s *GridFSStore) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }
