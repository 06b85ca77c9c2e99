package mongodb

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/models"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type VideoMongo struct {
	coll *mongo.Collection
}

func NewVideoMongo(db *mongo.Database) *VideoMongo {
	return &VideoMongo{coll: db.Collection(VideoCollection)}
}

func (r *VideoMongo) AllVideos(ctx context.Context) ([]models.Video, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer cur.Close(ctx)

	videos := make([]models.Video, 0)
	for cur.Next(ctx) {
		var doc videoDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode video: %w", err)
		}
		videos = append(videos, doc.model())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *VideoMongo) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	oid, err := objectID("video", id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *VideoMongo) VideoByTitleAndLink(ctx context.Context, title, link string) (*models.Video, error) {
	return r.findOne(ctx, bson.D{{Key: "title", Value: title}, {Key: "link", Value: link}})
}

func (r *VideoMongo) findOne(ctx context.Context, filter bson.D) (*models.Video, error) {
	var doc videoDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_errors.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to find video: %w", err)
	}
	v := doc.model()
	return &v, nil
}

func (r *VideoMongo) CreateVideo(ctx context.Context, video *models.Video) error {
	doc, err := newVideoDocument(video)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return app_errors.ErrVideoExists
		}
		return fmt.Errorf("failed to insert video: %w", err)
	}
	video.ID = doc.ID.Hex()
	return nil
}
