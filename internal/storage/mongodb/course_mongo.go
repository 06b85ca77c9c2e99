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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CourseMongo struct {
	courses *mongo.Collection
	videos  *mongo.Collection
}

func NewCourseMongo(db *mongo.Database) *CourseMongo {
	return &CourseMongo{
		courses: db.Collection(CourseCollection),
		videos:  db.Collection(VideoCollection),
	}
}

// AppendVideo pushes videoID in a single findAndModify, so the append and
// the returned document are atomic with respect to the course.
func (r *CourseMongo) AppendVideo(ctx context.Context, courseID, videoID string) (*models.Course, error) {
	cid, err := objectID("course", courseID)
	if err != nil {
		return nil, err
	}
	vid, err := objectID("video", videoID)
	if err != nil {
		return nil, err
	}

	var doc courseDocument
	err = r.courses.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: cid}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "videos", Value: vid}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to append video to course: %w", err)
	}

	course := doc.model()
	return &course, nil
}

func (r *CourseMongo) CourseWithVideos(ctx context.Context, courseID string) (*models.CourseVideos, error) {
	cid, err := objectID("course", courseID)
	if err != nil {
		return nil, err
	}

	var doc courseDocument
	if err := r.courses.FindOne(ctx, bson.D{{Key: "_id", Value: cid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to find course: %w", err)
	}

	out := &models.CourseVideos{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Videos:      make([]models.Video, 0, len(doc.Videos)),
		Extra:       extraFields(doc.Extra),
	}
	if len(doc.Videos) == 0 {
		return out, nil
	}

	cur, err := r.videos.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: doc.Videos}}}})
	if err != nil {
		return nil, fmt.Errorf("failed to query course videos: %w", err)
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]videoDocument, len(doc.Videos))
	for cur.Next(ctx) {
		var v videoDocument
		if err := cur.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode video: %w", err)
		}
		byID[v.ID] = v
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	// $in does not preserve order; follow the course's reference list.
	for _, ref := range doc.Videos {
		if v, ok := byID[ref]; ok {
			out.Videos = append(out.Videos, v.model())
		}
	}
	return out, nil
}
