package mongodb

import (
	"LearnStream/internal/models"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type videoDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Link        string             `bson:"link"`
	CourseID    primitive.ObjectID `bson:"courseId"`
	Teacher     string             `bson:"teacher"`
	TeacherID   string             `bson:"teacherId"`
	Extra       bson.M             `bson:",inline"`
}

type courseDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Title       string               `bson:"title"`
	Description string               `bson:"description,omitempty"`
	Videos      []primitive.ObjectID `bson:"videos"`
	Extra       bson.M               `bson:",inline"`
}

func objectID(kind, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s id %q: %w", kind, id, err)
	}
	return oid, nil
}

func newVideoDocument(v *models.Video) (videoDocument, error) {
	courseID, err := objectID("course", v.CourseID)
	if err != nil {
		return videoDocument{}, err
	}
	doc := videoDocument{
		Title:       v.Title,
		Description: v.Description,
		Link:        v.Link,
		CourseID:    courseID,
		Teacher:     v.Teacher,
		TeacherID:   v.TeacherID,
	}
	if len(v.Extra) > 0 {
		doc.Extra = make(bson.M, len(v.Extra))
		for k, val := range v.Extra {
			doc.Extra[k] = val
		}
	}
	return doc, nil
}

func (d videoDocument) model() models.Video {
	v := models.Video{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Link:        d.Link,
		CourseID:    d.CourseID.Hex(),
		Teacher:     d.Teacher,
		TeacherID:   d.TeacherID,
		Extra:       extraFields(d.Extra),
	}
	return v
}

// extraFields copies inline document fields, minus the mongoose version key.
func extraFields(m bson.M) map[string]any {
	var out map[string]any
	for k, val := range m {
		if k == "__v" {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(m))
		}
		out[k] = val
	}
	return out
}

func (d courseDocument) model() models.Course {
	c := models.Course{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Videos:      make([]string, 0, len(d.Videos)),
		Extra:       extraFields(d.Extra),
	}
	for _, id := range d.Videos {
		c.Videos = append(c.Videos, id.Hex())
	}
	return c
}
