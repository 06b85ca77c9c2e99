package models

import "encoding/json"

type Course struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Videos      []string `json:"videos"`
	// Extra holds course fields owned by other services, returned as stored.
	Extra map[string]any `json:"-"`
}

func (c Course) MarshalJSON() ([]byte, error) {
	type course Course
	return marshalFlat(course(c), c.Extra)
}

// CourseVideos is a Course whose video references are resolved, in stored order.
type CourseVideos struct {
	ID          string         `json:"_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Videos      []Video        `json:"videos"`
	Extra       map[string]any `json:"-"`
}

func (c CourseVideos) MarshalJSON() ([]byte, error) {
	type courseVideos CourseVideos
	return marshalFlat(courseVideos(c), c.Extra)
}

// marshalFlat encodes v and merges extra into the resulting object.
// Keys produced by v win over keys in extra.
func marshalFlat(v any, extra map[string]any) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return base, err
	}
	out := make(map[string]json.RawMessage, len(extra))
	for k, val := range extra {
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		out[k] = raw
	}
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}
