package models

import (
	"encoding/json"
	"fmt"
)

const (
	fieldID          = "_id"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldLink        = "link"
	fieldCourseID    = "courseId"
	fieldTeacher     = "teacher"
	fieldTeacherID   = "teacherId"
)

// reservedFields are owned by the server and never taken from a request body.
var reservedFields = map[string]struct{}{
	fieldID:        {},
	"id":           {},
	fieldCourseID:  {},
	fieldTeacher:   {},
	fieldTeacherID: {},
}

type Video struct {
	ID          string
	Title       string
	Description string
	Link        string
	CourseID    string
	Teacher     string
	TeacherID   string
	// Extra holds body fields outside the known set, stored verbatim.
	Extra map[string]any
}

func (v Video) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(v.Extra)+7)
	for k, val := range v.Extra {
		out[k] = val
	}
	out[fieldID] = v.ID
	out[fieldTitle] = v.Title
	if v.Description != "" {
		out[fieldDescription] = v.Description
	}
	out[fieldLink] = v.Link
	out[fieldCourseID] = v.CourseID
	out[fieldTeacher] = v.Teacher
	out[fieldTeacherID] = v.TeacherID
	return json.Marshal(out)
}

func (v *Video) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = Video{
		ID:        stringField(raw, fieldID),
		CourseID:  stringField(raw, fieldCourseID),
		Teacher:   stringField(raw, fieldTeacher),
		TeacherID: stringField(raw, fieldTeacherID),
	}
	fields := VideoFieldsFromMap(raw)
	v.Title = fields.Title
	v.Description = fields.Description
	v.Link = fields.Link
	v.Extra = fields.Extra
	return nil
}

// VideoFields is the client-supplied part of a Video.
type VideoFields struct {
	Title       string
	Description string
	Link        string
	Extra       map[string]any
}

// VideoFieldsFromMap splits a decoded JSON body into known and extra fields.
// Number and boolean title/description/link values are cast to strings;
// zero and false count as absent, objects and arrays are dropped.
func VideoFieldsFromMap(body map[string]any) VideoFields {
	f := VideoFields{
		Title:       scalarField(body, fieldTitle),
		Description: scalarField(body, fieldDescription),
		Link:        scalarField(body, fieldLink),
	}
	for k, val := range body {
		switch k {
		case fieldTitle, fieldDescription, fieldLink:
			continue
		}
		if _, reserved := reservedFields[k]; reserved {
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]any)
		}
		f.Extra[k] = val
	}
	return f
}

func (f VideoFields) Valid() bool {
	return f.Title != "" && f.Link != ""
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func scalarField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return fmt.Sprint(v)
	case bool:
		if !v {
			return ""
		}
		return "true"
	}
	return ""
}
