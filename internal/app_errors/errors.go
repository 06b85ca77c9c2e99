package app_errors

import "errors"

var ErrNoAccessViewVideos = errors.New("You don't have access to view all videos")
var ErrNoAccessAddVideo = errors.New("You don't have access to add a video")
var ErrTitleLinkRequired = errors.New("Title and link are required")
var ErrVideoExists = errors.New("Video already present")
var ErrVideoNotFound = errors.New("Video not found")
var ErrCourseNotFound = errors.New("Course not found")
var ErrTokenExpired = errors.New("token expired")
var ErrInvalidToken = errors.New("invalid token")
var ErrInvalidRole = errors.New("invalid role")
