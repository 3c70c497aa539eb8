package stories

import "errors"

var (
	// ErrStoryNotFound means the referenced story does not exist (or was
	// already reclaimed).
	ErrStoryNotFound = errors.New("story not found")

	// ErrUserNotFound means a referenced owner or viewer identity does
	// not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotOwner means a delete was attempted by someone other than the
	// story's owner. Nothing is changed.
	ErrNotOwner = errors.New("not the story owner")

	// ErrMediaUpload means the media store rejected the upload during
	// creation. The creation is fully aborted; no story record exists.
	ErrMediaUpload = errors.New("media upload failed")
)
