package model

import "time"

// Highlight is a published match highlight on the club site. VideoURL (and the
// optional ThumbnailURL) hold public object-store URLs produced by the upload
// pipeline; the record does not own the object lifecycle.
type Highlight struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
