package model

// Package model contains domain models/data structures shared across layers.
// No business logic here.

// Folder is the logical media category an upload is filed under. It becomes the
// first path segment of the storage key.
type Folder string

const (
	FolderHighlights  Folder = "highlights"
	FolderProfilePics Folder = "profile-pics"
	FolderTeamImages  Folder = "team-images"
)

// Valid reports whether f is one of the known media folders.
func (f Folder) Valid() bool {
	switch f {
	case FolderHighlights, FolderProfilePics, FolderTeamImages:
		return true
	}
	return false
}

// UploadRequest describes a file a client intends to upload directly to storage.
// Size is the declared byte count; zero means the client did not report one.
type UploadRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Folder      Folder
}

// UploadGrant is a minted write credential for exactly one direct PUT.
//
// UploadURL is presigned for the declared content type and expires 20 minutes
// after issuance. Headers carries the pinned header values the uploader must send
// verbatim on the PUT (they are part of the signature). PublicURL is the stable
// address the object will have once uploaded; issuing a grant creates nothing in
// the store.
type UploadGrant struct {
	UploadURL string            `json:"presignedUrl"`
	PublicURL string            `json:"publicUrl"`
	Key       string            `json:"key"`
	Headers   map[string]string `json:"headers"`
}
