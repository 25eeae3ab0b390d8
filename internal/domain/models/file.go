package models

import (
	"time"
)

// FileSource records how a file entered the system.
type FileSource string

const (
	FileSourceUpload  FileSource = "upload"
	FileSourceCreated FileSource = "created"
)

type File struct {
	ID       string  `json:"id" db:"id"`
	OwnerID  string  `json:"owner_id" db:"owner_id"`
	FolderID *string `json:"folder_id" db:"folder_id"` // NULL = root level
	FileName string  `json:"file_name" db:"file_name"`
	// Kind is one of the closed content-kind enumeration managed by
	// the filekind registry: pdf, docx, xlsx, md, image, txt.
	Kind     string     `json:"kind" db:"kind"`
	Source   FileSource `json:"source" db:"source"`
	Location string     `json:"location" db:"location"` // local path or remote URL
	Size     int64      `json:"size" db:"size"`
	MimeType string     `json:"mime_type" db:"mime_type"`
	// Editable is derived from Kind at creation (md and docx only)
	// and is never independently mutable.
	Editable  bool      `json:"editable" db:"editable"`
	RemoteID  *string   `json:"remote_id,omitempty" db:"remote_id"` // blob storage identifier
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
