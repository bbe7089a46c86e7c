package domain

import (
	"time"

	"github.com/google/uuid"
)

// Media is an uploaded property image. The engine only ever stores the
// resulting URL on the property record; binaries live in object storage.
type Media struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	PropertyID  *uuid.UUID `json:"property_id,omitempty" db:"property_id"`
	UploadedBy  uuid.UUID  `json:"uploaded_by" db:"uploaded_by"`
	FileName    string     `json:"file_name" db:"file_name"`
	FileSize    int64      `json:"file_size" db:"file_size"`
	MimeType    string     `json:"mime_type" db:"mime_type"`
	StoragePath string     `json:"-" db:"storage_path"`
	URL         string     `json:"url" db:"url"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
