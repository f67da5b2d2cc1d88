package types

import "time"

// File is the catalog entry for one uploaded document.
// Its content lives in the content area under Name.
type File struct {
	// ID is the unique identifier of the file record.
	ID int `json:"id" db:"id"`

	// Name is the original filename. It doubles as the storage key, so two
	// uploads with the same name share one stored object.
	Name string `json:"name" db:"name"`

	// Src is the path, relative to the server root, the content is served from.
	Src string `json:"src" db:"src"`

	// FolderID identifies the folder the file is filed under.
	FolderID int `json:"folder_id" db:"folder_id"`

	// CreatedAt is the timestamp at which the file was registered.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt equals CreatedAt; files are never modified.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StoredFile describes one received upload after its content was written.
// Field names follow the descriptors existing clients already parse.
type StoredFile struct {
	FieldName    string `json:"fieldname"`
	OriginalName string `json:"originalname"`
	Encoding     string `json:"encoding"`
	MimeType     string `json:"mimetype"`
	Destination  string `json:"destination"`
	Filename     string `json:"filename"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}
