package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/archivo-digital/apiserver/internal/mq"
	"github.com/archivo-digital/apiserver/internal/store"
	"github.com/archivo-digital/apiserver/types"
)

// SrcPrefix is the URL path uploaded content is served under.
const SrcPrefix = "files"

// FileRepository defines persistence operations for file records.
type FileRepository interface {
	Create(ctx context.Context, file types.File) (types.File, error)
	Get(ctx context.Context, id int) (types.File, error)
	ListByFolder(ctx context.Context, folderID int) ([]types.File, error)
	Search(ctx context.Context, filter store.SearchFilter) ([]types.File, error)
}

// ContentStore holds uploaded bytes keyed by filename. *storage.Storage satisfies it.
type ContentStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Bucket() string
}

// Upload is one received file of a batch.
type Upload struct {
	FieldName   string
	Filename    string
	ContentType string
	Encoding    string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// FailedUpload names a file whose content or catalog record was not persisted.
type FailedUpload struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadResult reports a batch. Files lists every received upload, persisted
// or not; Failed lists the ones that were not fully persisted.
type UploadResult struct {
	Files      []types.StoredFile
	Registered []types.File
	Failed     []FailedUpload
}

// FileService registers uploads and serves their content back.
type FileService struct {
	files   FileRepository
	content ContentStore
	events  EventPublisher
	logger  *slog.Logger
	now     func() time.Time
}

func NewFileService(files FileRepository, content ContentStore, events EventPublisher, logger *slog.Logger) *FileService {
	return &FileService{
		files:   files,
		content: content,
		events:  events,
		logger:  loggerOrDefault(logger),
		now:     time.Now,
	}
}

// RegisterUpload stores each upload under its original filename and files it
// under folderID. Uploads are independent: one failing never stops the rest,
// and the batch only fails as a whole when it is empty.
func (s *FileService) RegisterUpload(ctx context.Context, folderID int, uploads []Upload) (UploadResult, error) {
	if len(uploads) == 0 {
		return UploadResult{}, clientError(ErrValidation, "no files received")
	}

	createdAt := s.now().UTC()
	result := UploadResult{
		Files:      make([]types.StoredFile, 0, len(uploads)),
		Registered: make([]types.File, 0, len(uploads)),
	}

	for _, upload := range uploads {
		result.Files = append(result.Files, s.describe(upload))

		if err := s.storeContent(ctx, upload); err != nil {
			s.logger.ErrorContext(ctx, "store upload content", "filename", upload.Filename, "error", err)
			result.Failed = append(result.Failed, FailedUpload{Filename: upload.Filename, Error: "failed to store content"})
			continue
		}

		file, err := s.files.Create(ctx, types.File{
			Name:      upload.Filename,
			Src:       path.Join(SrcPrefix, upload.Filename),
			FolderID:  folderID,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "register upload", "filename", upload.Filename, "folder_id", folderID, "error", err)
			result.Failed = append(result.Failed, FailedUpload{Filename: upload.Filename, Error: "failed to register file"})
			continue
		}

		s.logger.InfoContext(ctx, "file registered", "file_id", file.ID, "filename", file.Name, "folder_id", folderID)
		result.Registered = append(result.Registered, file)
		publishEvent(ctx, s.logger, s.events, mq.ChannelFileRegistered, file)
	}

	return result, nil
}

// OpenContent opens the stored bytes of a file by name.
func (s *FileService) OpenContent(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.content.Get(ctx, name)
}

func (s *FileService) storeContent(ctx context.Context, upload Upload) error {
	if upload.Open == nil {
		return fmt.Errorf("upload %q has no content", upload.Filename)
	}
	reader, err := upload.Open()
	if err != nil {
		return err
	}
	defer reader.Close()

	return s.content.Put(ctx, upload.Filename, reader, upload.Size, upload.ContentType)
}

func (s *FileService) describe(upload Upload) types.StoredFile {
	encoding := upload.Encoding
	if encoding == "" {
		encoding = "7bit"
	}
	destination := s.content.Bucket()
	return types.StoredFile{
		FieldName:    upload.FieldName,
		OriginalName: upload.Filename,
		Encoding:     encoding,
		MimeType:     upload.ContentType,
		Destination:  destination,
		Filename:     upload.Filename,
		Path:         path.Join(destination, upload.Filename),
		Size:         upload.Size,
	}
}
