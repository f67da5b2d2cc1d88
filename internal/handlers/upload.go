package handlers

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"strconv"
	"strings"

	"github.com/archivo-digital/apiserver/internal/services"
)

const maxFieldBytes = 64

var errTooManyFiles = errors.New("too many files")

// uploadBatch is a parsed upload request. File parts are spooled in memory
// until the request's memory budget is spent, then to temp files.
type uploadBatch struct {
	uploads   []services.Upload
	folderID  int
	tempFiles []string
}

// RemoveAll deletes the temp files backing spilled uploads.
func (b *uploadBatch) RemoveAll() {
	for _, name := range b.tempFiles {
		_ = os.Remove(name)
	}
	b.tempFiles = nil
}

// readUploadBatch consumes every part of reader. A part named in
// uploadFields counts as a file whenever its Content-Disposition carries a
// filename parameter, even an empty one. The returned batch is never nil and
// must be cleaned up with RemoveAll, also on error.
func readUploadBatch(reader *multipart.Reader, maxFiles int, maxMemory int64) (*uploadBatch, error) {
	batch := &uploadBatch{}
	remaining := maxMemory
	seenFolder := false

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return batch, nil
		}
		if err != nil {
			return batch, err
		}

		field := part.FormName()
		switch {
		case isUploadField(field) && hasFilename(part):
			if maxFiles > 0 && len(batch.uploads) == maxFiles {
				_ = part.Close()
				return batch, errTooManyFiles
			}
			upload, used, err := batch.spool(part, field, remaining)
			_ = part.Close()
			if err != nil {
				return batch, err
			}
			remaining -= used
			batch.uploads = append(batch.uploads, upload)
		case field == "folder_id" && !seenFolder:
			value, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			_ = part.Close()
			if err != nil {
				return batch, err
			}
			seenFolder = true
			batch.folderID, _ = strconv.Atoi(strings.TrimSpace(string(value)))
		default:
			_, _ = io.Copy(io.Discard, part)
			_ = part.Close()
		}
	}
}

// spool reads one file part, keeping it in memory when it fits in budget.
// It reports how much of the budget it used.
func (b *uploadBatch) spool(part *multipart.Part, field string, budget int64) (services.Upload, int64, error) {
	upload := services.Upload{
		FieldName:   field,
		Filename:    part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
		Encoding:    part.Header.Get("Content-Transfer-Encoding"),
	}

	var buf bytes.Buffer
	n, err := io.CopyN(&buf, part, max(budget, 0)+1)
	if err != nil && err != io.EOF {
		return upload, 0, err
	}
	if n <= budget {
		data := buf.Bytes()
		upload.Size = n
		upload.Open = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
		return upload, n, nil
	}

	tmp, err := os.CreateTemp("", "archivo-upload-*")
	if err != nil {
		return upload, 0, err
	}
	b.tempFiles = append(b.tempFiles, tmp.Name())
	size, err := io.Copy(tmp, io.MultiReader(&buf, part))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return upload, 0, err
	}

	name := tmp.Name()
	upload.Size = size
	upload.Open = func() (io.ReadCloser, error) {
		return os.Open(name)
	}
	return upload, max(budget, 0), nil
}

func isUploadField(field string) bool {
	for _, name := range uploadFields {
		if field == name {
			return true
		}
	}
	return false
}

func hasFilename(part *multipart.Part) bool {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return false
	}
	_, ok := params["filename"]
	return ok
}
