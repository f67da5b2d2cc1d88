package services_test

import (
	"io"
	"log/slog"
	"strings"

	"github.com/archivo-digital/apiserver/internal/services"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func textUpload(name, body string) services.Upload {
	return services.Upload{
		FieldName:   "files",
		Filename:    name,
		ContentType: "text/plain",
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}
