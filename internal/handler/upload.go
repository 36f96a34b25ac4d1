package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "jobfair/internal/errors"
	"jobfair/internal/service"
)

// openUploads opens every file header. The returned func closes them all.
func openUploads(headers []*multipart.FileHeader) ([]service.Upload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperrors.Validation(apperrors.MsgMissingFields)
		}
		files = append(files, f)
		uploads = append(uploads, service.Upload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Body:        f,
		})
	}
	return uploads, closeAll, nil
}

// optionalUpload opens the form file field, or returns nil when absent.
func optionalUpload(c echo.Context, field string) (*service.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, apperrors.Validation(apperrors.MsgMissingFields)
	}
	uploads, closeAll, err := openUploads([]*multipart.FileHeader{fh})
	if err != nil {
		return nil, closeAll, err
	}
	return &uploads[0], closeAll, nil
}
