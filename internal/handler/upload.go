package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/msomdec/imageshare/internal/domain"
	"github.com/msomdec/imageshare/internal/service"
)

// maxUploadBody leaves room for the form fields and multipart framing
// around a maximum-size image.
const maxUploadBody = service.MaxImageSize + 1<<20

// readUpload parses a multipart submission with "title", "description" and
// "image" fields. The declared type and size are checked before the file
// is read.
func readUpload(w http.ResponseWriter, r *http.Request) (service.CreatePostInput, error) {
	var in service.CreatePostInput

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return in, domain.ErrImageTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return in, domain.ErrMissingImage
		}
		return in, fmt.Errorf("%w: malformed multipart form", domain.ErrInvalidInput)
	}
	defer r.MultipartForm.RemoveAll()

	in.Title = r.FormValue("title")
	in.Description = r.FormValue("description")

	file, header, err := r.FormFile("image")
	if err != nil {
		return in, domain.ErrMissingImage
	}
	defer file.Close()

	in.ContentType = mediaType(header.Header.Get("Content-Type"))
	if err := service.ValidateImage(in.ContentType, header.Size); err != nil {
		return in, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return in, fmt.Errorf("read upload: %w", err)
	}
	in.Data = data
	return in, nil
}

// mediaType strips parameters such as "; charset=binary" from a declared
// part type. Values that do not parse are returned unchanged so validation
// rejects them.
func mediaType(declared string) string {
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return declared
	}
	return mt
}

// parsePostID reads the {id} URL parameter.
func parsePostID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.ErrMalformedID
	}
	return id, nil
}
