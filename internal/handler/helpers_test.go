package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/msomdec/imageshare/internal/handler"
	"github.com/msomdec/imageshare/internal/repository/disk"
	"github.com/msomdec/imageshare/internal/repository/memory"
	"github.com/msomdec/imageshare/internal/service"
)

func newTestPostService(t *testing.T) *service.PostService {
	t.Helper()
	content := service.NewContentStore(disk.NewFileStore(t.TempDir()))
	if err := content.Init(context.Background()); err != nil {
		t.Fatalf("Init content store: %v", err)
	}
	return service.NewPostService(memory.NewPostRepository(), content)
}

func newTestServer(t *testing.T) (*httptest.Server, *service.PostService) {
	t.Helper()
	posts := newTestPostService(t)
	srv := httptest.NewServer(handler.NewRouter(posts, nil))
	t.Cleanup(srv.Close)
	return srv, posts
}

// noRedirectClient returns redirects to the caller instead of following them.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type upload struct {
	title       string
	description string
	filename    string // empty means no image part
	contentType string
	data        []byte
}

// multipartBody encodes an upload the way a browser form would.
func multipartBody(t *testing.T, u upload) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("title", u.title); err != nil {
		t.Fatalf("write title: %v", err)
	}
	if err := mw.WriteField("description", u.description); err != nil {
		t.Fatalf("write description: %v", err)
	}
	if u.filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, u.filename))
		h.Set("Content-Type", u.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatalf("create image part: %v", err)
		}
		if _, err := part.Write(u.data); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func postUpload(t *testing.T, client *http.Client, url string, u upload) *http.Response {
	t.Helper()
	body, contentType := multipartBody(t, u)
	resp, err := client.Post(url, contentType, body)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func pngUpload(title string, size int) upload {
	return upload{
		title:       title,
		filename:    "photo.png",
		contentType: "image/png",
		data:        bytes.Repeat([]byte{0x89}, size),
	}
}
