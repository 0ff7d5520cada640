package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/imageshare/internal/handler"
	"github.com/msomdec/imageshare/internal/service"
)

var imagePathPattern = regexp.MustCompile(`^/uploads/[0-9a-f-]{36}\.png$`)

func decodePost(t *testing.T, resp *http.Response) handler.PostDTO {
	t.Helper()
	defer resp.Body.Close()
	var post handler.PostDTO
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	return post
}

func decodeMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["message"]
}

func listPosts(t *testing.T, url string) []handler.PostDTO {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d", url, resp.StatusCode)
	}
	var posts []handler.PostDTO
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		t.Fatalf("decode posts: %v", err)
	}
	return posts
}

func TestPostAPI_CreateLikeAndServe(t *testing.T) {
	srv, _ := newTestServer(t)
	client := srv.Client()

	// 1. Upload a 10 KB PNG.
	up := pngUpload("Sunset", 10*1024)
	up.description = "Evening sky"
	resp := postUpload(t, client, srv.URL+"/api/posts", up)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	post := decodePost(t, resp)

	if post.ID != 1 || post.Title != "Sunset" || post.Description != "Evening sky" {
		t.Fatalf("create: unexpected post %+v", post)
	}
	if post.ImageType != "image/png" || post.Likes != 0 || post.Dislikes != 0 {
		t.Fatalf("create: unexpected post %+v", post)
	}
	if !imagePathPattern.MatchString(post.ImagePath) {
		t.Fatalf("create: unexpected image path %q", post.ImagePath)
	}
	createdAt, err := time.Parse("2006-01-02T15:04:05.000Z", post.CreatedAt)
	if err != nil {
		t.Fatalf("create: createdAt %q is not ISO UTC with milliseconds: %v", post.CreatedAt, err)
	}
	if time.Since(createdAt) > time.Minute {
		t.Fatalf("create: createdAt %s is not recent", post.CreatedAt)
	}

	// 2. Like it twice and dislike it once.
	for i := 0; i < 2; i++ {
		resp, err := client.Post(srv.URL+"/api/posts/1/like", "", nil)
		if err != nil {
			t.Fatalf("POST like: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("like: expected 200, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	}
	resp, err = client.Post(srv.URL+"/api/posts/1/dislike", "", nil)
	if err != nil {
		t.Fatalf("POST dislike: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dislike: expected 200, got %d", resp.StatusCode)
	}
	reacted := decodePost(t, resp)
	if reacted.Likes != 2 || reacted.Dislikes != 1 {
		t.Fatalf("dislike: expected 2/1, got %d/%d", reacted.Likes, reacted.Dislikes)
	}

	// 3. Fetch it back.
	resp, err = client.Get(srv.URL + "/api/posts/1")
	if err != nil {
		t.Fatalf("GET post: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", resp.StatusCode)
	}
	got := decodePost(t, resp)
	if got != reacted {
		t.Fatalf("get: expected %+v, got %+v", reacted, got)
	}

	// 4. The stored image is served with its original type.
	resp, err = client.Get(srv.URL + post.ImagePath)
	if err != nil {
		t.Fatalf("GET image: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("image: expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("image: expected image/png, got %s", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if !bytes.Equal(data, up.data) {
		t.Fatalf("image: served %d bytes, uploaded %d", len(data), len(up.data))
	}
}

func TestPostAPI_ListSort(t *testing.T) {
	srv, _ := newTestServer(t)

	if posts := listPosts(t, srv.URL+"/api/posts"); len(posts) != 0 {
		t.Fatalf("expected empty list, got %d posts", len(posts))
	}

	// An empty list is encoded as [], not null.
	resp, err := http.Get(srv.URL + "/api/posts")
	if err != nil {
		t.Fatalf("GET posts: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}

	for _, title := range []string{"A", "B", "C"} {
		resp := postUpload(t, srv.Client(), srv.URL+"/api/posts", pngUpload(title, 64))
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create %s: expected 201, got %d", title, resp.StatusCode)
		}
	}

	oldest := listPosts(t, srv.URL+"/api/posts?sort=oldest")
	latest := listPosts(t, srv.URL+"/api/posts?sort=latest")
	fallback := listPosts(t, srv.URL+"/api/posts?sort=bogus")
	if len(oldest) != 3 || len(latest) != 3 || len(fallback) != 3 {
		t.Fatalf("expected 3 posts in each listing, got %d/%d/%d", len(oldest), len(latest), len(fallback))
	}
	if oldest[0].Title != "A" || oldest[2].Title != "C" {
		t.Fatalf("oldest: unexpected order %s..%s", oldest[0].Title, oldest[2].Title)
	}
	for i := range latest {
		if latest[i].ID != oldest[2-i].ID {
			t.Fatalf("latest is not the reverse of oldest at %d", i)
		}
		if fallback[i].ID != latest[i].ID {
			t.Fatalf("unknown sort did not fall back to latest at %d", i)
		}
	}
}

func TestPostAPI_IDErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	client := srv.Client()

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/api/posts/999999", http.StatusNotFound},
		{http.MethodPost, "/api/posts/999999/like", http.StatusNotFound},
		{http.MethodPost, "/api/posts/999999/dislike", http.StatusNotFound},
		{http.MethodGet, "/api/posts/abc", http.StatusBadRequest},
		{http.MethodPost, "/api/posts/abc/like", http.StatusBadRequest},
		{http.MethodPost, "/api/posts/12abc/dislike", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, nil)
			if err != nil {
				t.Fatalf("new request: %v", err)
			}
			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("%s %s: %v", tt.method, tt.path, err)
			}
			if resp.StatusCode != tt.wantStatus {
				resp.Body.Close()
				t.Fatalf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			if msg := decodeMessage(t, resp); msg == "" {
				t.Fatal("expected an error message")
			}
		})
	}
}

func TestPostAPI_CreateRejectsBadUploads(t *testing.T) {
	tests := []struct {
		name        string
		upload      upload
		wantMessage string
	}{
		{
			name:        "missing file",
			upload:      upload{title: "No file"},
			wantMessage: "no image file uploaded",
		},
		{
			name:        "unsupported type",
			upload:      upload{title: "Doc", filename: "doc.pdf", contentType: "application/pdf", data: []byte("%PDF-1.4")},
			wantMessage: "unsupported type",
		},
		{
			name:        "too large",
			upload:      pngUpload("Huge", service.MaxImageSize+1),
			wantMessage: "too large",
		},
		{
			name:        "empty title",
			upload:      pngUpload("", 64),
			wantMessage: "title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t)

			resp := postUpload(t, srv.Client(), srv.URL+"/api/posts", tt.upload)
			if resp.StatusCode != http.StatusBadRequest {
				resp.Body.Close()
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
			if msg := decodeMessage(t, resp); !strings.Contains(msg, tt.wantMessage) {
				t.Fatalf("expected message containing %q, got %q", tt.wantMessage, msg)
			}

			if posts := listPosts(t, srv.URL+"/api/posts"); len(posts) != 0 {
				t.Fatalf("expected no posts after rejected upload, got %d", len(posts))
			}
		})
	}
}

func TestPostAPI_CreateAcceptsTypeParameters(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
	}{
		{name: "charset", contentType: "image/png; charset=binary"},
		{name: "upper case", contentType: "IMAGE/PNG"},
		{name: "spacing", contentType: "image/png ;name=photo.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t)

			up := pngUpload("Tiny", 10)
			up.contentType = tt.contentType
			resp := postUpload(t, srv.Client(), srv.URL+"/api/posts", up)
			if resp.StatusCode != http.StatusCreated {
				resp.Body.Close()
				t.Fatalf("expected 201, got %d", resp.StatusCode)
			}
			post := decodePost(t, resp)
			if post.ImageType != "image/png" {
				t.Fatalf("expected image/png, got %q", post.ImageType)
			}
			if !imagePathPattern.MatchString(post.ImagePath) {
				t.Fatalf("unexpected image path %q", post.ImagePath)
			}
		})
	}
}

func TestPostAPI_CreateRejectsUnparsableType(t *testing.T) {
	srv, _ := newTestServer(t)

	up := pngUpload("Broken", 10)
	up.contentType = "image/png; charset"
	resp := postUpload(t, srv.Client(), srv.URL+"/api/posts", up)
	if resp.StatusCode != http.StatusBadRequest {
		resp.Body.Close()
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if msg := decodeMessage(t, resp); !strings.Contains(msg, "unsupported type") {
		t.Fatalf("expected unsupported type message, got %q", msg)
	}
}

func TestPostAPI_CreateRejectsNonMultipart(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/posts", "application/json", strings.NewReader(`{"title":"x"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		resp.Body.Close()
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUploads_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/uploads/missing.png",
		"/uploads/3f2504e0-4f89-41d3-9a0c-0305e82c3301.png",
		"/uploads/3f2504e0-4f89-41d3-9a0c-0305e82c3301.txt",
	} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("GET %s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}
