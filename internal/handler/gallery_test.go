package handler_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/msomdec/imageshare/internal/service"
)

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func TestGallery_Empty(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected text/html, got %s", ct)
	}
	if body := readBody(t, resp); !strings.Contains(body, `id="empty-gallery"`) {
		t.Fatal("expected empty gallery message")
	}
}

func TestGallery_ListsPosts(t *testing.T) {
	srv, posts := newTestServer(t)
	ctx := context.Background()

	for _, title := range []string{"Harbor", "Sunset <b>"} {
		_, err := posts.Create(ctx, service.CreatePostInput{
			Title:       title,
			ContentType: "image/gif",
			Data:        []byte("GIF89a"),
		})
		if err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}

	resp, err := http.Get(srv.URL + "/?sort=oldest")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	body := readBody(t, resp)

	for _, want := range []string{`id="post-1"`, `id="post-2"`, `id="reactions-1"`, "Sunset &lt;b&gt;"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected gallery to contain %q", want)
		}
	}
	if strings.Contains(body, "Sunset <b>") {
		t.Fatal("expected title to be escaped")
	}
	if strings.Index(body, `id="post-1"`) > strings.Index(body, `id="post-2"`) {
		t.Fatal("expected oldest post first")
	}
}

func TestGallery_ShowPost(t *testing.T) {
	srv, posts := newTestServer(t)

	post, err := posts.Create(context.Background(), service.CreatePostInput{
		Title:       "Harbor & boats",
		Description: "Morning fog",
		ContentType: "image/jpeg",
		Data:        []byte{0xff, 0xd8, 0xff},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := http.Get(srv.URL + "/posts/1")
	if err != nil {
		t.Fatalf("GET /posts/1: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected text/html, got %s", ct)
	}
	body := readBody(t, resp)
	for _, want := range []string{
		`id="post-1"`,
		`id="reactions-1"`,
		`class="full" src="` + post.ImagePath + `"`,
		"Harbor &amp; boats",
		"Morning fog",
		`href="/"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected post page to contain %q", want)
		}
	}

	for path, want := range map[string]int{
		"/posts/42":  http.StatusNotFound,
		"/posts/abc": http.StatusBadRequest,
	} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Fatalf("GET %s: expected %d, got %d", path, want, resp.StatusCode)
		}
	}
}

func TestUploadForm(t *testing.T) {
	srv, _ := newTestServer(t)
	client := noRedirectClient()

	resp, err := client.Get(srv.URL + "/upload")
	if err != nil {
		t.Fatalf("GET /upload: %v", err)
	}
	if body := readBody(t, resp); !strings.Contains(body, `enctype="multipart/form-data"`) {
		t.Fatal("expected multipart upload form")
	}

	// A rejected upload re-renders the form with the reason and the title.
	bad := upload{title: "Keep me", filename: "x.webp", contentType: "image/webp", data: []byte("RIFF")}
	resp = postUpload(t, client, srv.URL+"/upload", bad)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad upload: expected 400, got %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "unsupported type") || !strings.Contains(body, `value="Keep me"`) {
		t.Fatalf("bad upload: expected error and echoed title, got %s", body)
	}

	resp = postUpload(t, client, srv.URL+"/upload", pngUpload("Sunset", 128))
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("upload: expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Fatalf("upload: expected redirect to /, got %s", loc)
	}

	resp, err = client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Sunset") {
		t.Fatal("expected uploaded post in gallery")
	}
}

func TestGallery_ReactionsOverSSE(t *testing.T) {
	srv, posts := newTestServer(t)

	post, err := posts.Create(context.Background(), service.CreatePostInput{
		Title:       "Sunset",
		ContentType: "image/jpeg",
		Data:        []byte{0xff, 0xd8, 0xff},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.ID != 1 {
		t.Fatalf("expected post 1, got %d", post.ID)
	}

	resp, err := http.Post(srv.URL+"/posts/1/like", "", nil)
	if err != nil {
		t.Fatalf("POST like: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("like: expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("like: expected text/event-stream, got %s", ct)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "reactions-1") || !strings.Contains(body, `<span class="likes">1</span>`) {
		t.Fatalf("like: expected reactions patch, got %s", body)
	}

	resp, err = http.Post(srv.URL+"/posts/1/dislike", "", nil)
	if err != nil {
		t.Fatalf("POST dislike: %v", err)
	}
	if body := readBody(t, resp); !strings.Contains(body, `<span class="dislikes">1</span>`) {
		t.Fatalf("dislike: expected reactions patch, got %s", body)
	}

	for path, want := range map[string]int{
		"/posts/42/like":  http.StatusNotFound,
		"/posts/abc/like": http.StatusBadRequest,
	} {
		resp, err := http.Post(srv.URL+path, "", nil)
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != want {
			t.Fatalf("POST %s: expected %d, got %d", path, want, resp.StatusCode)
		}
	}
}
