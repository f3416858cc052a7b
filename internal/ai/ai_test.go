package ai

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/layoutcanvas/internal/layout"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	return img
}

func TestDataURIRoundTrip(t *testing.T) {
	uri, err := EncodeDataURI(testImage(3, 2))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix %q", uri[:30])
	}
	img, err := DecodeDataURI(uri)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	for _, bad := range []string{"", "http://x", "data:image/png,abc", "data:image/png;base64,!!!"} {
		if _, err := DecodeDataURI(bad); !errors.Is(err, ErrBadDataURI) {
			t.Fatalf("%q: expected ErrBadDataURI, got %v", bad, err)
		}
	}
}

func TestClientDetectLayout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect-layout" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req detectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !strings.HasPrefix(req.ImageDataURI, "data:") {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"boxes":[{"x":10,"y":10,"width":80,"height":80},{"x":100,"y":10,"width":80,"height":80}]}`))
	}))
	t.Cleanup(srv.Close)

	got, err := NewClient(srv.URL+"/").DetectLayout(context.Background(), testImage(4, 4))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	want := []layout.Rect{{X: 10, Y: 10, Width: 80, Height: 80}, {X: 100, Y: 10, Width: 80, Height: 80}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %+v", got)
	}
}

func TestClientEmptyLayoutIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	got, err := NewClient(srv.URL).DetectLayout(context.Background(), testImage(1, 1))
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestClientBackgroundFill(t *testing.T) {
	filled, err := EncodeDataURI(testImage(40, 30))
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req fillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BoxWidth != 40 || req.BoxHeight != 30 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(fillResponse{FilledImageDataURI: filled})
	}))
	t.Cleanup(srv.Close)

	img, err := NewClient(srv.URL).ExtendBackground(context.Background(), testImage(10, 10), 40, 30)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestClientFailuresAreServiceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/background-fill" {
			time.Sleep(200 * time.Millisecond)
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL)

	_, err := c.DetectLayout(context.Background(), testImage(1, 1))
	var se *ServiceError
	if !errors.Is(err, ErrService) || !errors.As(err, &se) || se.Op != "detect layout" {
		t.Fatalf("expected service error, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("status missing from %q", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.ExtendBackground(ctx, testImage(1, 1), 5, 5)
	if !errors.Is(err, ErrService) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline service error, got %v", err)
	}
}

func TestBlurFiller(t *testing.T) {
	img, err := BlurFiller{}.ExtendBackground(context.Background(), testImage(10, 10), 20, 15)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 15 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (BlurFiller{}).ExtendBackground(ctx, testImage(1, 1), 5, 5); !errors.Is(err, ErrService) {
		t.Fatalf("expected service error for cancelled context, got %v", err)
	}
}

func TestSelection(t *testing.T) {
	d, err := NewDetector(Settings{})
	if err != nil || d != nil {
		t.Fatalf("unset detector: %v %v", d, err)
	}
	d, err = NewDetector(Settings{Endpoint: "http://localhost:1"})
	if _, ok := d.(*Client); err != nil || !ok {
		t.Fatalf("endpoint detector: %T %v", d, err)
	}
	d, err = NewDetector(Settings{Detector: KindContour})
	if _, ok := d.(ContourDetector); err != nil || !ok {
		t.Fatalf("contour detector: %T %v", d, err)
	}
	if _, err := NewDetector(Settings{Detector: KindHTTP}); err == nil {
		t.Fatalf("http detector without endpoint should fail")
	}
	if _, err := NewDetector(Settings{Detector: "magic"}); err == nil {
		t.Fatalf("unknown detector should fail")
	}

	f, err := NewFiller(Settings{})
	if _, ok := f.(BlurFiller); err != nil || !ok {
		t.Fatalf("default filler: %T %v", f, err)
	}
	f, err = NewFiller(Settings{Filler: KindNone, Endpoint: "http://x"})
	if err != nil || f != nil {
		t.Fatalf("none filler: %T %v", f, err)
	}
}
