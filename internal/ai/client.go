package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"

	"github.com/example/layoutcanvas/internal/layout"
)

// Client talks to the layout service over JSON.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) ClientOption { return func(c *Client) { c.HTTP = h } }

// NewClient returns a client for the service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: http.DefaultClient}
	for _, o := range opts {
		o(c)
	}
	return c
}

type detectRequest struct {
	ImageDataURI string `json:"imageDataUri"`
}

type detectResponse struct {
	Boxes []layout.Rect `json:"boxes"`
}

type fillRequest struct {
	ImageDataURI string `json:"imageDataUri"`
	BoxWidth     int    `json:"boxWidth"`
	BoxHeight    int    `json:"boxHeight"`
}

type fillResponse struct {
	FilledImageDataURI string `json:"filledImageDataUri"`
}

// DetectLayout posts img to {base}/detect-layout.
func (c *Client) DetectLayout(ctx context.Context, img image.Image) ([]layout.Rect, error) {
	uri, err := EncodeDataURI(img)
	if err != nil {
		return nil, serviceErr("detect layout", err)
	}
	var resp detectResponse
	if err := c.post(ctx, "/detect-layout", detectRequest{ImageDataURI: uri}, &resp); err != nil {
		return nil, serviceErr("detect layout", err)
	}
	return resp.Boxes, nil
}

// ExtendBackground posts img and the target size to {base}/background-fill.
func (c *Client) ExtendBackground(ctx context.Context, img image.Image, w, h int) (image.Image, error) {
	uri, err := EncodeDataURI(img)
	if err != nil {
		return nil, serviceErr("background fill", err)
	}
	var resp fillResponse
	if err := c.post(ctx, "/background-fill", fillRequest{ImageDataURI: uri, BoxWidth: w, BoxHeight: h}, &resp); err != nil {
		return nil, serviceErr("background fill", err)
	}
	if resp.FilledImageDataURI == "" {
		return nil, serviceErr("background fill", fmt.Errorf("empty response"))
	}
	out, err := DecodeDataURI(resp.FilledImageDataURI)
	if err != nil {
		return nil, serviceErr("background fill", err)
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: %s: %s", path, resp.Status, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
