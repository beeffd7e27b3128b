package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

const DefaultImgBBEndpoint = "https://api.imgbb.com/1/upload"

var ErrUploadFailed = errors.New("image upload failed")

// ImgBBClient uploads images to the ImgBB hosting API.
type ImgBBClient struct {
	Endpoint string
	APIKey   string
	HTTP     *http.Client
}

func NewImgBBClient(apiKey string) *ImgBBClient {
	return &ImgBBClient{
		Endpoint: DefaultImgBBEndpoint,
		APIKey:   apiKey,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

type imgbbResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Upload posts the file as the "image" form field and returns the hosted URL.
func (c *ImgBBClient) Upload(ctx context.Context, filename string, r io.Reader, _ int64, _ string) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	endpoint := c.Endpoint + "?key=" + url.QueryEscape(c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}
	var out imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrUploadFailed, err)
	}
	if out.Data.URL == "" {
		return "", fmt.Errorf("%w: empty url", ErrUploadFailed)
	}
	return out.Data.URL, nil
}
