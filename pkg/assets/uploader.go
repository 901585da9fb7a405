// Package assets talks to the external asset-hosting collaborator. The
// host accepts a multipart upload into a named folder and answers with the
// canonical retrievable URL for the stored object.
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/google/uuid"
)

// Uploader is the capability the event creation pipeline depends on:
// upload bytes into a folder, get back a retrievable URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, folder string) (string, error)
}

type HostClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHostClient(baseURL string, timeout time.Duration) *HostClient {
	return &HostClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload sends the payload as a multipart POST to /upload on the asset
// host. The stored object name is a fresh UUID with the original file
// extension, so repeated uploads of the same filename never collide.
func (c *HostClient) Upload(ctx context.Context, data []byte, filename, folder string) (string, error) {
	objectName := uuid.NewString() + path.Ext(filename)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("folder", folder); err != nil {
		return "", fmt.Errorf("failed to encode folder field: %w", err)
	}

	part, err := writer.CreateFormFile("file", objectName)
	if err != nil {
		return "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write file payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("asset host rejected upload: status %d: %s", resp.StatusCode, respBody)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("asset host returned an empty URL")
	}

	return parsed.URL, nil
}
