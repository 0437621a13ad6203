package classify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// UploadPath is the service endpoint that accepts a data file.
const UploadPath = "/upload"

// FileField is the multipart field name carrying the file.
const FileField = "file"

// DefaultBaseURL matches the development server of the classification service.
const DefaultBaseURL = "http://127.0.0.1:5000"

// File is a selected data file. Open is called once per upload.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileFromPath returns a File backed by the file at path.
func FileFromPath(path string) *File {
	return &File{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// FileFromBytes returns an in-memory File.
func FileFromBytes(name string, data []byte) *File {
	return &File{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Client submits files to the classification service.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string // optional; defaults to DefaultBaseURL
}

// Upload sends f as the single "file" part of a multipart POST and decodes
// the reply. Transport failures and non-2xx statuses are returned as errors;
// an application-level error comes back as a Failure outcome.
func (c *Client) Upload(ctx context.Context, f *File) (Outcome, error) {
	if f == nil || f.Open == nil {
		return nil, fmt.Errorf("no file to upload")
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	body, contentType, err := encodeFile(f)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+UploadPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	logf(f.Name, "POST %s (%d bytes)", req.URL.Redacted(), body.Len())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	out, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", UploadPath, err)
	}
	logf(f.Name, "status %d, outcome %T", resp.StatusCode, out)
	return out, nil
}

func encodeFile(f *File) (*bytes.Buffer, string, error) {
	src, err := f.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer src.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(FileField, filepath.Base(f.Name))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", f.Name, err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
