package classify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/idlab-discover/drivescore-cli/internal/partition"
)

const successBody = `{
  "status": "success",
  "message": "File uploaded and processed",
  "result": [
    {"time": "2024-05-01 08:00:00", "SPD": 1.25, "acceleration": 0.5, "deceleration": 0, "stop_frequency": 0, "idle_time": 0, "behavior_category": "high-risk"},
    {"time": "2024-05-01 08:00:10", "SPD": -0.75, "acceleration": 0, "deceleration": -1.1, "stop_frequency": 1, "idle_time": 0, "behavior_category": "safe"}
  ],
  "aggressive_percentage": 42.5,
  "contributions": {"SPD": 0.3, "acceleration": 0.2, "deceleration": 0.2, "stop_frequency": 0.2, "idle_time": 0.1}
}`

func TestUpload_SendsSingleFilePart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != UploadPath {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		if len(r.MultipartForm.Value) != 0 {
			t.Errorf("unexpected form values: %v", r.MultipartForm.Value)
		}
		if len(r.MultipartForm.File) != 1 || len(r.MultipartForm.File[FileField]) != 1 {
			t.Errorf("expected exactly one %q part, got %v", FileField, r.MultipartForm.File)
			return
		}
		fh := r.MultipartForm.File[FileField][0]
		if fh.Filename != "trip.csv" {
			t.Errorf("filename = %q", fh.Filename)
		}
		f, _ := fh.Open()
		data, _ := io.ReadAll(f)
		if string(data) != "time,SPD\n1,2\n" {
			t.Errorf("content = %q", data)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, successBody)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL + "/"}
	out, err := c.Upload(context.Background(), FileFromBytes("trip.csv", []byte("time,SPD\n1,2\n")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	s, ok := out.(Success)
	if !ok {
		t.Fatalf("outcome = %T, want Success", out)
	}
	if len(s.Rows) != 2 {
		t.Fatalf("rows = %d", len(s.Rows))
	}
	if got := s.Rows[1].Columns(); strings.Join(got, "|") != "2024-05-01 08:00:10|-0.75|0|-1.1|1|0|safe" {
		t.Fatalf("columns = %v", got)
	}
	if s.AggressivePercentage != 42.5 {
		t.Fatalf("percentage = %v", s.AggressivePercentage)
	}
	if s.Contributions[partition.IdleTime] != 0.1 {
		t.Fatalf("contributions = %v", s.Contributions)
	}
}

func TestUpload_Non2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"status":"success"}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTPClient: NewHTTPClient(0)}
	_, err := c.Upload(context.Background(), FileFromBytes("trip.csv", nil))
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError {
		t.Fatalf("err = %v, want StatusError 500", err)
	}
	if !IsStatus(err) {
		t.Fatalf("IsStatus = false")
	}
}

func TestUpload_ApplicationErrorIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"error","message":"unsupported file format"}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	out, err := c.Upload(context.Background(), FileFromBytes("trip.txt", []byte("x")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	f, ok := out.(Failure)
	if !ok || f.Message != "unsupported file format" {
		t.Fatalf("outcome = %#v", out)
	}
}

func TestUpload_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := &Client{BaseURL: url}
	if _, err := c.Upload(context.Background(), FileFromBytes("trip.csv", nil)); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestUpload_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"success","aggressive_percentage":NaN}`)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	_, err := c.Upload(context.Background(), FileFromBytes("trip.csv", nil))
	if err == nil || IsInvalidResult(err) || IsStatus(err) {
		t.Fatalf("err = %v, want decode error", err)
	}
}

func TestUpload_OpenError(t *testing.T) {
	c := &Client{BaseURL: "http://127.0.0.1:1"}
	f := &File{Name: "x.csv", Open: func() (io.ReadCloser, error) { return nil, errors.New("boom") }}
	if _, err := c.Upload(context.Background(), f); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("err = %v", err)
	}
	if _, err := c.Upload(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil file")
	}
}

func TestUpload_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, successBody)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Client{BaseURL: srv.URL}
	if _, err := c.Upload(ctx, FileFromBytes("trip.csv", nil)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
