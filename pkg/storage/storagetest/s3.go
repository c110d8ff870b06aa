// Package storagetest provides an in-memory S3 endpoint for exercising the
// S3 backend without a real object store.
package storagetest

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/portfolio-api/pkg/storage"
)

const Bucket = "portfolio-test"

// S3Server answers the path-style object calls the S3 backend makes:
// PutObject, GetObject, HeadObject, DeleteObject, ListObjectsV2, HeadBucket.
type S3Server struct {
	*httptest.Server

	mu      sync.Mutex
	objects map[string]object
	puts    []Put
}

type object struct {
	data    []byte
	modTime time.Time
}

// Put records how a PutObject request arrived.
type Put struct {
	Key           string
	ContentLength int64
	PayloadHash   string
	Size          int
}

// NewS3Server starts a server that is closed when the test ends.
func NewS3Server(t testing.TB) *S3Server {
	t.Helper()
	s := &S3Server{objects: make(map[string]object)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// NewSystem returns an S3 storage System addressing s.
func (s *S3Server) NewSystem(t testing.TB, logger *slog.Logger) storage.System {
	t.Helper()
	sys, err := storage.NewS3(context.Background(), &storage.S3Config{
		Bucket:       Bucket,
		Region:       "us-east-1",
		Endpoint:     s.URL,
		AccessKey:    "test",
		SecretKey:    "test",
		UsePathStyle: true,
	}, logger)
	if err != nil {
		t.Fatalf("NewS3() failed: %v", err)
	}
	return sys
}

// Object returns the stored bytes for key.
func (s *S3Server) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.objects[key]
	return o.data, ok
}

// SetModTime backdates key.
func (s *S3Server) SetModTime(key string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.objects[key]; ok {
		o.modTime = t
		s.objects[key] = o
	}
}

// Puts returns every PutObject request received.
func (s *S3Server) Puts() []Put {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Put(nil), s.puts...)
}

func (s *S3Server) serve(w http.ResponseWriter, r *http.Request) {
	rest, ok := strings.CutPrefix(r.URL.Path, "/"+Bucket)
	if !ok {
		writeError(w, http.StatusNotFound, "NoSuchBucket")
		return
	}
	key := strings.TrimPrefix(rest, "/")

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case key == "" && r.Method == http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case key == "" && r.Method == http.MethodGet:
		s.list(w, r.URL.Query().Get("prefix"))
	case r.Method == http.MethodPut:
		s.put(w, r, key)
	case r.Method == http.MethodGet:
		o, ok := s.objects[key]
		if !ok {
			writeError(w, http.StatusNotFound, "NoSuchKey")
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(o.data)))
		w.Write(o.data)
	case r.Method == http.MethodHead:
		o, ok := s.objects[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(o.data)))
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		delete(s.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed")
	}
}

func (s *S3Server) put(w http.ResponseWriter, r *http.Request, key string) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "IncompleteBody")
		return
	}

	s.puts = append(s.puts, Put{
		Key:           key,
		ContentLength: r.ContentLength,
		PayloadHash:   r.Header.Get("X-Amz-Content-Sha256"),
		Size:          len(data),
	})

	if r.ContentLength < 0 || int(r.ContentLength) != len(data) {
		writeError(w, http.StatusLengthRequired, "MissingContentLength")
		return
	}
	if _, exists := s.objects[key]; exists && r.Header.Get("If-None-Match") == "*" {
		writeError(w, http.StatusPreconditionFailed, "PreconditionFailed")
		return
	}

	s.objects[key] = object{data: data, modTime: time.Now().UTC()}
	w.Header().Set("ETag", fmt.Sprintf("%q", strconv.Itoa(len(data))))
	w.WriteHeader(http.StatusOK)
}

type listResult struct {
	XMLName     xml.Name      `xml:"ListBucketResult"`
	Name        string        `xml:"Name"`
	Prefix      string        `xml:"Prefix"`
	KeyCount    int           `xml:"KeyCount"`
	IsTruncated bool          `xml:"IsTruncated"`
	Contents    []listContent `xml:"Contents"`
}

type listContent struct {
	Key          string `xml:"Key"`
	LastModified string `xml:"LastModified"`
	Size         int    `xml:"Size"`
}

func (s *S3Server) list(w http.ResponseWriter, prefix string) {
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	result := listResult{Name: Bucket, Prefix: prefix, KeyCount: len(keys)}
	for _, k := range keys {
		o := s.objects[k]
		result.Contents = append(result.Contents, listContent{
			Key:          k,
			LastModified: o.modTime.UTC().Format("2006-01-02T15:04:05.000Z"),
			Size:         len(o.data),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	xml.NewEncoder(w).Encode(result)
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<Error><Code>%s</Code><Message>%s</Message></Error>", code, code)
}
