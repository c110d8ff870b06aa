// Package documents stores uploaded files under logical folders and hands
// back references that records embed.
package documents

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Ref points at one stored file. A record holds a Ref by value when the
// document is required and by pointer when it is optional, so a reference is
// always complete or absent as a whole.
type Ref struct {
	Path         string `json:"path"`
	OriginalName string `json:"original_name"`
	SizeBytes    *int64 `json:"size_bytes"`
	ContentType  string `json:"content_type,omitempty"`
	PageCount    *int   `json:"page_count,omitempty"`
}

// Upload is an inbound file stream with its client-supplied name.
type Upload struct {
	Filename string
	Size     int64
	Reader   io.Reader

	detected *mimetype.MIME
}

// NewUpload wraps r as an Upload of size bytes.
func NewUpload(filename string, size int64, r io.Reader) *Upload {
	return &Upload{Filename: filename, Size: size, Reader: r}
}

// Ext returns the lower-cased filename extension including the dot.
func (u *Upload) Ext() string {
	return strings.ToLower(filepath.Ext(u.Filename))
}

// sniff detects the content type from the leading bytes without consuming
// them: seekable readers are rewound, others are re-assembled.
func (u *Upload) sniff() (*mimetype.MIME, error) {
	if u.detected != nil {
		return u.detected, nil
	}

	head := make([]byte, 3072)
	n, err := io.ReadFull(u.Reader, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	head = head[:n]

	if s, ok := u.Reader.(io.Seeker); ok {
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	} else {
		u.Reader = io.MultiReader(bytes.NewReader(head), u.Reader)
	}

	u.detected = mimetype.Detect(head)
	return u.detected, nil
}

// ContentType returns the canonical content type for the upload's extension.
func (u *Upload) ContentType() string {
	if ct, ok := contentTypes[u.Ext()]; ok {
		return ct
	}
	if u.detected != nil {
		return u.detected.String()
	}
	return "application/octet-stream"
}

func remaining(s io.Seeker) (int64, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end - cur, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
