// Package documentstest provides file fixtures and a filesystem-backed
// document store for tests.
package documentstest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/portfolio-api/internal/documents"
	"github.com/JaimeStill/portfolio-api/pkg/lifecycle"
	"github.com/JaimeStill/portfolio-api/pkg/storage"
)

// Logger discards everything below error.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// NewStore returns a Store rooted at a fresh temporary directory.
func NewStore(t testing.TB) (documents.Store, string) {
	t.Helper()
	dir := t.TempDir()

	blobs, err := storage.NewFilesystem(&storage.Config{BasePath: dir}, Logger())
	if err != nil {
		t.Fatalf("NewFilesystem() failed: %v", err)
	}

	lc := lifecycle.New()
	if err := blobs.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()

	return documents.New(blobs, Logger()), dir
}

// PDF builds a well-formed PDF with the given number of blank pages.
func PDF(pages int) []byte {
	var buf bytes.Buffer
	offsets := []int{}

	buf.WriteString("%PDF-1.4\n")

	object := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}

	object("<< /Type /Catalog /Pages 2 0 R >>")
	object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), pages))
	for range pages {
		object("<< /Type /Page /Parent 2 0 R /Resources << >> >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

// Spreadsheet builds a minimal Office Open XML workbook archive.
func Spreadsheet() []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := []struct{ name, body string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`},
		{"xl/workbook.xml", `<?xml version="1.0" encoding="UTF-8"?><workbook/>`},
	}
	for _, e := range entries {
		w, _ := zw.Create(e.name)
		io.WriteString(w, e.body)
	}
	zw.Close()

	return buf.Bytes()
}

// Upload wraps data as a seekable upload.
func Upload(filename string, data []byte) *documents.Upload {
	return documents.NewUpload(filename, int64(len(data)), bytes.NewReader(data))
}
