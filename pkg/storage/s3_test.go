package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/portfolio-api/pkg/storage"
	"github.com/JaimeStill/portfolio-api/pkg/storage/storagetest"
)

func TestS3_Store_SeekableBody(t *testing.T) {
	srv := storagetest.NewS3Server(t)
	sys := srv.NewSystem(t, testLogger())
	ctx := context.Background()

	data := bytes.Repeat([]byte("pdf-bytes "), 1000)
	if err := sys.Store(ctx, "projects/a.pdf", bytes.NewReader(data)); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	got, ok := srv.Object("projects/a.pdf")
	if !ok || !bytes.Equal(got, data) {
		t.Fatalf("stored %d bytes, want %d", len(got), len(data))
	}

	puts := srv.Puts()
	if len(puts) != 1 {
		t.Fatalf("PutObject calls = %d, want 1", len(puts))
	}
	if puts[0].ContentLength != int64(len(data)) {
		t.Errorf("Content-Length = %d, want %d", puts[0].ContentLength, len(data))
	}
}

func TestS3_Store_SeekableBodyFromOffset(t *testing.T) {
	srv := storagetest.NewS3Server(t)
	sys := srv.NewSystem(t, testLogger())

	r := strings.NewReader("headerbody")
	r.Seek(6, io.SeekStart)

	if err := sys.Store(context.Background(), "projects/b.pdf", r); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	if got, _ := srv.Object("projects/b.pdf"); string(got) != "body" {
		t.Errorf("stored %q, want %q", got, "body")
	}
}

func TestS3_Store_UnseekableBody(t *testing.T) {
	srv := storagetest.NewS3Server(t)
	sys := srv.NewSystem(t, testLogger())

	body := io.MultiReader(strings.NewReader("first "), strings.NewReader("second"))
	if err := sys.Store(context.Background(), "resume/cv.pdf", body); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	if got, _ := srv.Object("resume/cv.pdf"); string(got) != "first second" {
		t.Errorf("stored %q, want %q", got, "first second")
	}
	if puts := srv.Puts(); len(puts) != 1 || puts[0].ContentLength != 12 {
		t.Errorf("puts = %+v, want one with Content-Length 12", puts)
	}
}

func TestS3_Store_NoOverwrite(t *testing.T) {
	srv := storagetest.NewS3Server(t)
	sys := srv.NewSystem(t, testLogger())
	ctx := context.Background()

	if err := sys.Store(ctx, "resume/cv.pdf", strings.NewReader("first")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	err := sys.Store(ctx, "resume/cv.pdf", strings.NewReader("second"))
	if !errors.Is(err, storage.ErrExists) {
		t.Fatalf("second Store() error = %v, want %v", err, storage.ErrExists)
	}
	if got, _ := srv.Object("resume/cv.pdf"); string(got) != "first" {
		t.Errorf("content = %q, want original %q", got, "first")
	}
}

func TestS3_OpenValidateDelete(t *testing.T) {
	srv := storagetest.NewS3Server(t)
	sys := srv.NewSystem(t, testLogger())
	ctx := context.Background()

	if err := sys.Store(ctx, "projects/a.pdf", strings.NewReader("hello")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	if got := readAll(t, sys, "projects/a.pdf"); got != "hello" {
		t.Errorf("Open() content = %q, want %q", got, "hello")
	}

	if ok, err := sys.Validate(ctx, "projects/a.pdf"); err != nil || !ok {
		t.Errorf("Validate() = %v, %v; want true, nil", ok, err)
	}

	if err := sys.Delete(ctx, "projects/a.pdf"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := sys.Delete(ctx, "projects/a.pdf"); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}

	if ok, err := sys.Validate(ctx, "projects/a.pdf"); err != nil || ok {
		t.Errorf("Validate() after delete = %v, %v; want false, nil", ok, err)
	}
	if _, err := sys.Open(ctx, "projects/a.pdf"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Open() after delete error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestS3_List(t *testing.T) {
	srv := storagetest.NewS3Server(t)
	sys := srv.NewSystem(t, testLogger())
	ctx := context.Background()

	for _, key := range []string{"projects/a.pdf", "projects/b.xlsx", "resume/cv.pdf"} {
		if err := sys.Store(ctx, key, strings.NewReader("xy")); err != nil {
			t.Fatalf("Store(%q) failed: %v", key, err)
		}
	}
	old := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	srv.SetModTime("projects/a.pdf", old)

	objects, err := sys.List(ctx, "projects")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("List() = %v, want 2 objects", objects)
	}
	if objects[0].Key != "projects/a.pdf" || objects[1].Key != "projects/b.xlsx" {
		t.Errorf("keys = %s, %s", objects[0].Key, objects[1].Key)
	}
	if !objects[0].ModTime.Equal(old) {
		t.Errorf("ModTime = %v, want %v", objects[0].ModTime, old)
	}
	if objects[1].Size != 2 {
		t.Errorf("Size = %d, want 2", objects[1].Size)
	}
}

func TestS3_InvalidKey(t *testing.T) {
	srv := storagetest.NewS3Server(t)
	sys := srv.NewSystem(t, testLogger())

	for _, key := range []string{"", "/abs.pdf", "../escape.pdf"} {
		if err := sys.Store(context.Background(), key, strings.NewReader("x")); !errors.Is(err, storage.ErrInvalidKey) {
			t.Errorf("Store(%q) error = %v, want %v", key, err, storage.ErrInvalidKey)
		}
	}
	if len(srv.Puts()) != 0 {
		t.Error("invalid keys reached the server")
	}
}
