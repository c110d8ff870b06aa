package documents

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
)

const formMemory int64 = 32 << 20

// Form is a parsed multipart submission: plain fields plus the named file
// parts as Uploads. Close releases the parts and any spooled temp files.
type Form struct {
	Values url.Values
	Files  map[string]*Upload

	multipart *multipart.Form
	closers   []multipart.File
}

// ParseForm reads r as a multipart or urlencoded form limited to maxSize
// bytes and opens the given file fields. Missing file fields are absent
// from Files.
func ParseForm(w http.ResponseWriter, r *http.Request, maxSize int64, fileFields ...string) (*Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(formMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	form := &Form{
		Values:    r.PostForm,
		Files:     make(map[string]*Upload),
		multipart: r.MultipartForm,
	}

	for _, field := range fileFields {
		file, header, err := r.FormFile(field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
				continue
			}
			form.Close()
			return nil, fmt.Errorf("read %s: %w", field, err)
		}
		form.closers = append(form.closers, file)
		form.Files[field] = NewUpload(header.Filename, header.Size, file)
	}

	return form, nil
}

// Value returns the first value for key or "".
func (f *Form) Value(key string) string {
	return f.Values.Get(key)
}

// Optional returns nil when key was not submitted at all.
func (f *Form) Optional(key string) *string {
	vs, ok := f.Values[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	return &vs[0]
}

func (f *Form) Close() {
	for _, c := range f.closers {
		c.Close()
	}
	if f.multipart != nil {
		f.multipart.RemoveAll()
	}
}

// FormStatus maps a ParseForm error to 413 for oversized bodies and 400
// otherwise.
func FormStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
