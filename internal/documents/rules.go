package documents

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/JaimeStill/portfolio-api/pkg/validation"
)

// Kind is a family of accepted file formats.
type Kind struct {
	Name       string
	Extensions []string
	MIMETypes  []string
}

var (
	KindPDF = Kind{
		Name:       "pdf",
		Extensions: []string{".pdf"},
		MIMETypes:  []string{"application/pdf"},
	}

	// Legacy .xls files sniff as OLE storage and .xlsx files may sniff as
	// plain zip archives, so both containers are accepted for spreadsheets.
	KindSpreadsheet = Kind{
		Name:       "spreadsheet",
		Extensions: []string{".xlsx", ".xls"},
		MIMETypes: []string{
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"application/vnd.ms-excel",
			"application/x-ole-storage",
			"application/zip",
		},
	}
)

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
}

func (k Kind) matches(ext string, detected *mimetype.MIME) bool {
	if !slices.Contains(k.Extensions, ext) {
		return false
	}
	for m := detected; m != nil; m = m.Parent() {
		for _, accepted := range k.MIMETypes {
			if m.Is(accepted) {
				return true
			}
		}
	}
	return false
}

// Rule constrains an uploaded file to a set of kinds and a maximum size.
type Rule struct {
	Kinds   []Kind
	MaxSize int64
}

// PDFRule accepts PDFs up to maxSize bytes.
func PDFRule(maxSize int64) Rule {
	return Rule{Kinds: []Kind{KindPDF}, MaxSize: maxSize}
}

// PDFOrSpreadsheetRule accepts PDFs and Excel workbooks up to maxSize bytes.
func PDFOrSpreadsheetRule(maxSize int64) Rule {
	return Rule{Kinds: []Kind{KindPDF, KindSpreadsheet}, MaxSize: maxSize}
}

func (r Rule) extensions() []string {
	var exts []string
	for _, k := range r.Kinds {
		for _, ext := range k.Extensions {
			exts = append(exts, strings.TrimPrefix(ext, "."))
		}
	}
	return exts
}

// Check validates u against the rule and returns the messages for field.
// Checking reads only the leading bytes and leaves the stream intact.
func (r Rule) Check(field string, u *Upload) validation.Errors {
	errs := validation.Errors{}
	label := strings.ReplaceAll(field, "_", " ")

	if u == nil || u.Reader == nil {
		errs.Add(field, fmt.Sprintf("The %s field is required.", label))
		return errs
	}

	if u.Size > r.MaxSize {
		errs.Add(field, fmt.Sprintf("The %s field must not be greater than %d kilobytes.", label, r.MaxSize/1024))
	}

	detected, err := u.sniff()
	if err != nil {
		errs.Add(field, fmt.Sprintf("The %s failed to upload.", label))
		return errs
	}

	ext := u.Ext()
	if !slices.ContainsFunc(r.Kinds, func(k Kind) bool { return k.matches(ext, detected) }) {
		errs.Add(field, fmt.Sprintf("The %s field must be a file of type: %s.", label, strings.Join(r.extensions(), ", ")))
	}

	return errs
}
