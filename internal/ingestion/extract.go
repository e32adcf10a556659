package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxFileSize bounds the bytes read from a single CV or job description file.
	MaxFileSize = 10 << 20
	// MaxConcurrentFiles bounds ExtractFiles parallelism.
	MaxConcurrentFiles = 4

	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeHTML = "text/html"
	mimeText = "text/plain"
	mimeZip  = "application/zip"
)

// Kind is the extractor family selected for a file
type Kind string

const (
	KindPDF     Kind = "pdf"
	KindDOCX    Kind = "docx"
	KindHTML    Kind = "html"
	KindText    Kind = "text"
	KindUnknown Kind = "unknown"
)

// Document is the plain text recovered from one file plus its metadata
type Document struct {
	Filename string    `json:"filename"`
	Kind     Kind      `json:"kind"`
	Text     string    `json:"text"`
	Metadata *Metadata `json:"metadata"`
}

// ExtractText returns the cleaned plain text of a PDF, DOCX, HTML or text file.
// PDF page breaks are kept as paragraph breaks.
func ExtractText(data []byte, filename string) (string, error) {
	doc, err := Extract(data, filename)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// Extract sniffs the content type of data and runs the matching extractor.
// The filename is only used as a hint for ambiguous containers and in errors.
func Extract(data []byte, filename string) (*Document, error) {
	if len(data) == 0 {
		return nil, &ExtractionError{Filename: filename, Message: "nothing to read", Cause: ErrEmptyFile}
	}

	kind, mime := DetectKind(data, filename)

	var (
		text  string
		pages int
		err   error
	)
	switch kind {
	case KindPDF:
		text, pages, err = extractPDF(data)
	case KindDOCX:
		text, err = extractDOCX(data)
	case KindHTML:
		text, err = extractHTML(data)
	case KindText:
		text = strings.TrimPrefix(strings.ToValidUTF8(string(data), ""), "\ufeff")
	default:
		return nil, &ExtractionError{Filename: filename, Message: fmt.Sprintf("cannot read %s", mime), Cause: ErrUnsupportedType}
	}
	if err != nil {
		return nil, &ExtractionError{Filename: filename, Message: fmt.Sprintf("failed to read %s", kind), Cause: err}
	}

	text = CleanText(text)
	if text == "" {
		return nil, &ExtractionError{Filename: filename, Message: fmt.Sprintf("%s has no text", kind), Cause: ErrNoText}
	}

	metadata := NewMetadata(text, filename)
	metadata.MIME = mime
	metadata.Pages = pages

	return &Document{
		Filename: filename,
		Kind:     kind,
		Text:     text,
		Metadata: metadata,
	}, nil
}

// DetectKind sniffs data with mimetype and returns the extractor family and MIME string.
// Zip containers named *.docx are treated as DOCX, text named *.html as HTML.
func DetectKind(data []byte, filename string) (Kind, string) {
	mtype := mimetype.Detect(data)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case mtype.Is(mimePDF):
		return KindPDF, mimePDF
	case mtype.Is(mimeDOCX):
		return KindDOCX, mimeDOCX
	case mtype.Is(mimeZip) && ext == ".docx":
		return KindDOCX, mimeDOCX
	case mtype.Is(mimeHTML):
		return KindHTML, mimeHTML
	}

	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(mimeText) {
			if ext == ".html" || ext == ".htm" {
				return KindHTML, mimeHTML
			}
			return KindText, mimeText
		}
	}
	return KindUnknown, mtype.String()
}

// ReadFile reads and extracts a single file from disk
func ReadFile(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, &ExtractionError{
			Filename: filepath.Base(path),
			Message:  fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), MaxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Extract(data, filepath.Base(path))
}

// ExtractFiles reads several files concurrently. Results keep the order of paths;
// the first failure cancels the remaining reads.
func ExtractFiles(ctx context.Context, paths []string) ([]*Document, error) {
	docs := make([]*Document, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentFiles)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			doc, err := ReadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
