// Package upload stores new question papers: the PDF goes to object storage
// and a catalog row pointing at it is inserted.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/papervault/portal/internal/catalog"
	"github.com/papervault/portal/internal/storage"
)

// Year bounds accepted for uploads.
const (
	MinYear = 2000
	MaxYear = 2100
)

const pdfContentType = "application/pdf"

// Catalog is the part of the catalog store the workflow writes through.
type Catalog interface {
	GetSubject(ctx context.Context, id string) (*catalog.Subject, error)
	CreatePaper(ctx context.Context, subjectID string, year int, fileURL string) (*catalog.QuestionPaper, error)
}

// Submission is one upload request. All fields are required.
type Submission struct {
	File       []byte
	FileName   string
	SubjectID  string
	Year       int
	BranchSlug string
	Semester   int
}

// Uploaded describes a stored question paper.
type Uploaded struct {
	ID       string `json:"id"`
	FilePath string `json:"filePath"`
	Year     int    `json:"year"`
	Size     string `json:"size"`
}

// Service runs the upload workflow.
type Service struct {
	catalog Catalog
	store   storage.Storage
	logger  *log.Logger
}

// NewService creates a new upload Service.
func NewService(c Catalog, store storage.Storage, logger *log.Logger) *Service {
	return &Service{catalog: c, store: store, logger: logger}
}

// Validate checks a submission without doing any I/O.
func Validate(sub Submission) error {
	if len(sub.File) == 0 || sub.SubjectID == "" || sub.Year == 0 || sub.BranchSlug == "" || sub.Semester == 0 {
		return validation("Missing required fields")
	}
	if sub.Year < MinYear || sub.Year > MaxYear {
		return validation(fmt.Sprintf("Year must be between %d and %d", MinYear, MaxYear))
	}
	if !catalog.ValidSemester(sub.Semester) {
		return validation(fmt.Sprintf("Semester must be between %d and %d", catalog.MinSemester, catalog.MaxSemester))
	}
	if _, ok := catalog.LookupBranch(sub.BranchSlug); !ok {
		return validation(fmt.Sprintf("Unknown branch %q", sub.BranchSlug))
	}
	if mt := mimetype.Detect(sub.File); !mt.Is(pdfContentType) {
		return validation(fmt.Sprintf("File must be a PDF, got %s", mt.String()))
	}
	return nil
}

// Upload validates sub, writes the PDF to its canonical path (replacing any
// previous object there) and inserts a catalog row for it.
//
// If the insert fails after the write succeeded the object stays in storage
// without a row; it is logged and not deleted, since an overwrite may have
// replaced a file that existing rows still point at.
func (s *Service) Upload(ctx context.Context, sub Submission) (*Uploaded, error) {
	s.logger.Debug("upload: received", "submission", sub.String())
	if err := Validate(sub); err != nil {
		return nil, err
	}

	subject, err := s.catalog.GetSubject(ctx, sub.SubjectID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, &Error{Kind: KindNotFound, Message: "Subject not found", Err: err}
		}
		s.logger.Error("upload: subject lookup failed", "subject_id", sub.SubjectID, "err", err)
		return nil, &Error{Kind: KindInternal, Message: "Unknown error occurred", Err: err}
	}
	if subject.Semester != sub.Semester {
		s.logger.Warn("upload: semester differs from subject",
			"subject", subject.Code, "subject_semester", subject.Semester, "submitted", sub.Semester)
	}

	path := catalog.PaperPath(sub.BranchSlug, sub.Semester, subject.Code, sub.Year)
	size := humanize.IBytes(uint64(len(sub.File)))

	if _, err := s.store.Put(ctx, path, bytes.NewReader(sub.File), int64(len(sub.File)), pdfContentType, true); err != nil {
		s.logger.Error("upload: storage write failed", "path", path, "size", size, "err", err)
		return nil, &Error{Kind: KindStorage, Message: storageMessage(err), Err: err}
	}

	paper, err := s.catalog.CreatePaper(ctx, subject.ID, sub.Year, path)
	if err != nil {
		s.logger.Error("upload: object stored but catalog insert failed, object left orphaned",
			"path", path, "subject_id", subject.ID, "year", sub.Year, "err", err)
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, &Error{Kind: KindNotFound, Message: "Subject not found", Err: err}
		}
		return nil, &Error{Kind: KindInternal, Message: "Unknown error occurred", Err: err}
	}

	s.logger.Info("upload: question paper stored", "id", paper.ID, "path", path, "size", size)
	return &Uploaded{ID: paper.ID, FilePath: path, Year: paper.Year, Size: size}, nil
}

func storageMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrObjectExists):
		return "Upload failed: a file already exists at this path"
	case errors.Is(err, storage.ErrInvalidKey):
		return "Upload failed: invalid storage path"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Upload failed: request cancelled"
	default:
		return "Upload failed: storage unavailable"
	}
}
