package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/papervault/portal/internal/response"
)

// multipartOverhead is the body allowance on top of the file limit for the
// other form fields and part headers.
const multipartOverhead = 1 << 20

// Handler holds the HTTP handler for the upload API.
type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler creates a new upload Handler accepting files up to maxBytes.
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// ParseSubmission reads the multipart upload form from r. Missing fields are
// left zero so that Validate reports them; malformed ones fail here.
func ParseSubmission(w http.ResponseWriter, r *http.Request, maxBytes int64) (Submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Submission{}, validation("File exceeds " + humanize.IBytes(uint64(maxBytes)))
		}
		return Submission{}, &Error{Kind: KindValidation, Message: "Invalid form submission", Err: err}
	}

	sub := Submission{
		SubjectID:  strings.TrimSpace(r.FormValue("subjectId")),
		BranchSlug: strings.TrimSpace(r.FormValue("branchSlug")),
	}

	var err error
	if sub.Year, err = optionalInt(r.FormValue("year")); err != nil {
		return Submission{}, validation("Year must be a number")
	}
	if sub.Semester, err = optionalInt(r.FormValue("semester")); err != nil {
		return Submission{}, validation("Semester must be a number")
	}

	f, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return sub, nil
	case err != nil:
		return Submission{}, &Error{Kind: KindValidation, Message: "Invalid file field", Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return Submission{}, &Error{Kind: KindValidation, Message: "Could not read file", Err: err}
	}
	if int64(len(data)) > maxBytes {
		return Submission{}, validation("File exceeds " + humanize.IBytes(uint64(maxBytes)))
	}
	sub.File = data
	sub.FileName = header.Filename
	return sub, nil
}

func optionalInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// StatusOf maps a workflow failure to an HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Upload godoc
//
//	@Summary		Upload question paper
//	@Description	Stores a PDF at {branchSlug}/sem{semester}/{subjectCode}_{year}.pdf (replacing any existing object) and records a new question paper. Re-uploading the same subject and year adds another record.
//	@Tags			papers
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"PDF file"
//	@Param			subjectId	formData	string	true	"Subject id"
//	@Param			year		formData	int		true	"Exam year (2000-2100)"
//	@Param			branchSlug	formData	string	true	"Branch slug"
//	@Param			semester	formData	int		true	"Semester (1-8)"
//	@Success		201			{object}	response.Envelope{data=Uploaded}
//	@Failure		400			{object}	response.Envelope
//	@Failure		404			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Failure		502			{object}	response.Envelope
//	@Router			/papers [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	sub, err := ParseSubmission(w, r, h.maxBytes)
	if err == nil {
		var uploaded *Uploaded
		uploaded, err = h.svc.Upload(r.Context(), sub)
		if err == nil {
			response.Created(w, uploaded)
			return
		}
	}
	response.Error(w, StatusOf(err), MessageOf(err))
}

// String renders a short description of the submission for logs.
func (s Submission) String() string {
	return fmt.Sprintf("subject=%s year=%d branch=%s sem=%d file=%q (%s)",
		s.SubjectID, s.Year, s.BranchSlug, s.Semester, s.FileName, humanize.IBytes(uint64(len(s.File))))
}
