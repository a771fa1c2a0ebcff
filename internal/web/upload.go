package web

import (
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/papervault/portal/internal/catalog"
	"github.com/papervault/portal/internal/upload"
)

type flash struct {
	Success bool
	Text    string
}

type uploadPage struct {
	Branches []catalog.BranchWithSubjects
	MinYear  int
	MaxYear  int
	Year     int
	MaxSize  string
	Message  *flash
	Uploaded *upload.Uploaded
}

func (h *Handler) uploadPage(w http.ResponseWriter, r *http.Request, status int, msg *flash, done *upload.Uploaded) {
	branches, err := h.catalog.UploadOptions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, status, "upload", "Upload Question Paper", uploadPage{
		Branches: branches,
		MinYear:  upload.MinYear,
		MaxYear:  upload.MaxYear,
		Year:     time.Now().Year(),
		MaxSize:  humanize.IBytes(uint64(h.maxBytes)),
		Message:  msg,
		Uploaded: done,
	})
}

// UploadForm renders the upload form with every branch and its subjects.
func (h *Handler) UploadForm(w http.ResponseWriter, r *http.Request) {
	h.uploadPage(w, r, http.StatusOK, nil, nil)
}

// UploadSubmit runs the upload workflow for a posted form and renders the
// form again with the outcome.
func (h *Handler) UploadSubmit(w http.ResponseWriter, r *http.Request) {
	sub, err := upload.ParseSubmission(w, r, h.maxBytes)
	if err == nil {
		var done *upload.Uploaded
		done, err = h.upload.Upload(r.Context(), sub)
		if err == nil {
			h.uploadPage(w, r, http.StatusCreated, &flash{Success: true, Text: "Question paper uploaded successfully!"}, done)
			return
		}
	}
	h.uploadPage(w, r, upload.StatusOf(err), &flash{Text: upload.MessageOf(err)}, nil)
}
