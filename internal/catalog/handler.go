package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/papervault/portal/internal/response"
)

// Handler holds HTTP handlers for the catalog JSON API.
type Handler struct {
	svc *Service
}

// NewHandler creates a new catalog Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the catalog endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/branches", h.ListBranches)
	r.Get("/branches/{branch}", h.GetBranch)
	r.Get("/branches/{branch}/semesters/{semester}/subjects", h.ListSubjects)
	r.Get("/branches/{branch}/semesters/{semester}/subjects/{subject}", h.GetSubject)
}

type paperBody struct {
	QuestionPaper
	URL      string `json:"url"      example:"http://localhost:9000/question-papers/cse/sem2/CS201_2024.pdf"`
	FileName string `json:"fileName" example:"CS201_2024.pdf"`
}

type subjectBody struct {
	Branch   BranchInfo      `json:"branch"`
	Semester int             `json:"semester" example:"2"`
	Subject  Subject         `json:"subject"`
	Total    int             `json:"total"    example:"5"`
	Search   string          `json:"search,omitempty" example:"202"`
	Papers   []paperBody     `json:"papers"`
	Selected *PaperSelection `json:"selected,omitempty"`
}

// ListBranches godoc
//
//	@Summary		List branches
//	@Description	Returns the eight engineering branches with their display colors.
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=[]BranchInfo}
//	@Router			/branches [get]
func (h *Handler) ListBranches(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.svc.Home())
}

// GetBranch godoc
//
//	@Summary		Get branch
//	@Description	Returns a branch and its semesters (1-8).
//	@Tags			catalog
//	@Produce		json
//	@Param			branch	path		string	true	"Branch slug"	example(cse)
//	@Success		200		{object}	response.Envelope{data=BranchView}
//	@Failure		404		{object}	response.Envelope
//	@Router			/branches/{branch} [get]
func (h *Handler) GetBranch(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Branch(chi.URLParam(r, "branch"))
	if err != nil {
		response.NotFound(w, "branch not found")
		return
	}
	response.OK(w, view)
}

// ListSubjects godoc
//
//	@Summary		List subjects of a semester
//	@Description	Returns the subjects of a branch in one semester, ordered by code.
//	@Tags			catalog
//	@Produce		json
//	@Param			branch		path		string	true	"Branch slug"
//	@Param			semester	path		int		true	"Semester (1-8)"
//	@Success		200			{object}	response.Envelope{data=SemesterView}
//	@Failure		404			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/branches/{branch}/semesters/{semester}/subjects [get]
func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Semester(r.Context(), chi.URLParam(r, "branch"), chi.URLParam(r, "semester"))
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "branch or semester not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, view)
}

// GetSubject godoc
//
//	@Summary		Get subject papers
//	@Description	Returns a subject with its question papers, newest year first. `search` keeps papers whose year contains the term; `paper` selects one paper for viewing.
//	@Tags			catalog
//	@Produce		json
//	@Param			branch		path		string	true	"Branch slug"
//	@Param			semester	path		int		true	"Semester (1-8)"
//	@Param			subject		path		string	true	"Subject code (case-insensitive)"
//	@Param			search		query		string	false	"Year substring"
//	@Param			paper		query		string	false	"Selected paper id"
//	@Success		200			{object}	response.Envelope{data=subjectBody}
//	@Failure		404			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/branches/{branch}/semesters/{semester}/subjects/{subject} [get]
func (h *Handler) GetSubject(w http.ResponseWriter, r *http.Request) {
	q := SubjectQuery{
		Search:  r.URL.Query().Get("search"),
		PaperID: r.URL.Query().Get("paper"),
	}
	view, err := h.svc.Subject(r.Context(),
		chi.URLParam(r, "branch"), chi.URLParam(r, "semester"), chi.URLParam(r, "subject"), q)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "subject not found")
			return
		}
		response.InternalError(w)
		return
	}

	papers := make([]paperBody, 0, len(view.Filtered))
	for _, p := range view.Filtered {
		papers = append(papers, paperBody{
			QuestionPaper: p,
			URL:           h.svc.ResolveURL(r.Context(), p.FileURL),
			FileName:      PaperFileName(view.Subject.Code, p.Year),
		})
	}

	response.OK(w, subjectBody{
		Branch:   view.Branch,
		Semester: view.Semester,
		Subject:  view.Subject,
		Total:    len(view.Papers),
		Search:   view.SearchTerm,
		Papers:   papers,
		Selected: view.Selected,
	})
}
