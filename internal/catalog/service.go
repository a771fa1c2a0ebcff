package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store is the read side of the catalog used by the browsing views.
type Store interface {
	ListSubjects(ctx context.Context, branchSlug string, semester int) ([]Subject, error)
	FindSubject(ctx context.Context, branchSlug string, semester int, code string) (*Subject, error)
	ListPapers(ctx context.Context, subjectID string) ([]QuestionPaper, error)
	ListBranchesWithSubjects(ctx context.Context) ([]BranchWithSubjects, error)
}

// URLResolver turns a storage path into a fetchable URL. Resolution is lazy:
// a URL is returned even when no object exists at the path.
type URLResolver interface {
	Resolve(ctx context.Context, key string) string
}

// BranchView is the semester picker of one branch.
type BranchView struct {
	Branch    BranchInfo `json:"branch"`
	Semesters []int      `json:"semesters"`
}

// SemesterView lists the subjects of a branch in one semester.
type SemesterView struct {
	Branch   BranchInfo `json:"branch"`
	Semester int        `json:"semester"`
	Subjects []Subject  `json:"subjects"`
}

// SubjectQuery carries the optional query parameters of a subject page.
type SubjectQuery struct {
	Search  string
	PaperID string
}

// PaperSelection is the paper opened in the viewer.
type PaperSelection struct {
	Paper    QuestionPaper `json:"paper"`
	URL      string        `json:"url"`
	FileName string        `json:"fileName"`
}

// SubjectView is a subject with its papers (newest first), the subset
// matching the search term, and the optionally selected paper.
type SubjectView struct {
	Branch     BranchInfo      `json:"branch"`
	Semester   int             `json:"semester"`
	Subject    Subject         `json:"subject"`
	Papers     []QuestionPaper `json:"papers"`
	Filtered   []QuestionPaper `json:"filtered"`
	SearchTerm string          `json:"search,omitempty"`
	Selected   *PaperSelection `json:"selected,omitempty"`
}

// Service contains the browsing logic over the catalog.
type Service struct {
	store Store
	urls  URLResolver
}

// NewService creates a new catalog Service.
func NewService(store Store, urls URLResolver) *Service {
	return &Service{store: store, urls: urls}
}

// Home returns the static branch list shown on the landing page.
func (s *Service) Home() []BranchInfo {
	return Branches()
}

// Branch resolves a branch slug into its semester picker.
func (s *Service) Branch(slug string) (*BranchView, error) {
	b, ok := LookupBranch(slug)
	if !ok {
		return nil, fmt.Errorf("branch %q: %w", slug, ErrNotFound)
	}
	return &BranchView{Branch: b, Semesters: Semesters()}, nil
}

// Semester lists the subjects of a branch in the semester named by the
// path segment semesterParam.
func (s *Service) Semester(ctx context.Context, slug, semesterParam string) (*SemesterView, error) {
	b, semester, err := s.resolvePath(slug, semesterParam)
	if err != nil {
		return nil, err
	}

	subjects, err := s.store.ListSubjects(ctx, slug, semester)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	if subjects == nil {
		subjects = []Subject{}
	}
	return &SemesterView{Branch: b, Semester: semester, Subjects: subjects}, nil
}

// Subject loads a subject page. An unknown paper id in q falls back to no
// selection rather than failing.
func (s *Service) Subject(ctx context.Context, slug, semesterParam, code string, q SubjectQuery) (*SubjectView, error) {
	b, semester, err := s.resolvePath(slug, semesterParam)
	if err != nil {
		return nil, err
	}

	subject, err := s.store.FindSubject(ctx, slug, semester, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("subject %q: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}

	papers, err := s.store.ListPapers(ctx, subject.ID)
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	if papers == nil {
		papers = []QuestionPaper{}
	}

	term := strings.ToLower(q.Search)
	view := &SubjectView{
		Branch:     b,
		Semester:   semester,
		Subject:    *subject,
		Papers:     papers,
		Filtered:   FilterByYear(papers, term),
		SearchTerm: term,
	}

	if q.PaperID != "" {
		for _, p := range papers {
			if p.ID == q.PaperID {
				view.Selected = &PaperSelection{
					Paper:    p,
					URL:      s.urls.Resolve(ctx, p.FileURL),
					FileName: PaperFileName(subject.Code, p.Year),
				}
				break
			}
		}
	}
	return view, nil
}

// ResolveURL returns the fetchable URL of a stored paper path.
func (s *Service) ResolveURL(ctx context.Context, path string) string {
	return s.urls.Resolve(ctx, path)
}

// UploadOptions returns every branch with its subjects for the upload form.
func (s *Service) UploadOptions(ctx context.Context) ([]BranchWithSubjects, error) {
	branches, err := s.store.ListBranchesWithSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list branches with subjects: %w", err)
	}
	return branches, nil
}

// IsNotFound returns true when the error indicates a missing catalog entry.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func (s *Service) resolvePath(slug, semesterParam string) (BranchInfo, int, error) {
	b, ok := LookupBranch(slug)
	if !ok {
		return BranchInfo{}, 0, fmt.Errorf("branch %q: %w", slug, ErrNotFound)
	}
	semester, ok := ParseSemester(semesterParam)
	if !ok {
		return BranchInfo{}, 0, fmt.Errorf("semester %q: %w", semesterParam, ErrNotFound)
	}
	return b, semester, nil
}
