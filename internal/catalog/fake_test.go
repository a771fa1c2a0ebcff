package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// memStore is an in-memory Store used by the service and handler tests.
type memStore struct {
	branches []Branch
	subjects []Subject
	papers   []QuestionPaper
	err      error
}

func (m *memStore) branchBySlug(slug string) (Branch, bool) {
	for _, b := range m.branches {
		if b.Slug == slug {
			return b, true
		}
	}
	return Branch{}, false
}

func (m *memStore) ListSubjects(_ context.Context, branchSlug string, semester int) ([]Subject, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.branchBySlug(branchSlug)
	if !ok {
		return nil, nil
	}
	var out []Subject
	for _, s := range m.subjects {
		if s.BranchID == b.ID && s.Semester == semester {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *memStore) FindSubject(_ context.Context, branchSlug string, semester int, code string) (*Subject, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.branchBySlug(branchSlug)
	if !ok {
		return nil, ErrNotFound
	}
	for _, s := range m.subjects {
		if s.BranchID == b.ID && s.Semester == semester && strings.EqualFold(s.Code, code) {
			s := s
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) ListPapers(_ context.Context, subjectID string) ([]QuestionPaper, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []QuestionPaper
	for _, p := range m.papers {
		if p.SubjectID == subjectID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (m *memStore) ListBranchesWithSubjects(_ context.Context) ([]BranchWithSubjects, error) {
	if m.err != nil {
		return nil, m.err
	}
	branches := append([]Branch(nil), m.branches...)
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	subjects := append([]Subject(nil), m.subjects...)
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Semester != subjects[j].Semester {
			return subjects[i].Semester < subjects[j].Semester
		}
		return subjects[i].Code < subjects[j].Code
	})
	return groupSubjects(branches, subjects), nil
}

// stubResolver prefixes paths with a fixed base.
type stubResolver struct {
	base  string
	calls []string
}

func (s *stubResolver) Resolve(_ context.Context, key string) string {
	s.calls = append(s.calls, key)
	return s.base + "/" + key
}

// seededStore mirrors the CSE fixture: Data Structures (CS201) in semester 2
// with papers for 2020 through 2024, inserted oldest first.
func seededStore() *memStore {
	m := &memStore{
		branches: []Branch{
			{ID: "b-cse", Name: "Computer Science Engineering", Slug: "cse"},
			{ID: "b-ece", Name: "Electronics & Communication Engineering", Slug: "ece"},
		},
		subjects: []Subject{
			{ID: "s-cs201", Name: "Data Structures", Code: "CS201", Semester: 2, BranchID: "b-cse"},
			{ID: "s-cs202", Name: "Digital Logic Design", Code: "CS202", Semester: 2, BranchID: "b-cse"},
			{ID: "s-math102", Name: "Engineering Mathematics - II", Code: "MATH102", Semester: 2, BranchID: "b-cse"},
			{ID: "s-cs101", Name: "Programming for Problem Solving", Code: "CS101", Semester: 1, BranchID: "b-cse"},
			{ID: "s-ec101", Name: "Electronic Devices", Code: "EC101", Semester: 1, BranchID: "b-ece"},
		},
	}
	for year := 2020; year <= 2024; year++ {
		m.papers = append(m.papers, QuestionPaper{
			ID:        SeedPaperID("s-cs201", year),
			Year:      year,
			FileURL:   PaperPath("cse", 2, "CS201", year),
			SubjectID: "s-cs201",
		})
	}
	m.papers = append(m.papers, QuestionPaper{
		ID: "p-other", Year: 2022, FileURL: "cse/sem2/CS202_2022.pdf", SubjectID: "s-cs202",
	})
	return m
}

func years(papers []QuestionPaper) []int {
	out := make([]int, 0, len(papers))
	for _, p := range papers {
		out = append(out, p.Year)
	}
	return out
}

var errBoom = errors.New("connection reset")
