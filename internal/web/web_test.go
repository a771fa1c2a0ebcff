package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papervault/portal/internal/catalog"
	"github.com/papervault/portal/internal/storage"
	"github.com/papervault/portal/internal/upload"
)

var cse = catalog.Branch{ID: "b-cse", Name: "Computer Science Engineering", Slug: "cse"}

var dataStructures = catalog.Subject{ID: "s-cs201", Name: "Data Structures", Code: "CS201", Semester: 2, BranchID: "b-cse"}

// fakeStore serves one subject with papers for 2020-2024 and records created papers.
type fakeStore struct {
	papers []catalog.QuestionPaper
	err    error
}

func newFakeStore() *fakeStore {
	s := &fakeStore{}
	for year := 2024; year >= 2020; year-- {
		s.papers = append(s.papers, catalog.QuestionPaper{
			ID:        catalog.SeedPaperID(dataStructures.ID, year),
			Year:      year,
			FileURL:   catalog.PaperPath("cse", 2, "CS201", year),
			SubjectID: dataStructures.ID,
		})
	}
	return s
}

func (f *fakeStore) ListSubjects(_ context.Context, slug string, semester int) ([]catalog.Subject, error) {
	if f.err != nil {
		return nil, f.err
	}
	if slug == "cse" && semester == 2 {
		return []catalog.Subject{dataStructures}, nil
	}
	return nil, nil
}

func (f *fakeStore) FindSubject(_ context.Context, slug string, semester int, code string) (*catalog.Subject, error) {
	if f.err != nil {
		return nil, f.err
	}
	if slug == "cse" && semester == 2 && strings.EqualFold(code, "CS201") {
		s := dataStructures
		return &s, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeStore) ListPapers(_ context.Context, subjectID string) ([]catalog.QuestionPaper, error) {
	var out []catalog.QuestionPaper
	for _, p := range f.papers {
		if p.SubjectID == subjectID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) ListBranchesWithSubjects(context.Context) ([]catalog.BranchWithSubjects, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []catalog.BranchWithSubjects{{Branch: cse, Subjects: []catalog.Subject{dataStructures}}}, nil
}

func (f *fakeStore) GetSubject(_ context.Context, id string) (*catalog.Subject, error) {
	if id != dataStructures.ID {
		return nil, catalog.ErrNotFound
	}
	s := dataStructures
	return &s, nil
}

func (f *fakeStore) CreatePaper(_ context.Context, subjectID string, year int, fileURL string) (*catalog.QuestionPaper, error) {
	p := catalog.QuestionPaper{ID: "new-paper", Year: year, FileURL: fileURL, SubjectID: subjectID}
	f.papers = append([]catalog.QuestionPaper{p}, f.papers...)
	return &p, nil
}

func newTestRouter(t *testing.T) (http.Handler, *fakeStore, afero.Fs) {
	t.Helper()
	store := newFakeStore()
	fs := afero.NewMemMapFs()
	files := storage.NewFileStorage(fs, "http://files.test/files")
	logger := log.New(io.Discard)

	h, err := NewHandler(
		catalog.NewService(store, files),
		upload.NewService(store, files, logger),
		1<<20,
		logger,
	)
	require.NoError(t, err)

	r := chi.NewRouter()
	h.Routes(r)
	return r, store, fs
}

func get(t *testing.T, h http.Handler, target string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec.Code, rec.Body.String()
}

func TestHomeListsBranches(t *testing.T) {
	r, _, _ := newTestRouter(t)
	code, body := get(t, r, "/")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "BTech Question Paper Portal")
	for _, b := range catalog.Branches() {
		assert.Contains(t, body, `href="/`+b.Slug+`"`)
	}
	assert.Contains(t, body, "bg-blue-500")
}

func TestBranchPage(t *testing.T) {
	r, _, _ := newTestRouter(t)
	code, body := get(t, r, "/cse")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Computer Science Engineering")
	assert.Contains(t, body, `href="/cse/1"`)
	assert.Contains(t, body, `href="/cse/8"`)
	assert.NotContains(t, body, `href="/cse/9"`)
}

func TestSemesterPage(t *testing.T) {
	r, _, _ := newTestRouter(t)

	code, body := get(t, r, "/cse/2")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Data Structures")
	assert.Contains(t, body, `href="/cse/2/cs201"`)
	assert.Contains(t, body, "1 subject available")

	code, body = get(t, r, "/cse/3")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "No subjects found")
	assert.Contains(t, body, "0 subjects available")
}

func TestNotFoundPages(t *testing.T) {
	r, _, _ := newTestRouter(t)
	for _, path := range []string{"/xyz", "/cse/9", "/cse/0", "/cse/two", "/xyz/2", "/cse/2/cs999", "/cse/3/cs201", "/a/b/c/d"} {
		code, body := get(t, r, path)
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Contains(t, body, "404", path)
	}
}

func TestSubjectPageListsPapersNewestFirst(t *testing.T) {
	r, _, _ := newTestRouter(t)
	code, body := get(t, r, "/cse/2/CS201")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "5 question papers available")
	assert.Contains(t, body, "Select a Paper to View")

	last := -1
	for _, year := range []string{"2024", "2023", "2022", "2021", "2020"} {
		i := strings.Index(body, "Year "+year)
		require.Greater(t, i, last, year)
		last = i
	}
}

func TestSubjectPageSearch(t *testing.T) {
	r, _, _ := newTestRouter(t)

	_, body := get(t, r, "/cse/2/cs201?search=202")
	assert.Equal(t, 5, strings.Count(body, "data-paper="))

	_, body = get(t, r, "/cse/2/cs201?search=2023")
	assert.Equal(t, 1, strings.Count(body, "data-paper="))
	assert.Contains(t, body, "?paper=s-cs201_2023&amp;search=2023")

	_, body = get(t, r, "/cse/2/cs201?search=1999")
	assert.Zero(t, strings.Count(body, "data-paper="))
	assert.Contains(t, body, "No papers found")
	assert.Contains(t, body, "Try a different search term")
	assert.Contains(t, body, "5 question papers available", "header counts every paper")
}

func TestSubjectPageViewer(t *testing.T) {
	r, _, _ := newTestRouter(t)

	_, body := get(t, r, "/cse/2/cs201?paper=s-cs201_2022")
	assert.Contains(t, body, "CS201_2022.pdf")
	assert.Contains(t, body, "http://files.test/files/cse/sem2/CS201_2022.pdf#toolbar=1")
	assert.Contains(t, body, "Download PDF")
	assert.NotContains(t, body, "Select a Paper to View")

	_, body = get(t, r, "/cse/2/cs201?paper=missing")
	assert.Contains(t, body, "Select a Paper to View")
}

func TestCatalogFailureRendersErrorPage(t *testing.T) {
	r, store, _ := newTestRouter(t)
	store.err = errors.New("db down")

	code, body := get(t, r, "/cse/2")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body, "Something went wrong")
}

func TestUploadFormListsSubjects(t *testing.T) {
	r, _, _ := newTestRouter(t)
	code, body := get(t, r, "/admin/upload")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `<option value="cse">Computer Science Engineering (CSE)</option>`)
	assert.Contains(t, body, `data-branch="cse" data-semester="2"`)
	assert.Contains(t, body, "CS201 - Data Structures")
	assert.Contains(t, body, `min="2000" max="2100"`)
}

func postUpload(t *testing.T, h http.Handler, fields map[string]string, file []byte) (int, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("file", "paper.pdf")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code, rec.Body.String()
}

func TestUploadSubmit(t *testing.T) {
	r, store, fs := newTestRouter(t)
	fields := map[string]string{"subjectId": dataStructures.ID, "year": "2025", "branchSlug": "cse", "semester": "2"}
	pdf := []byte("%PDF-1.4\nnew paper\n%%EOF\n")

	code, body := postUpload(t, r, fields, pdf)

	assert.Equal(t, http.StatusCreated, code)
	assert.Contains(t, body, "Question paper uploaded successfully!")
	assert.Contains(t, body, "cse/sem2/CS201_2025.pdf")

	stored, err := afero.ReadFile(fs, "/cse/sem2/CS201_2025.pdf")
	require.NoError(t, err)
	assert.Equal(t, pdf, stored)
	assert.Equal(t, "cse/sem2/CS201_2025.pdf", store.papers[0].FileURL)

	_, body = get(t, r, "/cse/2/cs201")
	assert.Contains(t, body, "Year 2025")
}

func TestUploadSubmitValidationError(t *testing.T) {
	r, store, _ := newTestRouter(t)

	code, body := postUpload(t, r, map[string]string{"subjectId": dataStructures.ID}, nil)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "Missing required fields")
	assert.Len(t, store.papers, 5)
}
