package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papervault/portal/internal/catalog"
	"github.com/papervault/portal/internal/storage"
)

var errBoom = errors.New("boom")

func pdf(body string) []byte {
	return []byte("%PDF-1.4\n" + body + "\n%%EOF\n")
}

// fakeCatalog records every call so tests can assert on I/O.
type fakeCatalog struct {
	mu        sync.Mutex
	subjects  map[string]catalog.Subject
	papers    []catalog.QuestionPaper
	getErr    error
	createErr error
	gets      int
	creates   int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{subjects: map[string]catalog.Subject{
		"subj-cs201": {ID: "subj-cs201", Name: "Data Structures", Code: "CS201", Semester: 2, BranchID: "branch-cse"},
	}}
}

func (f *fakeCatalog) GetSubject(_ context.Context, id string) (*catalog.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.subjects[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &s, nil
}

func (f *fakeCatalog) CreatePaper(_ context.Context, subjectID string, year int, fileURL string) (*catalog.QuestionPaper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := catalog.QuestionPaper{ID: fmt.Sprintf("paper-%d", len(f.papers)+1), Year: year, FileURL: fileURL, SubjectID: subjectID}
	f.papers = append(f.papers, p)
	return &p, nil
}

// countingStorage wraps a Storage and counts writes.
type countingStorage struct {
	storage.Storage
	puts int
	err  error
}

func (c *countingStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string, overwrite bool) (string, error) {
	c.puts++
	if c.err != nil {
		return "", c.err
	}
	return c.Storage.Put(ctx, key, r, size, contentType, overwrite)
}

func validSubmission() Submission {
	return Submission{
		File:       pdf("data structures 2024"),
		FileName:   "ds.pdf",
		SubjectID:  "subj-cs201",
		Year:       2024,
		BranchSlug: "cse",
		Semester:   2,
	}
}

func newTestService(t *testing.T) (*Service, *fakeCatalog, *countingStorage, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := &countingStorage{Storage: storage.NewFileStorage(fs, "http://files.test")}
	cat := newFakeCatalog()
	return NewService(cat, store, log.New(io.Discard)), cat, store, fs
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Submission)
		message string
	}{
		{"no file", func(s *Submission) { s.File = nil }, "Missing required fields"},
		{"no subject", func(s *Submission) { s.SubjectID = "" }, "Missing required fields"},
		{"no year", func(s *Submission) { s.Year = 0 }, "Missing required fields"},
		{"no branch", func(s *Submission) { s.BranchSlug = "" }, "Missing required fields"},
		{"no semester", func(s *Submission) { s.Semester = 0 }, "Missing required fields"},
		{"year too early", func(s *Submission) { s.Year = 1999 }, "Year must be between 2000 and 2100"},
		{"year too late", func(s *Submission) { s.Year = 2101 }, "Year must be between 2000 and 2100"},
		{"semester out of range", func(s *Submission) { s.Semester = 9 }, "Semester must be between 1 and 8"},
		{"unknown branch", func(s *Submission) { s.BranchSlug = "arts" }, `Unknown branch "arts"`},
		{"not a pdf", func(s *Submission) { s.File = []byte("hello, plain text") }, "File must be a PDF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)
			err := Validate(sub)
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Contains(t, MessageOf(err), tt.message)
		})
	}

	assert.NoError(t, Validate(validSubmission()))
}

func TestUploadValidationFailureDoesNoIO(t *testing.T) {
	svc, cat, store, _ := newTestService(t)

	sub := validSubmission()
	sub.SubjectID = ""
	_, err := svc.Upload(context.Background(), sub)

	require.Error(t, err)
	assert.Equal(t, "Missing required fields", MessageOf(err))
	assert.Zero(t, cat.gets)
	assert.Zero(t, cat.creates)
	assert.Zero(t, store.puts)
}

func TestUploadStoresFileAndRecordsPaper(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := storage.NewFileStorage(fs, "")
	mux := http.NewServeMux()
	mux.Handle("/files/", http.StripPrefix("/files", files.Handler()))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	files = storage.NewFileStorage(fs, srv.URL+"/files")
	cat := newFakeCatalog()
	svc := NewService(cat, files, log.New(io.Discard))

	sub := validSubmission()
	got, err := svc.Upload(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, "cse/sem2/CS201_2024.pdf", got.FilePath)
	assert.Equal(t, 2024, got.Year)
	assert.NotEmpty(t, got.ID)
	assert.NotEmpty(t, got.Size)

	require.Len(t, cat.papers, 1)
	assert.Equal(t, catalog.QuestionPaper{ID: got.ID, Year: 2024, FileURL: "cse/sem2/CS201_2024.pdf", SubjectID: "subj-cs201"}, cat.papers[0])

	resp, err := http.Get(files.Resolve(context.Background(), cat.papers[0].FileURL))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, sub.File, body)
}

func TestUploadTwiceReplacesFileAndAddsRow(t *testing.T) {
	svc, cat, _, fs := newTestService(t)
	ctx := context.Background()

	first := validSubmission()
	_, err := svc.Upload(ctx, first)
	require.NoError(t, err)

	second := validSubmission()
	second.File = pdf("corrected")
	_, err = svc.Upload(ctx, second)
	require.NoError(t, err)

	require.Len(t, cat.papers, 2)
	assert.Equal(t, cat.papers[0].FileURL, cat.papers[1].FileURL)
	assert.NotEqual(t, cat.papers[0].ID, cat.papers[1].ID)

	stored, err := afero.ReadFile(fs, "/cse/sem2/CS201_2024.pdf")
	require.NoError(t, err)
	assert.Equal(t, second.File, stored)
}

func TestUploadUsesSubmittedBranchAndSemesterForPath(t *testing.T) {
	svc, cat, _, fs := newTestService(t)

	sub := validSubmission()
	sub.Semester = 3
	got, err := svc.Upload(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, "cse/sem3/CS201_2024.pdf", got.FilePath)
	assert.Equal(t, "cse/sem3/CS201_2024.pdf", cat.papers[0].FileURL)
	exists, err := afero.Exists(fs, "/cse/sem3/CS201_2024.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUploadUnknownSubject(t *testing.T) {
	svc, cat, store, _ := newTestService(t)

	sub := validSubmission()
	sub.SubjectID = "missing"
	_, err := svc.Upload(context.Background(), sub)

	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Subject not found", MessageOf(err))
	assert.Zero(t, store.puts)
	assert.Zero(t, cat.creates)
}

func TestUploadSubjectLookupFailure(t *testing.T) {
	svc, cat, store, _ := newTestService(t)
	cat.getErr = errBoom

	_, err := svc.Upload(context.Background(), validSubmission())

	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, store.puts)
}

func TestUploadStorageFailure(t *testing.T) {
	svc, cat, store, _ := newTestService(t)
	store.err = errBoom

	_, err := svc.Upload(context.Background(), validSubmission())

	require.Error(t, err)
	assert.Equal(t, KindStorage, KindOf(err))
	assert.True(t, strings.HasPrefix(MessageOf(err), "Upload failed"))
	assert.Zero(t, cat.creates, "no row without a stored file")
}

func TestUploadInsertFailureLeavesObject(t *testing.T) {
	svc, cat, _, fs := newTestService(t)
	cat.createErr = errBoom

	_, err := svc.Upload(context.Background(), validSubmission())

	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "Unknown error occurred", MessageOf(err))
	assert.Empty(t, cat.papers)

	exists, err := afero.Exists(fs, "/cse/sem2/CS201_2024.pdf")
	require.NoError(t, err)
	assert.True(t, exists, "stored object is not rolled back")
}

func TestUploadInsertForeignKeyFailure(t *testing.T) {
	svc, cat, _, _ := newTestService(t)
	cat.createErr = fmt.Errorf("insert paper: %w", catalog.ErrNotFound)

	_, err := svc.Upload(context.Background(), validSubmission())

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestStorageMessage(t *testing.T) {
	assert.Equal(t, "Upload failed: a file already exists at this path",
		storageMessage(fmt.Errorf("put: %w", storage.ErrObjectExists)))
	assert.Equal(t, "Upload failed: invalid storage path", storageMessage(storage.ErrInvalidKey))
	assert.Equal(t, "Upload failed: request cancelled", storageMessage(context.Canceled))
	assert.Equal(t, "Upload failed: storage unavailable", storageMessage(errBoom))
}

func TestMessageOfForeignError(t *testing.T) {
	assert.Equal(t, "Unknown error occurred", MessageOf(errBoom))
	assert.Equal(t, KindInternal, KindOf(errBoom))
}
