package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles all catalog database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListBranches returns every branch ordered by name.
func (r *Repository) ListBranches(ctx context.Context) ([]Branch, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM branches ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	var out []Branch
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetBranchBySlug fetches a branch by its slug.
func (r *Repository) GetBranchBySlug(ctx context.Context, slug string) (*Branch, error) {
	b := &Branch{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, slug FROM branches WHERE slug = $1`,
		slug,
	).Scan(&b.ID, &b.Name, &b.Slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get branch by slug: %w", err)
	}
	return b, nil
}

// ListSubjects returns the subjects of a branch in one semester, ordered by code.
func (r *Repository) ListSubjects(ctx context.Context, branchSlug string, semester int) ([]Subject, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, s.code, s.semester, s.branch_id
		 FROM subjects s
		 JOIN branches b ON b.id = s.branch_id
		 WHERE b.slug = $1 AND s.semester = $2
		 ORDER BY s.code ASC`,
		branchSlug, semester,
	)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()
	return scanSubjects(rows)
}

// FindSubject looks up a subject by branch slug, semester and a
// case-insensitive code match.
func (r *Repository) FindSubject(ctx context.Context, branchSlug string, semester int, code string) (*Subject, error) {
	s := &Subject{}
	err := r.db.QueryRow(ctx,
		`SELECT s.id, s.name, s.code, s.semester, s.branch_id
		 FROM subjects s
		 JOIN branches b ON b.id = s.branch_id
		 WHERE b.slug = $1 AND s.semester = $2 AND LOWER(s.code) = LOWER($3)
		 ORDER BY s.code ASC
		 LIMIT 1`,
		branchSlug, semester, code,
	).Scan(&s.ID, &s.Name, &s.Code, &s.Semester, &s.BranchID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return s, nil
}

// GetSubject fetches a subject by id.
func (r *Repository) GetSubject(ctx context.Context, id string) (*Subject, error) {
	s := &Subject{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code, semester, branch_id FROM subjects WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Name, &s.Code, &s.Semester, &s.BranchID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	return s, nil
}

// ListPapers returns the papers of a subject, newest year first.
func (r *Repository) ListPapers(ctx context.Context, subjectID string) ([]QuestionPaper, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, year, file_url, subject_id, created_at
		 FROM question_papers
		 WHERE subject_id = $1
		 ORDER BY year DESC, created_at DESC, id ASC`,
		subjectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	defer rows.Close()

	var out []QuestionPaper
	for rows.Next() {
		var p QuestionPaper
		if err := rows.Scan(&p.ID, &p.Year, &p.FileURL, &p.SubjectID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan paper: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListBranchesWithSubjects returns branches by name, each carrying its
// subjects ordered by semester then code.
func (r *Repository) ListBranchesWithSubjects(ctx context.Context) ([]BranchWithSubjects, error) {
	branches, err := r.ListBranches(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, code, semester, branch_id
		 FROM subjects
		 ORDER BY semester ASC, code ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list all subjects: %w", err)
	}
	defer rows.Close()

	subjects, err := scanSubjects(rows)
	if err != nil {
		return nil, err
	}
	return groupSubjects(branches, subjects), nil
}

// CreatePaper inserts a question paper with a freshly generated id.
// A missing subject is reported as ErrNotFound.
func (r *Repository) CreatePaper(ctx context.Context, subjectID string, year int, fileURL string) (*QuestionPaper, error) {
	p := &QuestionPaper{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO question_papers (id, year, file_url, subject_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, year, file_url, subject_id, created_at`,
		uuid.NewString(), year, fileURL, subjectID,
	).Scan(&p.ID, &p.Year, &p.FileURL, &p.SubjectID, &p.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("create paper: %w", err)
	}
	return p, nil
}

// UpsertBranch inserts a branch keyed by slug; an existing row is returned unchanged.
func (r *Repository) UpsertBranch(ctx context.Context, name, slug string) (*Branch, error) {
	b := &Branch{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO branches (id, name, slug)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		 RETURNING id, name, slug`,
		uuid.NewString(), name, slug,
	).Scan(&b.ID, &b.Name, &b.Slug)
	if err != nil {
		return nil, fmt.Errorf("upsert branch %q: %w", slug, err)
	}
	return b, nil
}

// UpsertSubject inserts a subject keyed by (code, branch); an existing row is returned unchanged.
func (r *Repository) UpsertSubject(ctx context.Context, name, code string, semester int, branchID string) (*Subject, error) {
	s := &Subject{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO subjects (id, name, code, semester, branch_id)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT ON CONSTRAINT subjects_code_branch_id_key DO UPDATE SET code = EXCLUDED.code
		 RETURNING id, name, code, semester, branch_id`,
		uuid.NewString(), name, code, semester, branchID,
	).Scan(&s.ID, &s.Name, &s.Code, &s.Semester, &s.BranchID)
	if err != nil {
		return nil, fmt.Errorf("upsert subject %q: %w", code, err)
	}
	return s, nil
}

// UpsertPaper inserts a paper with a caller-chosen id; an existing row is returned unchanged.
func (r *Repository) UpsertPaper(ctx context.Context, id string, year int, fileURL, subjectID string) (*QuestionPaper, error) {
	p := &QuestionPaper{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO question_papers (id, year, file_url, subject_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		 RETURNING id, year, file_url, subject_id, created_at`,
		id, year, fileURL, subjectID,
	).Scan(&p.ID, &p.Year, &p.FileURL, &p.SubjectID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert paper %q: %w", id, err)
	}
	return p, nil
}

func scanSubjects(rows pgx.Rows) ([]Subject, error) {
	var out []Subject
	for rows.Next() {
		var s Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Semester, &s.BranchID); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// groupSubjects attaches subjects to their branches, keeping both orders.
func groupSubjects(branches []Branch, subjects []Subject) []BranchWithSubjects {
	out := make([]BranchWithSubjects, len(branches))
	index := make(map[string]int, len(branches))
	for i, b := range branches {
		out[i] = BranchWithSubjects{Branch: b, Subjects: []Subject{}}
		index[b.ID] = i
	}
	for _, s := range subjects {
		if i, ok := index[s.BranchID]; ok {
			out[i].Subjects = append(out[i].Subjects, s)
		}
	}
	return out
}

// isForeignKeyViolation checks whether an error is a PostgreSQL foreign_key_violation (code 23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
