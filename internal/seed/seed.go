// Package seed loads the fixture catalog: every branch plus a sample of
// subjects with placeholder papers. Seeding is idempotent; rows that already
// exist are left unchanged.
package seed

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/papervault/portal/internal/catalog"
)

// Store is the write side of the catalog used for seeding.
type Store interface {
	UpsertBranch(ctx context.Context, name, slug string) (*catalog.Branch, error)
	UpsertSubject(ctx context.Context, name, code string, semester int, branchID string) (*catalog.Subject, error)
	UpsertPaper(ctx context.Context, id string, year int, fileURL, subjectID string) (*catalog.QuestionPaper, error)
}

// Subject is a fixture subject and the exam years to create papers for.
type Subject struct {
	Name       string
	Code       string
	Semester   int
	BranchSlug string
	Years      []int
}

var (
	fullYears   = []int{2020, 2021, 2022, 2023, 2024}
	recentYears = []int{2023, 2024}
)

// Subjects is the fixture subject list.
var Subjects = []Subject{
	{"Engineering Mathematics - I", "MATH101", 1, "cse", fullYears},
	{"Engineering Physics", "PHY101", 1, "cse", fullYears},
	{"Programming for Problem Solving", "CS101", 1, "cse", fullYears},
	{"Engineering Graphics", "ME101", 1, "cse", fullYears},
	{"Engineering Mathematics - II", "MATH102", 2, "cse", fullYears},
	{"Data Structures", "CS201", 2, "cse", fullYears},
	{"Digital Logic Design", "CS202", 2, "cse", fullYears},
	{"Engineering Chemistry", "CHEM101", 2, "cse", fullYears},

	{"Electronic Devices", "EC101", 1, "ece", recentYears},
	{"Network Analysis", "EC102", 1, "ece", recentYears},
	{"Engineering Mechanics", "ME201", 1, "me", recentYears},
	{"Thermodynamics", "ME202", 1, "me", recentYears},
	{"Engineering Mechanics", "CE101", 1, "ce", recentYears},
	{"Surveying", "CE102", 1, "ce", recentYears},
	{"Electrical Circuits", "EE101", 1, "eee", recentYears},
	{"Electromagnetic Theory", "EE102", 1, "eee", recentYears},
}

// Summary counts what a Run touched.
type Summary struct {
	Branches int
	Subjects int
	Papers   int
}

// Run upserts every reference branch, then each fixture subject and its
// papers. Paper ids are "{subjectId}_{year}" and paths come from
// catalog.PaperPath; the referenced objects need not exist in storage.
func Run(ctx context.Context, store Store, logger *log.Logger) (Summary, error) {
	var sum Summary
	logger.Info("seed: starting")

	branchIDs := make(map[string]string)
	for _, info := range catalog.Branches() {
		b, err := store.UpsertBranch(ctx, info.Name, info.Slug)
		if err != nil {
			return sum, fmt.Errorf("seed branch %s: %w", info.Slug, err)
		}
		branchIDs[b.Slug] = b.ID
		sum.Branches++
	}
	logger.Info("seed: branches ready", "count", sum.Branches)

	for _, fx := range Subjects {
		branchID, ok := branchIDs[fx.BranchSlug]
		if !ok {
			logger.Warn("seed: skipping subject of unknown branch", "code", fx.Code, "branch", fx.BranchSlug)
			continue
		}
		subject, err := store.UpsertSubject(ctx, fx.Name, fx.Code, fx.Semester, branchID)
		if err != nil {
			return sum, fmt.Errorf("seed subject %s: %w", fx.Code, err)
		}
		sum.Subjects++

		for _, year := range fx.Years {
			path := catalog.PaperPath(fx.BranchSlug, fx.Semester, fx.Code, year)
			if _, err := store.UpsertPaper(ctx, catalog.SeedPaperID(subject.ID, year), year, path, subject.ID); err != nil {
				return sum, fmt.Errorf("seed paper %s %d: %w", fx.Code, year, err)
			}
			sum.Papers++
		}
		logger.Debug("seed: subject ready", "code", fx.Code, "papers", len(fx.Years))
	}

	logger.Info("seed: completed", "branches", sum.Branches, "subjects", sum.Subjects, "papers", sum.Papers)
	return sum, nil
}
