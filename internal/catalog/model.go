// Package catalog holds the branch, subject and question paper catalog:
// its records, the static branch reference data, persistence and the
// browsing views built on top of them.
package catalog

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a branch, semester, subject or paper does not exist.
var ErrNotFound = errors.New("not found")

// Branch is an engineering discipline such as Computer Science.
type Branch struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Subject is a course taught in a branch during one semester.
type Subject struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Semester int    `json:"semester"`
	BranchID string `json:"branchId"`
}

// QuestionPaper is a past exam of a subject for one year. FileURL is the
// object storage path, not a fetchable URL.
type QuestionPaper struct {
	ID        string    `json:"id"`
	Year      int       `json:"year"`
	FileURL   string    `json:"fileUrl"`
	SubjectID string    `json:"subjectId"`
	CreatedAt time.Time `json:"createdAt"`
}

// BranchWithSubjects is a branch together with all of its subjects,
// ordered by semester then code.
type BranchWithSubjects struct {
	Branch
	Subjects []Subject `json:"subjects"`
}
