package catalog

import "fmt"

// PaperPath builds the storage path of a question paper PDF:
// "{branchSlug}/sem{semester}/{subjectCode}_{year}.pdf".
// Seeding, uploads and the viewer all go through this function, and
// existing objects in the bucket depend on the exact shape.
func PaperPath(branchSlug string, semester int, subjectCode string, year int) string {
	return fmt.Sprintf("%s/sem%d/%s", branchSlug, semester, PaperFileName(subjectCode, year))
}

// PaperFileName is the download name of a paper, "{subjectCode}_{year}.pdf".
func PaperFileName(subjectCode string, year int) string {
	return fmt.Sprintf("%s_%d.pdf", subjectCode, year)
}

// SeedPaperID is the deterministic id given to seeded papers.
func SeedPaperID(subjectID string, year int) string {
	return fmt.Sprintf("%s_%d", subjectID, year)
}
