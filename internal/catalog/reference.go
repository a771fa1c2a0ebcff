package catalog

import "strconv"

// Semester bounds shared by every branch.
const (
	MinSemester = 1
	MaxSemester = 8
)

// BranchInfo is the static description of a branch used for navigation and styling.
type BranchInfo struct {
	Name       string `json:"name"`
	ShortName  string `json:"shortName"`
	Slug       string `json:"slug"`
	Color      string `json:"color"`
	HoverColor string `json:"hoverColor"`
	LightColor string `json:"lightColor"`
	TextColor  string `json:"textColor"`
}

var branchInfos = []BranchInfo{
	{
		Name:       "Computer Science Engineering",
		ShortName:  "CSE",
		Slug:       "cse",
		Color:      "bg-blue-500",
		HoverColor: "hover:bg-blue-600",
		LightColor: "bg-blue-100",
		TextColor:  "text-blue-700",
	},
	{
		Name:       "Electronics & Communication Engineering",
		ShortName:  "ECE",
		Slug:       "ece",
		Color:      "bg-purple-500",
		HoverColor: "hover:bg-purple-600",
		LightColor: "bg-purple-100",
		TextColor:  "text-purple-700",
	},
	{
		Name:       "Electrical & Electronics Engineering",
		ShortName:  "EEE",
		Slug:       "eee",
		Color:      "bg-yellow-500",
		HoverColor: "hover:bg-yellow-600",
		LightColor: "bg-yellow-100",
		TextColor:  "text-yellow-700",
	},
	{
		Name:       "Mechanical Engineering",
		ShortName:  "ME",
		Slug:       "me",
		Color:      "bg-red-500",
		HoverColor: "hover:bg-red-600",
		LightColor: "bg-red-100",
		TextColor:  "text-red-700",
	},
	{
		Name:       "Civil Engineering",
		ShortName:  "CE",
		Slug:       "ce",
		Color:      "bg-green-500",
		HoverColor: "hover:bg-green-600",
		LightColor: "bg-green-100",
		TextColor:  "text-green-700",
	},
	{
		Name:       "Information Technology",
		ShortName:  "IT",
		Slug:       "it",
		Color:      "bg-indigo-500",
		HoverColor: "hover:bg-indigo-600",
		LightColor: "bg-indigo-100",
		TextColor:  "text-indigo-700",
	},
	{
		Name:       "Chemical Engineering",
		ShortName:  "ChemE",
		Slug:       "che",
		Color:      "bg-orange-500",
		HoverColor: "hover:bg-orange-600",
		LightColor: "bg-orange-100",
		TextColor:  "text-orange-700",
	},
	{
		Name:       "Biotechnology Engineering",
		ShortName:  "BioTech",
		Slug:       "biotech",
		Color:      "bg-teal-500",
		HoverColor: "hover:bg-teal-600",
		LightColor: "bg-teal-100",
		TextColor:  "text-teal-700",
	},
}

// Branches returns the static branch list in display order.
func Branches() []BranchInfo {
	out := make([]BranchInfo, len(branchInfos))
	copy(out, branchInfos)
	return out
}

// LookupBranch finds a branch by its exact slug.
func LookupBranch(slug string) (BranchInfo, bool) {
	for _, b := range branchInfos {
		if b.Slug == slug {
			return b, true
		}
	}
	return BranchInfo{}, false
}

// Semesters returns 1 through 8.
func Semesters() []int {
	out := make([]int, 0, MaxSemester-MinSemester+1)
	for s := MinSemester; s <= MaxSemester; s++ {
		out = append(out, s)
	}
	return out
}

// ValidSemester reports whether n is within 1..8.
func ValidSemester(n int) bool {
	return n >= MinSemester && n <= MaxSemester
}

// ParseSemester parses a URL path segment into a semester number.
// Non-numeric input and numbers outside 1..8 are rejected.
func ParseSemester(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || !ValidSemester(n) {
		return 0, false
	}
	return n, true
}
