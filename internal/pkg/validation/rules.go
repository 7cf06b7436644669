package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Student identifier pattern - e.g. STU2024001
	StudentIDPattern = `^[A-Z]{2,4}\d{4,10}$`

	// Faculty identifier pattern - e.g. FAC2024001
	FacultyIDPattern = `^[A-Z]{2,4}\d{4,10}$`

	// Slot labels are single letters A-F
	SlotPattern = `^[A-F]$`
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	StudentID *regexp.Regexp
	FacultyID *regexp.Regexp
	Slot      *regexp.Regexp
}{
	StudentID: regexp.MustCompile(StudentIDPattern),
	FacultyID: regexp.MustCompile(FacultyIDPattern),
	Slot:      regexp.MustCompile(SlotPattern),
}

// IsValidSlot reports whether the label is a known timetable slot.
func IsValidSlot(slot string) bool {
	return CompiledPatterns.Slot.MatchString(slot)
}

// IsValidStudentID reports whether the identifier matches the campus format.
func IsValidStudentID(id string) bool {
	return CompiledPatterns.StudentID.MatchString(id)
}

// IsValidFacultyID reports whether the identifier matches the campus format.
func IsValidFacultyID(id string) bool {
	return CompiledPatterns.FacultyID.MatchString(id)
}
