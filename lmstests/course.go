package lmstests

import (
	"embed"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const uniqueIDLength = 8

// CourseInfo identifies a course to create for a test.
type CourseInfo struct {
	Org         string
	Number      string
	Run         string
	DisplayName string
	UniqueID    string
}

// ID is the LMS course ID.
func (c CourseInfo) ID() string {
	return c.Org + "/" + c.Number + "/" + c.Run
}

// NewUniqueCourse returns course identifiers that no other test uses, since Studio refuses to
// create a course that already exists.
func NewUniqueCourse() CourseInfo {
	id := NewUniqueID()
	return CourseInfo{
		Org:         "test_org",
		Number:      id,
		Run:         "test_run",
		DisplayName: "Test Course " + id,
		UniqueID:    id,
	}
}

// NewUniqueID returns a random string of lowercase hex digits.
func NewUniqueID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:uniqueIDLength]
}

//go:embed data/*.xml
var dataFiles embed.FS

// LoadData returns the contents of a file in the data directory, such as problem markup.
func LoadData(name string) (string, error) {
	data, err := dataFiles.ReadFile("data/" + name)
	if err != nil {
		return "", fmt.Errorf("no data file %q: %w", name, err)
	}
	return string(data), nil
}
