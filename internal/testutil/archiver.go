package testutil

import (
	"fmt"

	"cback/internal/backup"
)

// CaptureArchiver records archive requests instead of writing anything.
type CaptureArchiver struct {
	// Destination and Files hold the last Archive call's arguments.
	Destination string
	Files       []string
	Calls       int

	// FailWith, when set, makes Archive fail.
	FailWith error
}

func NewCaptureArchiver() *CaptureArchiver { return &CaptureArchiver{} }

func (a *CaptureArchiver) Archive(destination string, files []string) error {
	a.Calls++
	if a.FailWith != nil {
		return a.FailWith
	}
	a.Destination = destination
	a.Files = append([]string(nil), files...)
	return nil
}

func (a *CaptureArchiver) Describe(destination string, files []string) string {
	return fmt.Sprintf("capture %s (%d files)", destination, len(files))
}

// Compile-time check
var _ backup.Archiver = (*CaptureArchiver)(nil)
