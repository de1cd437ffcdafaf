package domain

import "time"

// Proposal models a submitted project proposal with its uploaded PDF.
type Proposal struct {
	ID          string
	Title       string
	Company     string
	Description string
	StorageKey  string
	FileName    string
	SizeBytes   int64
	CreatedAt   time.Time
}
