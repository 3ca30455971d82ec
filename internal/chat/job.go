package chat

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// SearchJob is one queued search for the async send path. The worker runs
// the search and appends the AI message to the visitor's then-current
// session.
type SearchJob struct {
	ID string `gorm:"primaryKey;size:26"` // ULID length

	VisitorID string `gorm:"size:26;index;not null"`
	Query     string `gorm:"type:text;not null"`

	Status JobStatus `gorm:"type:varchar(16);index;not null"`

	// Filled when succeeded
	ResultMessageID *int `gorm:"index"`

	// Filled when failed
	Error *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SearchJob) TableName() string { return "search_jobs" }
