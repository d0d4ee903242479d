package domain

import (
	"fmt"
	"time"
)

// ThresholdError reports size thresholds that are not strictly ascending.
// This is a configuration fault, surfaced before any PR batch is processed.
type ThresholdError struct {
	Small, Medium, Large int
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("size thresholds must be in ascending order, got small=%d medium=%d large=%d",
		e.Small, e.Medium, e.Large)
}

// RecordError flags a pull request whose update timestamp precedes its
// creation timestamp. The record is skipped; one bad record does not
// invalidate the rest of the batch.
type RecordError struct {
	Repo      string
	Number    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s#%d: updated_at %s precedes created_at %s",
		e.Repo, e.Number,
		e.UpdatedAt.Format(time.RFC3339), e.CreatedAt.Format(time.RFC3339))
}
