package domain

import "time"

const (
	DefaultProjectColor = "#3498db"
	// ArchiveGracePeriod is how long a completed project stays in active
	// listings before it only shows up in the archive.
	ArchiveGracePeriod = 48 * time.Hour
)

type Project struct {
	ID          uint64
	Name        string
	Description string
	Color       string
	CreatedBy   uint64
	Archived    bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// Reconcile applies the auto-completion rule for the given task counts and
// reports whether the project changed. The completion timestamp is only set
// once while the project stays fully done.
func (p *Project) Reconcile(counts TaskCounts, now time.Time) bool {
	if counts.Total > 0 && counts.Total == counts.Done {
		if p.CompletedAt != nil {
			return false
		}
		completedAt := now
		p.CompletedAt = &completedAt
		p.Archived = true
		return true
	}

	if !p.Archived {
		return false
	}
	p.Archived = false
	p.CompletedAt = nil
	return true
}

// Restore brings the project back to active regardless of its tasks.
func (p *Project) Restore() {
	p.Archived = false
	p.CompletedAt = nil
}

// VisibleInActiveViews reports whether the project is still listed among
// active projects at now.
func (p Project) VisibleInActiveViews(now time.Time) bool {
	if !p.Archived || p.CompletedAt == nil {
		return true
	}
	return p.CompletedAt.After(now.Add(-ArchiveGracePeriod))
}

// InArchive reports whether the project moved past the grace window.
func (p Project) InArchive(now time.Time) bool {
	return !p.VisibleInActiveViews(now)
}

type ProjectSummary struct {
	Project
	TaskCount   int
	DoneCount   int
	FileCount   int
	CreatorName string
}

type ProjectInput struct {
	Name        string
	Description string
	Color       string
}

type ProjectListing struct {
	Active   []ProjectSummary
	Archived []ProjectSummary
}
