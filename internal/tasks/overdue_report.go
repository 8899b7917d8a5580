package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/stacks/internal/database/catalog"
	"github.com/mrlokans/stacks/internal/entities"
)

const OverdueReportQueue = "overdue_report"

type OverdueLister interface {
	OverdueBorrows(asOf time.Time) ([]catalog.OverdueBorrow, error)
}

// OverdueReportTask logs every loan due before AsOf (YYYY-MM-DD).
// An empty AsOf means the day the task runs.
type OverdueReportTask struct {
	AsOf string `json:"as_of"`
}

func (t OverdueReportTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        OverdueReportQueue,
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration: 7 * 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// OverdueReport is what one run found.
type OverdueReport struct {
	AsOf    string
	Overdue []catalog.OverdueBorrow
}

// BuildOverdueReport resolves the report date and lists the overdue loans.
func BuildOverdueReport(lister OverdueLister, task OverdueReportTask, now time.Time) (*OverdueReport, error) {
	asOf := now.UTC()
	if task.AsOf != "" {
		parsed, err := time.Parse(entities.DateLayout, task.AsOf)
		if err != nil {
			return nil, fmt.Errorf("invalid report date %q: %w", task.AsOf, err)
		}
		asOf = parsed
	}

	overdue, err := lister.OverdueBorrows(asOf)
	if err != nil {
		return nil, fmt.Errorf("list overdue borrows: %w", err)
	}
	return &OverdueReport{AsOf: entities.Today(asOf), Overdue: overdue}, nil
}

func OverdueReportProcessor(lister OverdueLister) backlite.QueueProcessor[OverdueReportTask] {
	return func(ctx context.Context, task OverdueReportTask) error {
		report, err := BuildOverdueReport(lister, task, time.Now())
		if err != nil {
			return err
		}

		for _, o := range report.Overdue {
			log.Printf("[TASK] Overdue: borrow %d, student %s, %q due %s", o.BorrowID, o.StudentID, o.Title, o.DateOfReturn)
		}
		log.Printf("[TASK] Overdue report for %s: %d overdue loans", report.AsOf, len(report.Overdue))
		return nil
	}
}

func NewOverdueReportQueue(lister OverdueLister) backlite.Queue {
	return backlite.NewQueue(OverdueReportProcessor(lister))
}
