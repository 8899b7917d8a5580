// Package scheduler runs periodic jobs on cron schedules.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/stacks/internal/tasks"
)

// Enqueuer accepts tasks; *tasks.Client satisfies it.
type Enqueuer interface {
	Add(tasks ...backlite.Task) *backlite.TaskAddOp
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// OverdueReportScheduler enqueues an overdue report on a cron schedule.
type OverdueReportScheduler struct {
	queue    Enqueuer
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewOverdueReportScheduler(queue Enqueuer, schedule string) *OverdueReportScheduler {
	return &OverdueReportScheduler{
		queue:    queue,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

func (s *OverdueReportScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(); err != nil {
			log.Printf("Overdue report scheduler: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule overdue report: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Overdue report scheduler: started with schedule '%s'. Next run: %v", s.schedule, s.cron.Entry(entryID).Next)
	return nil
}

// Stop waits for a running job to finish.
func (s *OverdueReportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Printf("Overdue report scheduler: stopped")
}

// RunNow enqueues a report for today and returns the task ID.
func (s *OverdueReportScheduler) RunNow() (string, error) {
	ids, err := s.queue.Add(tasks.OverdueReportTask{}).Save()
	if err != nil {
		return "", fmt.Errorf("enqueue overdue report: %w", err)
	}
	return ids[0], nil
}

func (s *OverdueReportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime is nil while the scheduler is stopped.
func (s *OverdueReportScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}
