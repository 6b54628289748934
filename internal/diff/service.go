package diff

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"attendance-bot-backend/config"
	"attendance-bot-backend/internal/attendance"
	"attendance-bot-backend/internal/calendar"
	"attendance-bot-backend/internal/digest"
	"attendance-bot-backend/internal/notify"
	"attendance-bot-backend/internal/store"
)

// Service runs the periodic snapshot-diff-and-report job.
type Service struct {
	cfg    *config.Config
	cal    calendar.Store
	store  store.Store
	sender notify.Sender
	loc    *time.Location
	now    func() time.Time
}

// NewService creates the job service. The timezone must match the calendar's.
func NewService(cfg *config.Config, cal calendar.Store, st store.Store, sender notify.Sender, loc *time.Location) *Service {
	return &Service{
		cfg:    cfg,
		cal:    cal,
		store:  st,
		sender: sender,
		loc:    loc,
		now:    time.Now,
	}
}

// SetNow overrides the clock. Tests use it to pin the report window.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// Run schedules RunOnce on the configured cron expression, evaluated in the
// calendar timezone, and blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if !s.cfg.Job.Enabled {
		log.Println("Report job is disabled. Not starting.")
		return nil
	}

	c := cron.New(cron.WithLocation(s.loc))
	_, err := c.AddFunc(s.cfg.Job.Schedule, func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("Report run failed: %v", err)
			s.notifyOperator(err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid job schedule %q: %w", s.cfg.Job.Schedule, err)
	}

	log.Printf("Report job scheduled: %q (%s)", s.cfg.Job.Schedule, s.loc)
	c.Start()
	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Println("Report job stopped.")
	return nil
}

// RunOnce executes one diff cycle: snapshot the calendar over the search
// window, diff against the persisted previous snapshot, send a digest when
// anything changed, then persist the new snapshot and advance the last-run
// timestamp. State is persisted even when nothing changed and even when the
// digest could not be sent, so a missed or failed run only widens the next
// lookback to the bounded default instead of losing data.
func (s *Service) RunOnce(ctx context.Context) error {
	now := s.now()
	windowStart, windowEnd := s.searchWindow(ctx, now)

	current, err := s.fetchSnapshot(ctx, windowStart, windowEnd)
	if err != nil {
		return fmt.Errorf("failed to snapshot calendar: %w", err)
	}

	previous, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		log.Printf("Could not load previous snapshot, treating as empty: %v", err)
		previous = map[string]attendance.Event{}
	}

	changes := Compute(previous, current)
	log.Printf("Diff cycle: %d events in window, %d applications, %d cancellations",
		len(current), len(changes.Applications), len(changes.Cancellations))

	if changes.HasChanges {
		if err := s.sendDigest(changes, now); err != nil {
			// Best effort: the snapshot still advances below so the same
			// changes are not re-reported forever.
			log.Printf("Failed to send digest: %v", err)
		}
	}

	if err := s.store.SaveSnapshot(ctx, current); err != nil {
		log.Printf("Failed to persist snapshot: %v", err)
	}
	if err := s.store.SetLastRun(ctx, now); err != nil {
		log.Printf("Failed to persist last-run time: %v", err)
	}

	return nil
}

// searchWindow is [last run (or now - default lookback), now + forward days].
func (s *Service) searchWindow(ctx context.Context, now time.Time) (time.Time, time.Time) {
	start := now.AddDate(0, 0, -s.cfg.Calendar.SearchDaysBack)
	if lastRun, ok, err := s.store.LastRun(ctx); err != nil {
		log.Printf("Could not read last-run time, using default lookback: %v", err)
	} else if ok {
		start = lastRun
	}

	end := now.AddDate(0, 0, s.cfg.Calendar.SearchDaysForward)
	return start, end
}

// fetchSnapshot lists the window and keeps only attendance events, keyed by
// event id.
func (s *Service) fetchSnapshot(ctx context.Context, start, end time.Time) (map[string]attendance.Event, error) {
	raw, err := s.cal.List(ctx, start, end)
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]attendance.Event)
	for _, r := range raw {
		if ev, ok := attendance.Classify(r); ok {
			snapshot[ev.ID] = ev
		}
	}
	return snapshot, nil
}

func (s *Service) sendDigest(changes ChangeSet, now time.Time) error {
	byPerson := digest.Aggregate(changes.Applications, changes.Cancellations, s.loc)
	subject := digest.Subject(s.cfg.Mail.SubjectPrefix, now.In(s.loc))
	body := digest.Body(byPerson, s.cfg.Calendar.ID)
	return s.sender.Send(s.cfg.Mail.To, subject, body)
}

// notifyOperator mails the admin address about a failed run. Failures here
// are only logged.
func (s *Service) notifyOperator(runErr error) {
	if s.cfg.Mail.AdminTo == "" {
		return
	}

	subject := s.cfg.Mail.SubjectPrefix + " エラー通知 - ATTENDANCE_REPORT"
	body := fmt.Sprintf(`休暇管理システムでエラーが発生しました。

【エラー詳細】
タイプ: ATTENDANCE_REPORT
エラー: %v
発生時刻: %s

---
このメールは休暇管理システムにより自動送信されています。`,
		runErr, s.now().In(s.loc).Format("2006/01/02 15:04:05"))

	if err := s.sender.Send(s.cfg.Mail.AdminTo, subject, body); err != nil {
		log.Printf("Failed to send operator notification: %v", err)
	}
}
