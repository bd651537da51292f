package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"taskflow/internal/models/board"
)

const dayKeyLayout = "2006-01-02"

func dayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// ParseDayKey parses a "YYYY-MM-DD" day key in local time.
func ParseDayKey(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dayKeyLayout, s, time.Local)
	if err != nil {
		return time.Time{}, NewValidationError("date", "expected YYYY-MM-DD")
	}
	return t, nil
}

// DayBounds returns [midnight, next midnight) for the day containing t. The
// exclusive upper bound makes a log running over midnight contribute exactly
// up to 24:00 to the first day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// StartOfWeekISO returns the Monday midnight opening the ISO week of t.
func StartOfWeekISO(t time.Time) time.Time {
	start, _ := DayBounds(t)
	weekday := int(start.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return start.AddDate(0, 0, 1-weekday)
}

// ISOWeekNumber is the ISO-8601 week number (Thursday-anchored) of t.
func ISOWeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// ReportRow is one clipped time slice inside a reporting day.
type ReportRow struct {
	LogID     int64         `json:"logId"`
	TaskID    int64         `json:"taskId"`
	Title     string        `json:"title"`
	ProjectID string        `json:"projectId"`
	From      time.Time     `json:"from"`
	To        time.Time     `json:"to"`
	Duration  time.Duration `json:"duration"`
}

type DayReport struct {
	DayStart  time.Time                `json:"dayStart"`
	Rows      []ReportRow              `json:"rows"`
	Total     time.Duration            `json:"total"`
	ByTask    map[int64]time.Duration  `json:"byTask"`
	ByProject map[string]time.Duration `json:"byProject"`
}

type WeekReport struct {
	WeekStart  time.Time     `json:"weekStart"`
	WeekNumber int           `json:"weekNumber"`
	Days       []DayReport   `json:"days"`
	Total      time.Duration `json:"total"`
}

// AggregateDay builds one reporting day out of the raw logs: every log
// overlapping [dayStart, dayEnd) contributes its clipped slice as one row,
// ordered by clipped start ascending.
func AggregateDay(logs []*board.TimeLog, tasks map[int64]*board.Task, dayStart, dayEnd, now time.Time) DayReport {
	rep := DayReport{
		DayStart:  dayStart,
		Rows:      []ReportRow{},
		ByTask:    map[int64]time.Duration{},
		ByProject: map[string]time.Duration{},
	}
	for _, l := range logs {
		dur := ElapsedOnDay(l, dayStart, dayEnd, now)
		if dur <= 0 {
			continue
		}
		from := l.Start
		if from.Before(dayStart) {
			from = dayStart
		}
		row := ReportRow{
			LogID:    l.ID,
			TaskID:   l.TaskID,
			From:     from,
			To:       from.Add(dur),
			Duration: dur,
		}
		if t, ok := tasks[l.TaskID]; ok {
			row.Title = t.Title
			row.ProjectID = t.ProjectID
		}
		rep.Rows = append(rep.Rows, row)
		rep.Total += dur
		rep.ByTask[row.TaskID] += dur
		rep.ByProject[row.ProjectID] += dur
	}
	sort.SliceStable(rep.Rows, func(i, j int) bool {
		return rep.Rows[i].From.Before(rep.Rows[j].From)
	})
	return rep
}

// AggregateWeek builds seven day reports starting at the Monday weekStart.
func AggregateWeek(logs []*board.TimeLog, tasks map[int64]*board.Task, weekStart, now time.Time) WeekReport {
	rep := WeekReport{
		WeekStart:  weekStart,
		WeekNumber: ISOWeekNumber(weekStart),
		Days:       make([]DayReport, 0, 7),
	}
	for i := 0; i < 7; i++ {
		dayStart, dayEnd := DayBounds(weekStart.AddDate(0, 0, i))
		day := AggregateDay(logs, tasks, dayStart, dayEnd, now)
		rep.Days = append(rep.Days, day)
		rep.Total += day.Total
	}
	return rep
}

func (s *TaskService) taskIndex(ctx context.Context) (map[int64]*board.Task, error) {
	tasks, err := s.store.Tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	byID := make(map[int64]*board.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return byID, nil
}

// DayReport aggregates the given calendar day ("YYYY-MM-DD").
func (s *TaskService) DayReport(ctx context.Context, day string) (DayReport, error) {
	anchor, err := ParseDayKey(day)
	if err != nil {
		return DayReport{}, err
	}
	logs, err := s.store.TimeLogs.List(ctx)
	if err != nil {
		return DayReport{}, fmt.Errorf("listing time logs: %w", err)
	}
	tasks, err := s.taskIndex(ctx)
	if err != nil {
		return DayReport{}, err
	}
	dayStart, dayEnd := DayBounds(anchor)
	return AggregateDay(logs, tasks, dayStart, dayEnd, s.now()), nil
}

// WeekReport aggregates the ISO week containing the given day.
func (s *TaskService) WeekReport(ctx context.Context, day string) (WeekReport, error) {
	anchor, err := ParseDayKey(day)
	if err != nil {
		return WeekReport{}, err
	}
	logs, err := s.store.TimeLogs.List(ctx)
	if err != nil {
		return WeekReport{}, fmt.Errorf("listing time logs: %w", err)
	}
	tasks, err := s.taskIndex(ctx)
	if err != nil {
		return WeekReport{}, err
	}
	return AggregateWeek(logs, tasks, StartOfWeekISO(anchor), s.now()), nil
}
