package board

import "time"

// TimeLog is one tracked work interval. End == nil means the timer is still
// running; a task may have at most one such open interval.
type TimeLog struct {
	ID     int64      `json:"id" db:"id"`
	TaskID int64      `json:"taskId" db:"task_id"`
	Start  time.Time  `json:"start" db:"start_at"`
	End    *time.Time `json:"end,omitempty" db:"end_at"`
}

func (l *TimeLog) IsOpen() bool {
	return l.End == nil
}

func (l *TimeLog) Clone() *TimeLog {
	c := *l
	if l.End != nil {
		v := *l.End
		c.End = &v
	}
	return &c
}
