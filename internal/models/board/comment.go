package board

import "time"

// CommentAnchor says what a comment is attached to: a task or a calendar day.
// Exactly one side is set.
type CommentAnchor struct {
	TaskID int64  `json:"taskId,omitempty"`
	Day    string `json:"day,omitempty"`
}

func TaskAnchor(taskID int64) CommentAnchor {
	return CommentAnchor{TaskID: taskID}
}

func DayAnchor(day string) CommentAnchor {
	return CommentAnchor{Day: day}
}

func (a CommentAnchor) IsDay() bool {
	return a.Day != ""
}

type Comment struct {
	ID     int64         `json:"id" db:"id"`
	Anchor CommentAnchor `json:"anchor"`
	Text   string        `json:"text" db:"text"`
	At     time.Time     `json:"at" db:"at"`
	Author string        `json:"author" db:"author"`
	Pinned bool          `json:"pinned" db:"pinned"`
}

func (c *Comment) Clone() *Comment {
	v := *c
	return &v
}
