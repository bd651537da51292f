package board

import "encoding/json"

// Setting keys used by the core. Values are stored as JSON documents in the
// settings collection.
const SettingStatuses = "statuses"
const SettingProjects = "projects"
const SettingHiddenColumns = "hiddenColumns"
const SettingShowToday = "showToday"

type StatusDef struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// SettingRecord is one raw key/value row of the settings collection, used by
// export/import.
type SettingRecord struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

const DefaultProjectID = "default"

func DefaultStatuses() []StatusDef {
	return []StatusDef{
		{Key: "Backlog", Color: "#94a3b8"},
		{Key: "Todo", Color: "#38bdf8"},
		{Key: "In Progress", Color: "#f59e0b"},
		{Key: "Review", Color: "#a78bfa"},
		{Key: "Blocked", Color: "#ef4444"},
		{Key: "Done", Color: "#22c55e"},
	}
}

func DefaultProjects() []Project {
	return []Project{{ID: DefaultProjectID, Name: "Default", Color: "#0ea5e9"}}
}

// Snapshot is an immutable view of the mutable board configuration. Engines
// receive it as an explicit argument instead of reading settings ad hoc.
type Snapshot struct {
	Statuses      []StatusDef `json:"statuses"`
	Projects      []Project   `json:"projects"`
	HiddenColumns []string    `json:"hiddenColumns"`
	ShowToday     bool        `json:"showToday"`
}

func (s Snapshot) HasStatus(key string) bool {
	for _, def := range s.Statuses {
		if def.Key == key {
			return true
		}
	}
	return false
}

func (s Snapshot) StatusColor(key string) string {
	for _, def := range s.Statuses {
		if def.Key == key {
			return def.Color
		}
	}
	return ""
}

// FirstStatus returns the default column for new tasks.
func (s Snapshot) FirstStatus() string {
	if len(s.Statuses) == 0 {
		return ""
	}
	return s.Statuses[0].Key
}

// TerminalStatus is the last status of the configured list; entering it stops
// any running timer.
func (s Snapshot) TerminalStatus() string {
	if len(s.Statuses) == 0 {
		return ""
	}
	return s.Statuses[len(s.Statuses)-1].Key
}

// NextStatus returns the status following cur in the configured order, or cur
// itself when cur is already the last one or not part of the list at all.
func (s Snapshot) NextStatus(cur string) string {
	for i, def := range s.Statuses {
		if def.Key == cur {
			if i+1 < len(s.Statuses) {
				return s.Statuses[i+1].Key
			}
			return cur
		}
	}
	return cur
}

func (s Snapshot) isHidden(key string) bool {
	for _, h := range s.HiddenColumns {
		if h == key {
			return true
		}
	}
	return false
}

// ActiveColumns lists the groupings that currently participate in ordering:
// the today queue first (when enabled), then every non-hidden status.
func (s Snapshot) ActiveColumns() []Column {
	cols := make([]Column, 0, len(s.Statuses)+1)
	if s.ShowToday {
		cols = append(cols, TodayColumn())
	}
	for _, def := range s.Statuses {
		if s.isHidden(def.Key) {
			continue
		}
		cols = append(cols, StatusColumn(def.Key))
	}
	return cols
}
