package board

// Export is the full snapshot document: the union of all four collections.
// Importing the same document twice must not duplicate records (upsert by id).
type Export struct {
	Tasks    []*Task         `json:"tasks"`
	TimeLogs []*TimeLog      `json:"timelogs"`
	Comments []*Comment      `json:"comments"`
	Settings []SettingRecord `json:"settings"`
}
