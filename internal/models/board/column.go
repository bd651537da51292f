package board

// todayKey is the reserved status value marking membership in the today work
// queue. It is a storage detail; code outside this package works with Column.
const todayKey = "__TODAY__"

// Column identifies a board grouping: either the transient today queue or a
// configured workflow status. Exactly one of the two is meaningful.
type Column struct {
	Today  bool
	Status string
}

func TodayColumn() Column {
	return Column{Today: true}
}

func StatusColumn(key string) Column {
	return Column{Status: key}
}

// ColumnFromKey maps a stored status value back to a Column.
func ColumnFromKey(key string) Column {
	if key == todayKey {
		return TodayColumn()
	}
	return StatusColumn(key)
}

// Key returns the storage representation of the column.
func (c Column) Key() string {
	if c.Today {
		return todayKey
	}
	return c.Status
}

func (c Column) Equal(other Column) bool {
	return c.Today == other.Today && (c.Today || c.Status == other.Status)
}
