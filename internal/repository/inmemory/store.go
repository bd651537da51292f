package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskflow/internal/models/board"
	"taskflow/internal/repository"
)

// Store is a mutex-guarded in-memory record store. Reads hand out clones so a
// caller never observes a half-applied mutation; writes replace whole records.
type Store struct {
	mtx *sync.RWMutex

	tasks    map[int64]*board.Task
	timelogs map[int64]*board.TimeLog
	comments map[int64]*board.Comment
	settings map[string][]byte

	taskIDs    []int64
	timelogIDs []int64
	commentIDs []int64

	nextTaskID    int64
	nextTimeLogID int64
	nextCommentID int64
}

func NewStore() *Store {
	return &Store{
		mtx:           &sync.RWMutex{},
		tasks:         make(map[int64]*board.Task),
		timelogs:      make(map[int64]*board.TimeLog),
		comments:      make(map[int64]*board.Comment),
		settings:      make(map[string][]byte),
		nextTaskID:    1,
		nextTimeLogID: 1,
		nextCommentID: 1,
	}
}

// Repositories returns the store wired as the four collection interfaces.
func (s *Store) Repositories() *repository.Store {
	return &repository.Store{
		Tasks:    &taskRepo{s},
		TimeLogs: &timeLogRepo{s},
		Comments: &commentRepo{s},
		Settings: &settingRepo{s},
	}
}

func removeID(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// ----- tasks -----

type taskRepo struct{ s *Store }

func (r *taskRepo) Create(ctx context.Context, t *board.Task) (int64, error) {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	t.ID = r.s.nextTaskID
	r.s.nextTaskID++
	r.s.tasks[t.ID] = t.Clone()
	r.s.taskIDs = append(r.s.taskIDs, t.ID)
	return t.ID, nil
}

func (r *taskRepo) Put(ctx context.Context, t *board.Task) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.tasks[t.ID]; !ok {
		r.s.taskIDs = append(r.s.taskIDs, t.ID)
	}
	if t.ID >= r.s.nextTaskID {
		r.s.nextTaskID = t.ID + 1
	}
	r.s.tasks[t.ID] = t.Clone()
	return nil
}

func (r *taskRepo) Update(ctx context.Context, t *board.Task) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.tasks[t.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.tasks[t.ID] = t.Clone()
	return nil
}

func (r *taskRepo) GetByID(ctx context.Context, id int64) (*board.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.Clone(), nil
}

func (r *taskRepo) Delete(ctx context.Context, id int64) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tasks, id)
	r.s.taskIDs = removeID(r.s.taskIDs, id)
	return nil
}

func (r *taskRepo) List(ctx context.Context) ([]*board.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := make([]*board.Task, 0, len(r.s.taskIDs))
	for _, id := range r.s.taskIDs {
		res = append(res, r.s.tasks[id].Clone())
	}
	return res, nil
}

func (r *taskRepo) ListByColumn(ctx context.Context, projectID, statusKey string) ([]*board.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*board.Task{}
	for _, id := range r.s.taskIDs {
		t := r.s.tasks[id]
		if t.Status != statusKey {
			continue
		}
		if projectID != "" && t.ProjectID != projectID {
			continue
		}
		res = append(res, t.Clone())
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Order != res[j].Order {
			return res[i].Order < res[j].Order
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r *taskRepo) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]*board.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*board.Task{}
	for _, id := range r.s.taskIDs {
		if limit > 0 && len(res) >= limit {
			break
		}
		t := r.s.tasks[id]
		if t.RemindAt == nil || now.Before(*t.RemindAt) {
			continue
		}
		if t.LastRemindedAt != nil && !t.LastRemindedAt.Before(*t.RemindAt) {
			continue
		}
		res = append(res, t.Clone())
	}
	return res, nil
}

// ----- timelogs -----

type timeLogRepo struct{ s *Store }

func (r *timeLogRepo) Create(ctx context.Context, l *board.TimeLog) (int64, error) {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	l.ID = r.s.nextTimeLogID
	r.s.nextTimeLogID++
	r.s.timelogs[l.ID] = l.Clone()
	r.s.timelogIDs = append(r.s.timelogIDs, l.ID)
	return l.ID, nil
}

func (r *timeLogRepo) Put(ctx context.Context, l *board.TimeLog) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.timelogs[l.ID]; !ok {
		r.s.timelogIDs = append(r.s.timelogIDs, l.ID)
	}
	if l.ID >= r.s.nextTimeLogID {
		r.s.nextTimeLogID = l.ID + 1
	}
	r.s.timelogs[l.ID] = l.Clone()
	return nil
}

func (r *timeLogRepo) Update(ctx context.Context, l *board.TimeLog) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.timelogs[l.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.timelogs[l.ID] = l.Clone()
	return nil
}

func (r *timeLogRepo) List(ctx context.Context) ([]*board.TimeLog, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := make([]*board.TimeLog, 0, len(r.s.timelogIDs))
	for _, id := range r.s.timelogIDs {
		res = append(res, r.s.timelogs[id].Clone())
	}
	return res, nil
}

func (r *timeLogRepo) ListByTask(ctx context.Context, taskID int64) ([]*board.TimeLog, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*board.TimeLog{}
	for _, id := range r.s.timelogIDs {
		if l := r.s.timelogs[id]; l.TaskID == taskID {
			res = append(res, l.Clone())
		}
	}
	return res, nil
}

func (r *timeLogRepo) ListOpenByTask(ctx context.Context, taskID int64) ([]*board.TimeLog, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*board.TimeLog{}
	for _, id := range r.s.timelogIDs {
		if l := r.s.timelogs[id]; l.TaskID == taskID && l.IsOpen() {
			res = append(res, l.Clone())
		}
	}
	return res, nil
}

func (r *timeLogRepo) DeleteByTask(ctx context.Context, taskID int64) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	for id, l := range r.s.timelogs {
		if l.TaskID == taskID {
			delete(r.s.timelogs, id)
			r.s.timelogIDs = removeID(r.s.timelogIDs, id)
		}
	}
	return nil
}

// ----- comments -----

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(ctx context.Context, c *board.Comment) (int64, error) {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	c.ID = r.s.nextCommentID
	r.s.nextCommentID++
	r.s.comments[c.ID] = c.Clone()
	r.s.commentIDs = append(r.s.commentIDs, c.ID)
	return c.ID, nil
}

func (r *commentRepo) Put(ctx context.Context, c *board.Comment) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.comments[c.ID]; !ok {
		r.s.commentIDs = append(r.s.commentIDs, c.ID)
	}
	if c.ID >= r.s.nextCommentID {
		r.s.nextCommentID = c.ID + 1
	}
	r.s.comments[c.ID] = c.Clone()
	return nil
}

func (r *commentRepo) Update(ctx context.Context, c *board.Comment) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.comments[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.comments[c.ID] = c.Clone()
	return nil
}

func (r *commentRepo) GetByID(ctx context.Context, id int64) (*board.Comment, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c.Clone(), nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.comments, id)
	r.s.commentIDs = removeID(r.s.commentIDs, id)
	return nil
}

func (r *commentRepo) List(ctx context.Context) ([]*board.Comment, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := make([]*board.Comment, 0, len(r.s.commentIDs))
	for _, id := range r.s.commentIDs {
		res = append(res, r.s.comments[id].Clone())
	}
	return res, nil
}

func (r *commentRepo) ListByTask(ctx context.Context, taskID int64) ([]*board.Comment, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*board.Comment{}
	for _, id := range r.s.commentIDs {
		if c := r.s.comments[id]; c.Anchor.TaskID == taskID && !c.Anchor.IsDay() {
			res = append(res, c.Clone())
		}
	}
	return res, nil
}

func (r *commentRepo) ListByDay(ctx context.Context, day string) ([]*board.Comment, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*board.Comment{}
	for _, id := range r.s.commentIDs {
		if c := r.s.comments[id]; c.Anchor.Day == day {
			res = append(res, c.Clone())
		}
	}
	return res, nil
}

func (r *commentRepo) DeleteByTask(ctx context.Context, taskID int64) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	for id, c := range r.s.comments {
		if c.Anchor.TaskID == taskID && !c.Anchor.IsDay() {
			delete(r.s.comments, id)
			r.s.commentIDs = removeID(r.s.commentIDs, id)
		}
	}
	return nil
}

// ----- settings -----

type settingRepo struct{ s *Store }

func (r *settingRepo) Get(ctx context.Context, key string) ([]byte, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	v, ok := r.s.settings[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *settingRepo) Put(ctx context.Context, key string, value []byte) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	r.s.settings[key] = append([]byte(nil), value...)
	return nil
}

func (r *settingRepo) List(ctx context.Context) ([]board.SettingRecord, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	keys := make([]string, 0, len(r.s.settings))
	for k := range r.s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	res := make([]board.SettingRecord, 0, len(keys))
	for _, k := range keys {
		res = append(res, board.SettingRecord{Key: k, Value: append([]byte(nil), r.s.settings[k]...)})
	}
	return res, nil
}
