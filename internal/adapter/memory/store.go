// Package memory keeps all entities in process memory. It backs the
// development storage driver and the service tests.
package memory

import (
	"context"
	"sync"
	"time"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type txKey struct{}

// Store holds the tables shared by the memory repositories. Units of work
// run one at a time on a private copy that replaces the shared tables on
// commit, so other readers never see uncommitted changes.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *tables
	now  func() time.Time
}

type tables struct {
	users    map[uint64]domain.User
	projects map[uint64]domain.Project
	tasks    map[uint64]domain.Task
	subtasks map[uint64]domain.Subtask
	comments map[uint64]domain.Comment
	files    map[uint64]domain.File
	lastID   map[string]uint64
}

type Option func(*Store)

// WithClock sets the clock used for creation and update timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		data: newTables(),
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newTables() *tables {
	return &tables{
		users:    map[uint64]domain.User{},
		projects: map[uint64]domain.Project{},
		tasks:    map[uint64]domain.Task{},
		subtasks: map[uint64]domain.Subtask{},
		comments: map[uint64]domain.Comment{},
		files:    map[uint64]domain.File{},
		lastID:   map[string]uint64{},
	}
}

// clone copies the maps. Entity values are copied by value; their pointer
// fields are never mutated in place by the repositories.
func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.projects {
		c.projects[k] = v
	}
	for k, v := range t.tasks {
		c.tasks[k] = v
	}
	for k, v := range t.subtasks {
		c.subtasks[k] = v
	}
	for k, v := range t.comments {
		c.comments[k] = v
	}
	for k, v := range t.files {
		c.files[k] = v
	}
	for k, v := range t.lastID {
		c.lastID[k] = v
	}
	return c
}

func (t *tables) nextID(table string) uint64 {
	t.lastID[table]++
	return t.lastID[table]
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txTables(ctx) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	working := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, working)); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = working
	s.mu.Unlock()
	return nil
}

func txTables(ctx context.Context) *tables {
	t, _ := ctx.Value(txKey{}).(*tables)
	return t
}

// read sees the unit of work's copy inside one and the committed tables
// outside.
func (s *Store) read(ctx context.Context, fn func(t *tables) error) error {
	if t := txTables(ctx); t != nil {
		return fn(t)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

// write applies fn to the tables. Outside a unit of work it waits for the
// running one to commit.
func (s *Store) write(ctx context.Context, fn func(t *tables) error) error {
	if t := txTables(ctx); t != nil {
		return fn(t)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (t *tables) projectRef(id *uint64) *domain.ProjectRef {
	if id == nil {
		return nil
	}
	project, ok := t.projects[*id]
	if !ok {
		return nil
	}
	return &domain.ProjectRef{ID: project.ID, Name: project.Name, Color: project.Color}
}

func (t *tables) userRef(id *uint64) *domain.UserRef {
	if id == nil {
		return nil
	}
	user, ok := t.users[*id]
	if !ok {
		return nil
	}
	return &domain.UserRef{ID: user.ID, FullName: user.FullName}
}

func (t *tables) fullName(id uint64) string {
	return t.users[id].FullName
}

func (t *tables) deleteTask(id uint64) {
	delete(t.tasks, id)
	for subtaskID, subtask := range t.subtasks {
		if subtask.TaskID == id {
			delete(t.subtasks, subtaskID)
		}
	}
	for commentID, comment := range t.comments {
		if comment.TaskID == id {
			delete(t.comments, commentID)
		}
	}
	for fileID, file := range t.files {
		if file.TaskID != nil && *file.TaskID == id {
			delete(t.files, fileID)
		}
	}
}

var _ ports.TxManager = (*Store)(nil)
