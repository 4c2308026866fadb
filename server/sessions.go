package server

import (
	"sync"

	"github.com/google/uuid"

	"boxLayout/errors"
	"boxLayout/layout"
)

// session 编辑器本身不是并发安全的，每个会话一把锁串行化请求
type session struct {
	mu     sync.Mutex
	id     string
	editor *layout.Editor
}

func (s *session) do(fn func(e *layout.Editor)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.editor)
}

// Store 进程内的会话表，不做持久化
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

func (st *Store) Create(e *layout.Editor) *session {
	s := &session{id: uuid.NewString(), editor: e}
	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id string) (*session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "会话 %s 不存在", id)
	}
	return s, nil
}

func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}
