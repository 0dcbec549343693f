package usecase

import "sync"

// UserLocks はユーザー単位の直列化。同一ユーザーの連打（カート変更と
// チェックアウトの交錯）を防ぐ。別ユーザー同士はブロックしない。
type UserLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[int64]*sync.Mutex)}
}

// Lock はuserIDのロックを取り、解放関数を返す。
func (l *UserLocks) Lock(userID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
