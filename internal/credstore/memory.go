package credstore

import "context"

// MemoryStore is an in-memory Store backed by a static table built at
// startup. Lookups never mutate state, so no locking is needed.
type MemoryStore struct {
	users map[string]*User
}

// NewMemoryStore builds a MemoryStore from the given records. Later records
// win on duplicate usernames.
func NewMemoryStore(users []User) *MemoryStore {
	m := &MemoryStore{
		users: make(map[string]*User, len(users)),
	}
	for i := range users {
		u := users[i]
		m.users[u.Username] = &u
	}
	return m
}

func (m *MemoryStore) Lookup(_ context.Context, username string) (*User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}
