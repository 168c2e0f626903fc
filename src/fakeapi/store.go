package fakeapi

import (
	"errors"
	"sync"
	"time"
)

var (
	errUserExists    = errors.New("Username already exists")
	errUnknownUser   = errors.New("Invalid user")
	errEntryNotFound = errors.New("Search entry not found")
)

// searchTimeLayout matches the service's CURRENT_TIMESTAMP column
const searchTimeLayout = "2006-01-02 15:04:05"

type user struct {
	id           int64
	username     string
	passwordHash []byte
}

type searchEntry struct {
	id          int64
	userID      int64
	location    string
	weatherData string
	searchTime  time.Time
}

// store is the in-memory user and search history table
type store struct {
	mu           sync.Mutex
	users        map[string]*user
	history      []searchEntry
	nextUserID   int64
	nextSearchID int64
	now          func() time.Time
}

func newStore() *store {
	return &store{
		users: make(map[string]*user),
		now:   time.Now,
	}
}

func (s *store) addUser(username string, hash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return errUserExists
	}
	s.nextUserID++
	s.users[username] = &user{id: s.nextUserID, username: username, passwordHash: hash}
	return nil
}

func (s *store) user(username string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, errUnknownUser
	}
	cp := *u
	return &cp, nil
}

// updateUser renames and/or rehashes a user. Empty values are left as is.
func (s *store) updateUser(username, newUsername string, newHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return errUnknownUser
	}
	if newUsername != "" && newUsername != username {
		if _, taken := s.users[newUsername]; taken {
			return errUserExists
		}
		delete(s.users, username)
		u.username = newUsername
		s.users[newUsername] = u
	}
	if newHash != nil {
		u.passwordHash = newHash
	}
	return nil
}

func (s *store) addSearch(userID int64, location, weatherData string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSearchID++
	s.history = append(s.history, searchEntry{
		id:          s.nextSearchID,
		userID:      userID,
		location:    location,
		weatherData: weatherData,
		searchTime:  s.now().UTC(),
	})
	return s.nextSearchID
}

func (s *store) searches(userID int64) []searchEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []searchEntry
	for _, e := range s.history {
		if e.userID == userID {
			out = append(out, e)
		}
	}
	return out
}

func (s *store) deleteSearch(userID, searchID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.history {
		if e.id == searchID && e.userID == userID {
			s.history = append(s.history[:i], s.history[i+1:]...)
			return nil
		}
	}
	return errEntryNotFound
}
