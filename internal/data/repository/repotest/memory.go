// Package repotest provides in-memory repositories for tests. They follow the
// same contracts as the Postgres repositories, including owner scoping and
// nil, nil for missing single rows.
package repotest

import (
	"context"
	"sync"
	"time"

	"movie-favorites/internal/data/entity"
	"movie-favorites/internal/data/repository"

	"github.com/google/uuid"
)

// New returns a repository.Repository backed by fresh in-memory stores.
func New() (*repository.Repository, *Store) {
	s := &Store{
		users:     make(map[uuid.UUID]*entity.User),
		sessions:  make(map[uuid.UUID]*entity.Session),
		favorites: make(map[int64]*entity.Favorite),
		Now:       time.Now,
	}
	return &repository.Repository{
		User:     &userRepo{s},
		Session:  &sessionRepo{s},
		Favorite: &favoriteRepo{s},
	}, s
}

// Store holds all rows.
type Store struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	sessions  map[uuid.UUID]*entity.Session // by token
	favorites map[int64]*entity.Favorite
	nextID    int64
	err       error

	// Now is the clock used for session expiry.
	Now func() time.Time
}

// SetErr makes every later call fail with err until reset with nil.
func (s *Store) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Favorites returns a copy of every stored favorite regardless of owner.
func (s *Store) Favorites() []entity.Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Favorite, 0, len(s.favorites))
	for id := int64(1); id <= s.nextID; id++ {
		if f, ok := s.favorites[id]; ok {
			out = append(out, *f)
		}
	}
	return out
}

// Session returns the stored session for token, valid or not.
func (s *Store) Session(token uuid.UUID) (entity.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return entity.Session{}, false
	}
	return *sess, true
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	cp := *session
	r.s.sessions[session.Token] = &cp
	return nil
}

func (r *sessionRepo) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	sess, ok := r.s.sessions[token]
	if !ok || !sess.Valid(r.s.Now()) {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (r *sessionRepo) Revoke(_ context.Context, token uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return r.s.err
	}
	sess, ok := r.s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return repository.ErrSessionNotFound
	}
	now := r.s.Now()
	sess.RevokedAt = &now
	return nil
}

type favoriteRepo struct{ s *Store }

func (r *favoriteRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	out := make([]*entity.Favorite, 0)
	for id := int64(1); id <= r.s.nextID; id++ {
		if f, ok := r.s.favorites[id]; ok && f.OwnerID == ownerID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *favoriteRepo) Create(_ context.Context, favorite *entity.Favorite) ([]*entity.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	r.s.nextID++
	cp := *favorite
	cp.ID = r.s.nextID
	cp.CreatedAt = r.s.Now()
	r.s.favorites[cp.ID] = &cp

	out := cp
	return []*entity.Favorite{&out}, nil
}

func (r *favoriteRepo) DeleteByOwnerAndID(_ context.Context, ownerID uuid.UUID, id int64) ([]*entity.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.err != nil {
		return nil, r.s.err
	}
	f, ok := r.s.favorites[id]
	if !ok || f.OwnerID != ownerID {
		return []*entity.Favorite{}, nil
	}
	delete(r.s.favorites, id)
	return []*entity.Favorite{f}, nil
}
