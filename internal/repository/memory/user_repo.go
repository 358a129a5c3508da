package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"alcyxob/coaching-app/internal/domain"
	"alcyxob/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

// Create enforces the same uniqueness as the Mongo indexes: email, and coach code among coaches.
func (r *userRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" || user.Role == "" {
		return primitive.NilObjectID, errors.New("user email, password hash, and role are required")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, raw := range r.store.users {
		u, err := decodeUser(raw)
		if err != nil {
			return primitive.NilObjectID, err
		}
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		if user.IsCoach() && u.IsCoach() && u.CoachID == user.CoachID {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	raw, err := encode(user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	r.store.users[user.ID] = raw
	return user.ID, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	users, err := r.filter(func(u *domain.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, repository.ErrNotFound
	}
	return &users[0], nil
}

func (r *userRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.store.mu.RLock()
	raw, ok := r.store.users[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return decodeUser(raw)
}

func (r *userRepository) GetCoachByCoachID(_ context.Context, coachID string) (*domain.User, error) {
	users, err := r.filter(func(u *domain.User) bool { return u.IsCoach() && u.CoachID == coachID })
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, repository.ErrNotFound
	}
	return &users[0], nil
}

func (r *userRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	wanted := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.filter(func(u *domain.User) bool {
		_, ok := wanted[u.ID]
		return ok
	})
}

func (r *userRepository) GetAthletesByCoachID(_ context.Context, coachID string) ([]domain.User, error) {
	return r.filter(func(u *domain.User) bool { return u.IsAthlete() && u.CoachID == coachID })
}

// filter returns matching users sorted by name.
func (r *userRepository) filter(match func(*domain.User) bool) ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := []domain.User{}
	for _, raw := range r.store.users {
		u, err := decodeUser(raw)
		if err != nil {
			return nil, err
		}
		if match(u) {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].FullName < users[j].FullName })
	return users, nil
}
