// Package memory is a process-local document store implementing the repository interfaces.
// Documents are copied through BSON on every read and write, so callers never share state
// with the store and see the same encoding rules as the Mongo backend.
package memory

import (
	"sync"

	"alcyxob/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds every collection behind one lock.
type Store struct {
	mu        sync.RWMutex
	users     map[primitive.ObjectID][]byte
	plans     map[primitive.ObjectID][]byte
	templates map[primitive.ObjectID][]byte
}

func NewStore() *Store {
	return &Store{
		users:     map[primitive.ObjectID][]byte{},
		plans:     map[primitive.ObjectID][]byte{},
		templates: map[primitive.ObjectID][]byte{},
	}
}

func encode(v any) ([]byte, error) {
	return bson.Marshal(v)
}

func decodeUser(raw []byte) (*domain.User, error) {
	var u domain.User
	if err := bson.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func decodePlan(raw []byte) (*domain.TrainingPlan, error) {
	var p domain.TrainingPlan
	if err := bson.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func decodeTemplate(raw []byte) (*domain.Template, error) {
	var t domain.Template
	if err := bson.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
