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

type templateRepository struct {
	store *Store
}

func NewTemplateRepository(store *Store) repository.TemplateRepository {
	return &templateRepository{store: store}
}

func (r *templateRepository) Create(_ context.Context, template *domain.Template) (primitive.ObjectID, error) {
	if template.Name == "" || template.Type == "" {
		return primitive.NilObjectID, errors.New("template requires name and type")
	}
	template.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	raw, err := encode(template)
	if err != nil {
		return primitive.NilObjectID, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.templates[template.ID] = raw
	return template.ID, nil
}

func (r *templateRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Template, error) {
	r.store.mu.RLock()
	raw, ok := r.store.templates[id]
	r.store.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return decodeTemplate(raw)
}

func (r *templateRepository) ListActive(_ context.Context, coachID string) ([]*domain.Template, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	templates := []*domain.Template{}
	for _, raw := range r.store.templates {
		t, err := decodeTemplate(raw)
		if err != nil {
			return nil, err
		}
		if t.IsActive && (t.IsPredefined() || t.CreatedBy == coachID) {
			templates = append(templates, t)
		}
	}
	sort.Slice(templates, func(i, j int) bool {
		if templates[i].UsageCount != templates[j].UsageCount {
			return templates[i].UsageCount > templates[j].UsageCount
		}
		return templates[i].CreatedAt.After(templates[j].CreatedAt)
	})
	return templates, nil
}

func (r *templateRepository) CountPredefined(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, raw := range r.store.templates {
		t, err := decodeTemplate(raw)
		if err != nil {
			return 0, err
		}
		if t.IsPredefined() {
			n++
		}
	}
	return n, nil
}

func (r *templateRepository) IncrementUsage(_ context.Context, id primitive.ObjectID) error {
	return r.update(id, func(t *domain.Template) { t.UsageCount++ })
}

func (r *templateRepository) Deactivate(_ context.Context, id primitive.ObjectID) error {
	return r.update(id, func(t *domain.Template) { t.IsActive = false })
}

func (r *templateRepository) update(id primitive.ObjectID, apply func(*domain.Template)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	raw, ok := r.store.templates[id]
	if !ok {
		return repository.ErrNotFound
	}
	t, err := decodeTemplate(raw)
	if err != nil {
		return err
	}
	apply(t)
	t.UpdatedAt = time.Now().UTC()
	if raw, err = encode(t); err != nil {
		return err
	}
	r.store.templates[id] = raw
	return nil
}
