package infra_blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/moviepair/core/internal/model"
	storage_keyed "github.com/moviepair/core/internal/storage/keyed"
)

// Repository keeps one user-data snapshot per account on top of any
// key-value backend. Snapshots never expire.
type Repository struct {
	backend storage_keyed.Backend
}

func New(backend storage_keyed.Backend) *Repository {
	return &Repository{backend: backend}
}

func (r *Repository) Load(ctx context.Context, email string) (model.UserData, error) {
	raw, err := r.backend.Get(ctx, email)
	if errors.Is(err, storage_keyed.ErrNotFound) {
		return model.NewUserData(), nil
	}
	if err != nil {
		return model.UserData{}, fmt.Errorf("failed to load user data: %w", err)
	}

	data := model.NewUserData()
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.NewUserData(), nil
	}
	return data, nil
}

func (r *Repository) Save(ctx context.Context, email string, data model.UserData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode user data: %w", err)
	}
	if err := r.backend.Put(ctx, email, raw); err != nil {
		return fmt.Errorf("failed to save user data: %w", err)
	}
	return nil
}
