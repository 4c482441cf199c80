package infra_postgres_userdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/moviepair/core/internal/model"
)

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Load returns the stored snapshot for an account. Unknown accounts and
// corrupted rows read as an empty snapshot so a fresh device can sync.
func (r *Repository) Load(ctx context.Context, email string) (model.UserData, error) {
	query := `
		SELECT data
		FROM user_data
		WHERE email = $1
	`

	var raw []byte
	err := r.db.GetContext(ctx, &raw, query, email)
	if errors.Is(err, sql.ErrNoRows) {
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

	query := `
		INSERT INTO user_data (email, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (email) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = now()
	`

	if _, err := r.db.ExecContext(ctx, query, email, raw); err != nil {
		return fmt.Errorf("failed to save user data: %w", err)
	}

	return nil
}
