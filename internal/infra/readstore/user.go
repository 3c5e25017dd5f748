package readstore

import (
	"context"

	"github.com/google/uuid"

	"parklot/internal/infra"
	"parklot/internal/infra/db"
	"parklot/internal/usecase/queries"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, `
		SELECT id, email, name, role, is_active FROM users WHERE id = $1`, id).
		Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.IsActive)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &v, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var v queries.AuthorizedUserView
	var passwordHash string
	err := r.db.QueryRow(ctx, `
		SELECT id, email, name, role, is_active, password_hash FROM users WHERE email = $1`, email).
		Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.IsActive, &passwordHash)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &v, passwordHash, nil
}
