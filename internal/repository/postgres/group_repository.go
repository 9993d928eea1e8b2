package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/repository"
)

type groupRepository struct {
	db *DB
}

func NewGroupRepository(db *DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT id, name, login, company_id FROM users WHERE id = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return &user, nil
}

func (r *groupRepository) UserInGroup(ctx context.Context, userID int64, group string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM user_groups ug
			JOIN groups g ON ug.group_id = g.id
			WHERE ug.user_id = $1 AND g.name = $2
		)
	`

	var in bool
	if err := r.db.GetContext(ctx, &in, query, userID, group); err != nil {
		return false, fmt.Errorf("failed to check group %q for user %d: %w", group, userID, err)
	}

	return in, nil
}
