// Package group exposes group membership lookups. Group CRUD itself
// lives in the surrounding application; the ledger only needs to know
// who belongs to a group so splits can be validated against it.
package group

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository reads group membership.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListMemberIDs returns the user IDs of all members of a group, in
// ascending order.
func (r *Repository) ListMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	query := `
		SELECT user_id
		FROM group_members
		WHERE group_id = $1
		ORDER BY user_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
