package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/todolist/internal/domain/todo"
	"github.com/rpggio/todolist/internal/repository"
)

const todoColumns = `id, title, description, completed, priority, created_at, updated_at`

const defaultOrder = `
	ORDER BY
		CASE priority WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 1 ELSE 0 END DESC,
		created_at DESC,
		rowid DESC
`

// TodoRepository implements todo.Repository for SQLite
type TodoRepository struct {
	db *DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

var _ todo.Repository = (*TodoRepository)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(row scanner) (*todo.Todo, error) {
	var (
		t         todo.Todo
		priority  sql.NullString
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &priority, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.Priority = todo.Priority(priority.String)
	t.CreatedAt = fromUnixNano(createdAt)
	t.UpdatedAt = fromUnixNano(updatedAt)
	return &t, nil
}

func fromUnixNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// Create inserts a new todo
func (r *TodoRepository) Create(ctx context.Context, t *todo.Todo) error {
	query := `INSERT INTO todos (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Completed,
		string(t.Priority),
		t.CreatedAt.UnixNano(),
		t.UpdatedAt.UnixNano(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

// Get retrieves a todo by ID
func (r *TodoRepository) Get(ctx context.Context, id string) (*todo.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ?`

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return t, nil
}

// List returns todos in default order and the total row count
func (r *TodoRepository) List(ctx context.Context, opts todo.ListOptions) ([]todo.Todo, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count todos: %w", err)
	}

	query := `SELECT ` + todoColumns + ` FROM todos` + defaultOrder
	args := []any{}
	if opts.Page > 0 && opts.Limit > 0 {
		if opts.Page-1 > total/opts.Limit {
			return []todo.Todo{}, total, nil
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []todo.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating todo rows: %w", err)
	}

	return todos, total, nil
}

// Update loads, modifies and writes back a todo inside one transaction
func (r *TodoRepository) Update(ctx context.Context, id string, apply func(*todo.Todo)) (*todo.Todo, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	t, err := scanTodo(tx.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load todo: %w", err)
	}

	apply(t)
	t.ID = id

	_, err = tx.ExecContext(ctx, `
		UPDATE todos
		SET title = ?, description = ?, completed = ?, priority = ?, updated_at = ?
		WHERE id = ?
	`,
		t.Title,
		t.Description,
		t.Completed,
		string(t.Priority),
		t.UpdatedAt.UnixNano(),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}
	return t, nil
}

// Delete deletes a todo
func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteCompleted deletes completed todos
func (r *TodoRepository) DeleteCompleted(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE completed = 1`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete completed todos: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

// CompleteAll marks pending todos completed
func (r *TodoRepository) CompleteAll(ctx context.Context, at time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE todos
		SET completed = 1, updated_at = MAX(?, created_at)
		WHERE completed = 0
	`, at.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to complete todos: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

// Stats counts todos by completion
func (r *TodoRepository) Stats(ctx context.Context) (todo.Stats, error) {
	var stats todo.Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0)
		FROM todos
	`).Scan(&stats.Total, &stats.Completed)
	if err != nil {
		return todo.Stats{}, fmt.Errorf("failed to compute stats: %w", err)
	}
	stats.Pending = stats.Total - stats.Completed
	return stats, nil
}

// Clear deletes every todo
func (r *TodoRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todos`); err != nil {
		return fmt.Errorf("failed to clear todos: %w", err)
	}
	return nil
}
