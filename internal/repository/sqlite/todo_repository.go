package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo-api/internal/domain"
	"todo-api/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	expires_at DATETIME NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	created_by INTEGER NULL REFERENCES users(id) ON DELETE SET NULL,
	updated_by INTEGER NULL REFERENCES users(id) ON DELETE SET NULL
);
`

const createTodosOwnerIndex = `
CREATE INDEX IF NOT EXISTS idx_todos_created_by ON todos(created_by);
`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createTodosOwnerIndex); err != nil {
		return fmt.Errorf("create todos owner index: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO todos (title, body, status, expires_at, created_at, updated_at, created_by, updated_by)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.Title,
		todo.Body,
		string(todo.Status),
		nullTime(todo.ExpiresAt),
		todo.CreatedAt.UTC(),
		todo.UpdatedAt.UTC(),
		nullID(todo.CreatedBy),
		nullID(todo.UpdatedBy),
	)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("todo last insert id: %w", err)
	}
	todo.ID = id
	return id, nil
}

func (r *TodoRepository) Get(ctx context.Context, id, ownerID int64) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, body, status, expires_at, created_at, updated_at, created_by, updated_by
FROM todos
WHERE id = ? AND created_by = ?`,
		id,
		ownerID,
	)
	return scanTodo(row)
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, body, status, expires_at, created_at, updated_at, created_by, updated_by
FROM todos
WHERE created_by = ?
ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE todos
SET title=?, body=?, status=?, expires_at=?, updated_at=?, updated_by=?
WHERE id=? AND created_by=?`,
		todo.Title,
		todo.Body,
		string(todo.Status),
		nullTime(todo.ExpiresAt),
		todo.UpdatedAt.UTC(),
		nullID(todo.UpdatedBy),
		todo.ID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return requireRow(res)
}

func (r *TodoRepository) UpdateStatus(ctx context.Context, id, ownerID int64, status domain.TodoStatus, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE todos
SET status=?, updated_at=?
WHERE id=? AND created_by=?`,
		string(status),
		updatedAt.UTC(),
		id,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("update todo status: %w", err)
	}
	return requireRow(res)
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM todos
WHERE id = ? AND created_by = ?`,
		id,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return requireRow(res)
}

// requireRow turns a zero-row mutation into ErrNotFound so a foreign owner's
// todo is indistinguishable from a missing one.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTodo(scanner interface {
	Scan(dest ...any) error
}) (*domain.Todo, error) {
	var (
		todo      domain.Todo
		status    string
		expiresAt sql.NullTime
		createdBy sql.NullInt64
		updatedBy sql.NullInt64
	)

	if err := scanner.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Body,
		&status,
		&expiresAt,
		&todo.CreatedAt,
		&todo.UpdatedAt,
		&createdBy,
		&updatedBy,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}

	todo.Status = domain.TodoStatus(status)
	if expiresAt.Valid {
		t := expiresAt.Time.UTC()
		todo.ExpiresAt = &t
	}
	if createdBy.Valid {
		v := createdBy.Int64
		todo.CreatedBy = &v
	}
	if updatedBy.Valid {
		v := updatedBy.Int64
		todo.UpdatedBy = &v
	}
	return &todo, nil
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
