package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mitoneko/neko-todo/models"
)

// startOrToday applies the start-date default: an unset start date means
// the item starts today.
func startOrToday(d models.Date) models.Date {
	if d.IsZero() {
		return models.Today()
	}
	return d
}

// endOrNever applies the end-date default: an unset end date means no
// deadline.
func endOrNever(d models.Date) models.Date {
	if d.IsZero() {
		return models.Never()
	}
	return d
}

// orderClause maps a sort order to its ORDER BY clause. Each primary
// column carries a secondary tiebreak so equal primary keys keep a stable,
// reproducible order.
func orderClause(order models.SortOrder) string {
	switch order {
	case models.StartAsc:
		return " ORDER BY start_date, update_date"
	case models.StartDesc:
		return " ORDER BY start_date DESC, update_date"
	case models.EndAsc:
		return " ORDER BY end_date, update_date"
	case models.EndDesc:
		return " ORDER BY end_date DESC, update_date"
	case models.UpdateAsc:
		return " ORDER BY update_date, end_date"
	case models.UpdateDesc:
		return " ORDER BY update_date DESC, end_date"
	default:
		return " ORDER BY end_date, update_date"
	}
}

// InsertTodo inserts a todo row. The id, update_date and done fields of
// item are ignored: the id is auto-assigned, update_date is stamped to
// today and done starts false. Missing start and end dates take their
// defaults.
func (db *DB) InsertTodo(ctx context.Context, item models.TodoItem) error {
	const q = `
		INSERT INTO todo(user_name, title, work, update_date, start_date, end_date, done)
		VALUES (?, ?, ?, CURDATE(), ?, ?, FALSE);`
	_, err := db.pool.ExecContext(ctx, q,
		item.UserName, item.Title, item.Work,
		startOrToday(item.StartDate), endOrNever(item.EndDate))
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

// ListTodos returns the todo rows owned by the session's user whose start
// date is on or before refDate, optionally restricted to incomplete items.
// An item past its end date is still listed; there is no automatic
// archival. An empty result is not an error.
func (db *DB) ListTodos(ctx context.Context, sess uuid.UUID, refDate models.Date, onlyIncomplete bool, order models.SortOrder) ([]models.TodoItem, error) {
	q := `
		SELECT t.id, t.user_name, t.title, t.work, t.update_date, t.start_date, t.end_date, t.done
		FROM todo t JOIN sessions s ON s.user_name = t.user_name
		WHERE s.id = ? AND t.start_date <= ?`
	if onlyIncomplete {
		q += ` AND done = FALSE`
	}
	q += orderClause(order) + ";"

	rows, err := db.pool.QueryContext(ctx, q, sess.String(), refDate)
	if err != nil {
		return nil, fmt.Errorf("query todo list: %w", err)
	}
	defer rows.Close()

	var items []models.TodoItem
	for rows.Next() {
		var t models.TodoItem
		if err := rows.Scan(&t.ID, &t.UserName, &t.Title, &t.Work,
			&t.UpdateDate, &t.StartDate, &t.EndDate, &t.Done); err != nil {
			return nil, fmt.Errorf("scan todo row: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todo rows: %w", err)
	}
	return items, nil
}

// GetTodoByID returns the row with the given id, but only when it belongs
// to the session's user. A missing id and another user's id both report
// ErrTodoNotFound; the two cases are indistinguishable on purpose so the
// existence of other users' items never leaks.
func (db *DB) GetTodoByID(ctx context.Context, id uint32, sess uuid.UUID) (models.TodoItem, error) {
	const q = `
		SELECT t.id, t.user_name, t.title, t.work, t.update_date, t.start_date, t.end_date, t.done
		FROM todo t JOIN sessions s ON s.user_name = t.user_name
		WHERE s.id = ? AND t.id = ?;`
	var t models.TodoItem
	err := db.pool.QueryRowContext(ctx, q, sess.String(), id).Scan(
		&t.ID, &t.UserName, &t.Title, &t.Work,
		&t.UpdateDate, &t.StartDate, &t.EndDate, &t.Done)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TodoItem{}, ErrTodoNotFound
	}
	if err != nil {
		return models.TodoItem{}, fmt.Errorf("query todo by id: %w", err)
	}
	return t, nil
}

// SetDone updates only the done flag. Ownership is not checked here; the
// service layer establishes it with a prior GetTodoByID call.
func (db *DB) SetDone(ctx context.Context, id uint32, done bool) error {
	const q = `UPDATE todo SET done = ? WHERE id = ?;`
	res, err := db.pool.ExecContext(ctx, q, done, id)
	if err != nil {
		return fmt.Errorf("update done flag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// EditTodo overwrites every field of the row except id, owner and done,
// restamping update_date to today. Missing start and end dates take the
// same defaults as InsertTodo.
func (db *DB) EditTodo(ctx context.Context, item models.TodoItem) error {
	const q = `
		UPDATE todo
		SET title = ?, work = ?, update_date = CURDATE(), start_date = ?, end_date = ?
		WHERE id = ?;`
	res, err := db.pool.ExecContext(ctx, q,
		item.Title, item.Work,
		startOrToday(item.StartDate), endOrNever(item.EndDate), item.ID)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTodoNotFound
	}
	return nil
}
