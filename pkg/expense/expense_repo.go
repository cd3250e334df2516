package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type ExpenseRepo interface {
	// Store stores a new Expense to the database
	Store(ctx context.Context, expense Expense) (Expense, error)
	FindByUid(ctx context.Context, uid string) (*Expense, error)
	// FindByTeam returns the team's expenses dated at or after since,
	// restricted to the given statuses (all statuses when empty), ordered by date.
	FindByTeam(ctx context.Context, teamId int, since time.Time, statuses []Status) ([]Expense, error)
	// TotalApproved sums the amounts of all approved expenses of a team.
	TotalApproved(ctx context.Context, teamId int) (float64, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	UpdateStatus(ctx context.Context, expenseId int, status Status) (bool, error)
	Delete(ctx context.Context, expenseId int) (bool, error)
}

type ExpenseRepoImpl struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepoImpl {
	return &ExpenseRepoImpl{db: db}
}

func (r *ExpenseRepoImpl) Store(ctx context.Context, expense Expense) (Expense, error) {
	query := `INSERT INTO expense (uid, team_id, amount, description, category, expense_date, status)
              VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return Expense{}, err
	}
	defer stmt.Close()

	var categoryParam interface{}
	if expense.Category != "" {
		categoryParam = string(expense.Category)
	}
	result, err := stmt.ExecContext(ctx,
		expense.Uid,
		expense.TeamID,
		expense.Amount,
		expense.Description,
		categoryParam,
		expense.Date.Unix(),
		string(expense.Status),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Expense{}, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	expense.ID = int(lastInsertID)

	return expense, nil
}

func (r *ExpenseRepoImpl) FindByUid(ctx context.Context, uid string) (*Expense, error) {
	query := `SELECT id, uid, team_id, amount, description, category, expense_date, status
              FROM expense WHERE uid = ?`
	row := r.db.QueryRowContext(ctx, query, uid)
	expense, err := scanExpense(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not find expense %s: %w", uid, err)
		log.Error(err)
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepoImpl) FindByTeam(ctx context.Context, teamId int, since time.Time, statuses []Status) ([]Expense, error) {
	query := `SELECT id, uid, team_id, amount, description, category, expense_date, status
              FROM expense WHERE team_id = ? AND expense_date >= ?`
	args := []any{teamId, since.Unix()}

	if len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, status := range statuses {
			placeholders = append(placeholders, "?")
			args = append(args, string(status))
		}
		query += fmt.Sprintf(" AND status IN (%s)", strings.Join(placeholders, ", "))
	}
	query += " ORDER BY expense_date"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var expenses []Expense
	for rows.Next() {
		expense, err := scanExpense(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return expenses, nil
}

func (r *ExpenseRepoImpl) TotalApproved(ctx context.Context, teamId int) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM expense WHERE team_id = ? AND status = ?`
	row := r.db.QueryRowContext(ctx, query, teamId, string(StatusApproved))
	var total float64
	if err := row.Scan(&total); err != nil {
		err := fmt.Errorf("could not sum approved expenses: %w", err)
		log.Error(err)
		return 0, err
	}
	return total, nil
}

func (r *ExpenseRepoImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	query := `UPDATE expense SET amount = ?, description = ?, category = ?, expense_date = ? WHERE id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	var categoryParam interface{}
	if expense.Category != "" {
		categoryParam = string(expense.Category)
	}
	result, err := stmt.ExecContext(ctx,
		expense.Amount,
		expense.Description,
		categoryParam,
		expense.Date.Unix(),
		expense.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *ExpenseRepoImpl) UpdateStatus(ctx context.Context, expenseId int, status Status) (bool, error) {
	query := `UPDATE expense SET status = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, string(status), expenseId)
	if err != nil {
		err := fmt.Errorf("could not update expense status: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *ExpenseRepoImpl) Delete(ctx context.Context, expenseId int) (bool, error) {
	query := "DELETE FROM expense WHERE id = ?"
	result, err := r.db.ExecContext(ctx, query, expenseId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func scanExpense(scan func(dest ...any) error) (Expense, error) {
	var expense Expense
	var category sql.NullString
	var dateUnix int64
	var status string
	if err := scan(
		&expense.ID,
		&expense.Uid,
		&expense.TeamID,
		&expense.Amount,
		&expense.Description,
		&category,
		&dateUnix,
		&status,
	); err != nil {
		return Expense{}, err
	}
	if category.Valid {
		expense.Category = Category(category.String)
	}
	expense.Date = time.Unix(dateUnix, 0)
	expense.Status = Status(status)
	return expense, nil
}
