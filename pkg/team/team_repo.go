package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type TeamRepo interface {
	// Store stores a new Team to the database
	Store(ctx context.Context, team Team) (int, error)
	GetAll(ctx context.Context) ([]Team, error)
	FindById(ctx context.Context, teamId int) (*Team, error)
	FindByUid(ctx context.Context, uid string) (*Team, error)
	Update(ctx context.Context, team Team) (bool, error)
	// UpdateAlertFlags persists new alert flags for a team, but only when the
	// stored flags still match expected. Returns false when another evaluation
	// got there first.
	UpdateAlertFlags(ctx context.Context, teamId int, flags AlertFlags, expected AlertFlags) (bool, error)
	Delete(ctx context.Context, teamId int) (bool, error)
}

type TeamRepoImpl struct {
	db *sql.DB
}

func NewTeamRepo(db *sql.DB) *TeamRepoImpl {
	return &TeamRepoImpl{db: db}
}

func (r TeamRepoImpl) Store(ctx context.Context, team Team) (int, error) {
	query := `INSERT INTO team (uid, name, budget, alert_warning_sent, alert_critical_sent) VALUES (?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		team.Uid,
		team.Name,
		team.Budget,
		flagToInt(team.AlertFlags.Warning),
		flagToInt(team.AlertFlags.Critical),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}

	return int(lastInsertID), nil
}

func (r TeamRepoImpl) GetAll(ctx context.Context) ([]Team, error) {
	query := `SELECT id, uid, name, budget, alert_warning_sent, alert_critical_sent FROM team ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query teams: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		team, err := scanTeam(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return teams, nil
}

func (r TeamRepoImpl) FindById(ctx context.Context, teamId int) (*Team, error) {
	query := `SELECT id, uid, name, budget, alert_warning_sent, alert_critical_sent FROM team WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, teamId)
	team, err := scanTeam(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not find team %d: %w", teamId, err)
		log.Error(err)
		return nil, err
	}
	return &team, nil
}

func (r TeamRepoImpl) FindByUid(ctx context.Context, uid string) (*Team, error) {
	query := `SELECT id, uid, name, budget, alert_warning_sent, alert_critical_sent FROM team WHERE uid = ?`
	row := r.db.QueryRowContext(ctx, query, uid)
	team, err := scanTeam(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("could not find team %s: %w", uid, err)
		log.Error(err)
		return nil, err
	}
	return &team, nil
}

func (r TeamRepoImpl) Update(ctx context.Context, team Team) (bool, error) {
	query := `UPDATE team SET name = ?, budget = ? WHERE id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, team.Name, team.Budget, team.ID)
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

func (r TeamRepoImpl) UpdateAlertFlags(ctx context.Context, teamId int, flags AlertFlags, expected AlertFlags) (bool, error) {
	query := `UPDATE team SET alert_warning_sent = ?, alert_critical_sent = ?
              WHERE id = ? AND alert_warning_sent = ? AND alert_critical_sent = ?`
	result, err := r.db.ExecContext(ctx, query,
		flagToInt(flags.Warning),
		flagToInt(flags.Critical),
		teamId,
		flagToInt(expected.Warning),
		flagToInt(expected.Critical),
	)
	if err != nil {
		err := fmt.Errorf("could not update alert flags: %w", err)
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

func (r TeamRepoImpl) Delete(ctx context.Context, teamId int) (bool, error) {
	query := "DELETE FROM team WHERE id = ?"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()
	result, err := stmt.ExecContext(ctx, teamId)
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

func scanTeam(scan func(dest ...any) error) (Team, error) {
	var team Team
	var warningSent, criticalSent int
	if err := scan(
		&team.ID,
		&team.Uid,
		&team.Name,
		&team.Budget,
		&warningSent,
		&criticalSent,
	); err != nil {
		return Team{}, err
	}
	team.AlertFlags.Warning = warningSent == 1
	team.AlertFlags.Critical = criticalSent == 1
	return team, nil
}

func flagToInt(flag bool) int {
	if flag {
		return 1
	}
	return 0
}
