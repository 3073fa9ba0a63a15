package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/steveyegge/mocktab/internal/types"
)

// UpsertTeam registers a team or updates its details. The ballot folder
// link is only overwritten when team.BallotFolderLink is non-empty.
func (s *SQLiteStorage) UpsertTeam(ctx context.Context, team *types.TeamInfo) error {
	if err := team.Validate(); err != nil {
		return fmt.Errorf("invalid team: %w", err)
	}

	emails, err := json.Marshal(team.Emails)
	if err != nil {
		return fmt.Errorf("failed to encode emails: %w", err)
	}
	if team.Emails == nil {
		emails = []byte("[]")
	}

	now := formatTime(s.now())
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO teams (number, name, school, emails, ballot_folder_link, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(number) DO UPDATE SET
			name = excluded.name,
			school = excluded.school,
			emails = excluded.emails,
			ballot_folder_link = CASE
				WHEN excluded.ballot_folder_link = '' THEN teams.ballot_folder_link
				ELSE excluded.ballot_folder_link
			END,
			updated_at = excluded.updated_at
	`, team.Number, team.Name, team.School, string(emails), team.BallotFolderLink, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert team %s: %w", team.Number, err)
	}
	return nil
}

// GetTeam returns the team with the given number, or ErrNotFound
func (s *SQLiteStorage) GetTeam(ctx context.Context, number string) (*types.TeamInfo, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT number, name, school, emails, ballot_folder_link, created_at, updated_at
		FROM teams
		WHERE number = ?
	`, number)

	team, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", number, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team %s: %w", number, err)
	}
	return team, nil
}

// ListTeams returns every registered team ordered by number
func (s *SQLiteStorage) ListTeams(ctx context.Context) ([]*types.TeamInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT number, name, school, emails, ballot_folder_link, created_at, updated_at
		FROM teams
		ORDER BY number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var teams []*types.TeamInfo
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	return teams, nil
}

// SetTeamBallotFolderLink finds the team row by number and updates its
// ballot folder link. It reports false if no such team exists.
func (s *SQLiteStorage) SetTeamBallotFolderLink(ctx context.Context, number, link string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE teams
		SET ballot_folder_link = ?, updated_at = ?
		WHERE number = ?
	`, link, formatTime(s.now()), number)
	if err != nil {
		return false, fmt.Errorf("failed to set ballot folder link: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTeam(row scanner) (*types.TeamInfo, error) {
	var (
		team               types.TeamInfo
		emails             string
		createdAt, updated string
	)
	if err := row.Scan(&team.Number, &team.Name, &team.School, &emails,
		&team.BallotFolderLink, &createdAt, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(emails), &team.Emails); err != nil {
		return nil, fmt.Errorf("invalid stored emails for team %s: %w", team.Number, err)
	}
	if len(team.Emails) == 0 {
		team.Emails = nil
	}

	var err error
	if team.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if team.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &team, nil
}
