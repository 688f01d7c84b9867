package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyzen/studyzen/store"
)

func (d *DB) UpsertWeekSelection(ctx context.Context, upsert *store.UpsertWeekSelection) (*store.WeekSelection, error) {
	stmt := `INSERT INTO week_selection (extension_id, week, set_at_ts)
		VALUES (` + placeholders(3) + `)
		ON CONFLICT(extension_id) DO UPDATE SET
			week = excluded.week,
			set_at_ts = excluded.set_at_ts,
			updated_ts = strftime('%s', 'now')
		RETURNING extension_id, week, set_at_ts, updated_ts`

	selection := &store.WeekSelection{}
	if err := d.db.QueryRowContext(ctx, stmt, upsert.ExtensionID, upsert.Week, upsert.SetAtTs).Scan(
		&selection.ExtensionID,
		&selection.Week,
		&selection.SetAtTs,
		&selection.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert week selection: %w", err)
	}

	return selection, nil
}

func (d *DB) ListWeekSelections(ctx context.Context, find *store.FindWeekSelection) ([]*store.WeekSelection, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ExtensionID; v != nil {
		where, args = append(where, "week_selection.extension_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			extension_id, week, set_at_ts, updated_ts
		FROM week_selection
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY week_selection.extension_id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query week selections: %w", err)
	}
	defer rows.Close()

	list := make([]*store.WeekSelection, 0)
	for rows.Next() {
		var selection store.WeekSelection
		if err := rows.Scan(
			&selection.ExtensionID,
			&selection.Week,
			&selection.SetAtTs,
			&selection.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan week selection: %w", err)
		}
		list = append(list, &selection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate week selections: %w", err)
	}

	return list, nil
}

func (d *DB) DeleteWeekSelection(ctx context.Context, delete *store.DeleteWeekSelection) error {
	stmt := `DELETE FROM week_selection WHERE extension_id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, delete.ExtensionID); err != nil {
		return fmt.Errorf("failed to delete week selection: %w", err)
	}
	return nil
}
