package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyzen/studyzen/store"
)

func (d *DB) UpsertSchedule(ctx context.Context, upsert *store.UpsertSchedule) (*store.Schedule, error) {
	fields := []string{"uid", "extension_id", "raw_text", "payload"}
	placeholderValues := []any{upsert.UID, upsert.ExtensionID, upsert.RawText, upsert.Payload}

	stmt := `INSERT INTO schedule (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		ON CONFLICT(extension_id) DO UPDATE SET
			raw_text = excluded.raw_text,
			payload = excluded.payload,
			updated_ts = strftime('%s', 'now')
		RETURNING id, uid, extension_id, raw_text, payload, created_ts, updated_ts`

	schedule := &store.Schedule{}
	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&schedule.ID,
		&schedule.UID,
		&schedule.ExtensionID,
		&schedule.RawText,
		&schedule.Payload,
		&schedule.CreatedTs,
		&schedule.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	return schedule, nil
}

func (d *DB) ListSchedules(ctx context.Context, find *store.FindSchedule) ([]*store.Schedule, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "schedule.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ExtensionID; v != nil {
		where, args = append(where, "schedule.extension_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, extension_id, raw_text, payload, created_ts, updated_ts
		FROM schedule
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY schedule.updated_ts DESC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Schedule, 0)
	for rows.Next() {
		var schedule store.Schedule
		if err := rows.Scan(
			&schedule.ID,
			&schedule.UID,
			&schedule.ExtensionID,
			&schedule.RawText,
			&schedule.Payload,
			&schedule.CreatedTs,
			&schedule.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		list = append(list, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedules: %w", err)
	}

	return list, nil
}

func (d *DB) DeleteSchedule(ctx context.Context, delete *store.DeleteSchedule) error {
	stmt := `DELETE FROM schedule WHERE extension_id = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, delete.ExtensionID); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}
