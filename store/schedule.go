package store

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/studyzen/studyzen/server/service/draft"
)

// Schedule is the persisted timetable envelope for one extension install.
// A successful upload replaces the stored envelope wholesale; there is no
// incremental merge.
type Schedule struct {
	ID          int32
	UID         string
	ExtensionID string
	RawText     string
	// Payload is the JSON-encoded array of draft.Chunk exactly as exchanged
	// with the client.
	Payload   string
	CreatedTs int64
	UpdatedTs int64
}

// FindSchedule is the find condition for schedule.
type FindSchedule struct {
	ID          *int32
	ExtensionID *string

	// Pagination
	Limit  *int
	Offset *int
}

// UpsertSchedule is the upsert request for schedule, keyed on extension ID.
type UpsertSchedule struct {
	UID         string
	ExtensionID string
	RawText     string
	Payload     string
}

// DeleteSchedule is the delete request for schedule.
type DeleteSchedule struct {
	ExtensionID string
}

// UpsertSchedule creates or replaces the schedule for an extension install.
func (s *Store) UpsertSchedule(ctx context.Context, upsert *UpsertSchedule) (*Schedule, error) {
	return s.driver.UpsertSchedule(ctx, upsert)
}

// ListSchedules lists schedules with filter.
func (s *Store) ListSchedules(ctx context.Context, find *FindSchedule) ([]*Schedule, error) {
	return s.driver.ListSchedules(ctx, find)
}

// GetSchedule gets a schedule by find condition.
func (s *Store) GetSchedule(ctx context.Context, find *FindSchedule) (*Schedule, error) {
	list, err := s.driver.ListSchedules(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// DeleteSchedule deletes a schedule.
func (s *Store) DeleteSchedule(ctx context.Context, delete *DeleteSchedule) error {
	return s.driver.DeleteSchedule(ctx, delete)
}

// Entries decodes the stored payload into class entries.
func (s *Schedule) Entries() ([]draft.Chunk, error) {
	if s.Payload == "" {
		return nil, nil
	}
	var entries []draft.Chunk
	if err := json.Unmarshal([]byte(s.Payload), &entries); err != nil {
		return nil, errors.Wrap(err, "failed to decode schedule payload")
	}
	return entries, nil
}

// EncodePayload encodes class entries into the persisted payload form.
func EncodePayload(entries []draft.Chunk) (string, error) {
	if entries == nil {
		entries = []draft.Chunk{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode schedule payload")
	}
	return string(data), nil
}
