package store

import (
	"context"
	"time"
)

// WeekSelection is the persisted "which week is selected" record for one
// extension install. It is created once, then only superseded, never deleted
// during normal operation.
type WeekSelection struct {
	ExtensionID string
	Week        int
	SetAtTs     int64
	UpdatedTs   int64
}

// FindWeekSelection is the find condition for week selections.
type FindWeekSelection struct {
	ExtensionID *string
}

// UpsertWeekSelection is the upsert request for a week selection.
type UpsertWeekSelection struct {
	ExtensionID string
	Week        int
	SetAtTs     int64
}

// DeleteWeekSelection is the delete request for a week selection, used only
// when an install removes all of its data.
type DeleteWeekSelection struct {
	ExtensionID string
}

// UpsertWeekSelection creates or replaces the week selection for an install.
func (s *Store) UpsertWeekSelection(ctx context.Context, upsert *UpsertWeekSelection) (*WeekSelection, error) {
	return s.driver.UpsertWeekSelection(ctx, upsert)
}

// ListWeekSelections lists week selections with filter.
func (s *Store) ListWeekSelections(ctx context.Context, find *FindWeekSelection) ([]*WeekSelection, error) {
	return s.driver.ListWeekSelections(ctx, find)
}

// GetWeekSelection gets the week selection for an install.
func (s *Store) GetWeekSelection(ctx context.Context, find *FindWeekSelection) (*WeekSelection, error) {
	list, err := s.driver.ListWeekSelections(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// DeleteWeekSelection deletes the week selection for an install.
func (s *Store) DeleteWeekSelection(ctx context.Context, delete *DeleteWeekSelection) error {
	return s.driver.DeleteWeekSelection(ctx, delete)
}

// SetAt parses the selection's anchor timestamp to time.Time.
func (w *WeekSelection) SetAt() time.Time {
	return time.Unix(w.SetAtTs, 0)
}
