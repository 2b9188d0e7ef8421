package models

// DoorListRow is one row of the door list view, keyed by column name.
// The view's columns are owned by the database, so rows are passed through as-is.
type DoorListRow map[string]any
