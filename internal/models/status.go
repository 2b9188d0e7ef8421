package models

// FetchStatus describes the catalog fetch, not the cart
type FetchStatus string

const (
	StatusIdle    FetchStatus = "idle"
	StatusLoading FetchStatus = "loading"
	StatusSuccess FetchStatus = "success"
	StatusFailed  FetchStatus = "failed"
)
