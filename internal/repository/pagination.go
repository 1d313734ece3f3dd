package repository

// PageRequest is a 1-based page window. Callers validate and clamp it before it gets here.
type PageRequest struct {
	Page     int64
	PageSize int64
}
