// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"
)

// ListQuery contains common list parameters.
type ListQuery struct {
	Search string `form:"search"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// Defaults sets default list values.
func (q *ListQuery) Defaults() {
	if q.Limit == 0 {
		q.Limit = 50
	}
}

// DateRangeQuery contains an optional business-date range.
type DateRangeQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// IDResponse is a response containing only an ID.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic success response.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
