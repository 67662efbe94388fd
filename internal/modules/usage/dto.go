package usage

import "time"

type MarkUsedRequest struct {
	UsageType string `json:"usage_type" binding:"required"`
	UsageID   int64  `json:"usage_id" binding:"required"`
}

type MarkUnusedRequest struct {
	UsageType string `json:"usage_type" binding:"required"`
	UsageID   int64  `json:"usage_id" binding:"required"`
}

type MarkUsedResponse struct {
	FileID string    `json:"file_id"`
	Status string    `json:"status"`
	Usage  UsageData `json:"usage"`
}

type UsageData struct {
	UsageType string    `json:"usage_type"`
	UsageID   int64     `json:"usage_id"`
	CreatedAt time.Time `json:"created_at"`
}

type MarkUnusedResponse struct {
	FileID          string `json:"file_id"`
	Status          string `json:"status"`
	RemainingUsages int64  `json:"remaining_usages"`
}
