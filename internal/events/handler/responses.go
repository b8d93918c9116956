package handler

import (
	"time"

	"credipet/internal/events/models"
)

type EventResponse struct {
	Seq        uint64    `json:"seq"`
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Principal  string    `json:"principal"`
	BadgeID    uint64    `json:"badge_id,omitempty"`
	Index      uint8     `json:"index,omitempty"`
	OldValue   uint64    `json:"old_value,omitempty"`
	NewValue   uint64    `json:"new_value,omitempty"`
	Flag       bool      `json:"flag,omitempty"`
	Target     string    `json:"target,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ListResponse struct {
	Events []EventResponse `json:"events"`
	// NextAfter is the cursor for the following page; equal to the
	// requested cursor when the page is empty.
	NextAfter uint64 `json:"next_after"`
}

func toListResponse(events []*models.Event, after uint64) *ListResponse {
	resp := &ListResponse{Events: make([]EventResponse, 0, len(events)), NextAfter: after}
	for _, e := range events {
		item := EventResponse{
			Seq:        e.Seq,
			ID:         e.ID.String(),
			Type:       e.Type.String(),
			Principal:  e.Principal.Hex(),
			BadgeID:    uint64(e.BadgeID),
			Index:      e.Index,
			OldValue:   e.OldValue,
			NewValue:   e.NewValue,
			Flag:       e.Flag,
			Detail:     e.Detail,
			OccurredAt: e.OccurredAt,
		}
		if !e.Target.IsZero() {
			item.Target = e.Target.Hex()
		}
		resp.Events = append(resp.Events, item)
		resp.NextAfter = e.Seq
	}
	return resp
}
