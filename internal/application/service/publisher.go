package service

import (
	"context"
	"time"
)

type ContentKind string

const (
	KindEvent   ContentKind = "event"
	KindProfile ContentKind = "profile"
	KindSocials ContentKind = "socials"
)

type ContentAction string

const (
	ActionSaved   ContentAction = "content.saved"
	ActionDeleted ContentAction = "content.deleted"
)

// ContentChanged describes one successful write. ID is empty for the
// singleton documents.
type ContentChanged struct {
	Action     ContentAction `json:"event_type"`
	Kind       ContentKind   `json:"kind"`
	ID         string        `json:"id,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type ContentPublisher interface {
	PublishContentChanged(ctx context.Context, msg ContentChanged) error
}
