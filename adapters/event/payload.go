package event

import (
	"encoding/json"
	"fmt"

	"github.com/khoahotran/portfolio/internal/application/service"
)

// ContentEventPayload is the wire form of a content change on
// TopicContentEvents.
type ContentEventPayload service.ContentChanged

func DecodeContentEvent(b []byte) (ContentEventPayload, error) {
	var p ContentEventPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("decode content event: %w", err)
	}
	switch p.Action {
	case service.ActionSaved, service.ActionDeleted:
	default:
		return p, fmt.Errorf("decode content event: unknown event_type %q", p.Action)
	}
	switch p.Kind {
	case service.KindEvent, service.KindProfile, service.KindSocials:
	default:
		return p, fmt.Errorf("decode content event: unknown kind %q", p.Kind)
	}
	return p, nil
}
