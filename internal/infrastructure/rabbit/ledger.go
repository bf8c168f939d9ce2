package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eventpulse/internal/domain/entities"
	"eventpulse/internal/ports/output"
)

var _ output.LedgerPublisher = (*LedgerPublisher)(nil)

// LedgerMessage is the JSON body of a queued ledger entry.
type LedgerMessage struct {
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id,omitempty"`
	Points    int       `json:"points"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func EncodeLedgerEntry(e entities.LedgerEntry) ([]byte, error) {
	return json.Marshal(LedgerMessage{
		UserID:    e.UserID,
		EventID:   e.EventID,
		Points:    e.Points,
		Reason:    e.Reason,
		CreatedAt: e.CreatedAt,
	})
}

// DecodeLedgerEntry returns an error wrapping ErrDiscard for bodies that can
// never be stored.
func DecodeLedgerEntry(body []byte) (entities.LedgerEntry, error) {
	var m LedgerMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return entities.LedgerEntry{}, fmt.Errorf("%w: decode ledger message: %v", ErrDiscard, err)
	}
	return entities.LedgerEntry{
		UserID:    m.UserID,
		EventID:   m.EventID,
		Points:    m.Points,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}, nil
}

type publisher interface {
	Publish(ctx context.Context, body []byte) error
}

// LedgerPublisher queues ledger entries for the ledger worker.
type LedgerPublisher struct {
	client publisher
}

func NewLedgerPublisher(client publisher) *LedgerPublisher {
	return &LedgerPublisher{client: client}
}

func (p *LedgerPublisher) Publish(ctx context.Context, entry entities.LedgerEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	body, err := EncodeLedgerEntry(entry)
	if err != nil {
		return fmt.Errorf("encode ledger entry: %w", err)
	}
	return p.client.Publish(ctx, body)
}
