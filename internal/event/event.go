package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Event types published by the core services
const (
	CaseOpened       Type = domain.EventTypeCaseOpened
	CaseRevealed     Type = domain.EventTypeCaseRevealed
	BattleResolved   Type = domain.EventTypeBattleResolved
	HarvestCollected Type = domain.EventTypeHarvestCollected
	UserLoggedIn     Type = domain.EventTypeUserLoggedIn
	UserLoggedOut    Type = domain.EventTypeUserLoggedOut
)

// Typed event payloads

// CaseOpenedPayloadV1 is published as soon as a purchase commits, before
// its outcome is disclosed. It deliberately carries no item.
type CaseOpenedPayloadV1 struct {
	OpeningID string    `json:"opening_id"`
	CaseID    string    `json:"case_id"`
	Price     int64     `json:"price"`
	GoldAfter int64     `json:"gold_after"`
	RevealAt  time.Time `json:"reveal_at"`
}

// CaseRevealedPayloadV1 carries the full opening once the reveal fires
type CaseRevealedPayloadV1 struct {
	Opening domain.CaseOpening `json:"opening"`
}

// BattleResolvedPayloadV1 carries the battle outcome once the reveal fires
type BattleResolvedPayloadV1 struct {
	Outcome domain.BattleOutcome `json:"outcome"`
}

// HarvestCollectedPayloadV1 carries a clicker reward
type HarvestCollectedPayloadV1 struct {
	Reward domain.HarvestReward `json:"reward"`
}

// UserPayloadV1 carries the identity for login and logout events
type UserPayloadV1 struct {
	Identity domain.Identity `json:"identity"`
}

// Type-safe event constructors

// NewCaseOpenedEvent creates a case opened event
func NewCaseOpenedEvent(o domain.CaseOpening) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CaseOpened,
		Payload: CaseOpenedPayloadV1{
			OpeningID: o.ID,
			CaseID:    o.CaseID,
			Price:     o.Price,
			GoldAfter: o.Balances.Gold,
			RevealAt:  o.RevealAt,
		},
		Metadata: Metadata{"case_id": o.CaseID},
	}
}

// NewCaseRevealedEvent creates a case revealed event
func NewCaseRevealedEvent(o domain.CaseOpening) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     CaseRevealed,
		Payload:  CaseRevealedPayloadV1{Opening: o},
		Metadata: Metadata{"case_id": o.CaseID},
	}
}

// NewBattleResolvedEvent creates a battle resolved event
func NewBattleResolvedEvent(o domain.BattleOutcome) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BattleResolved,
		Payload: BattleResolvedPayloadV1{Outcome: o},
	}
}

// NewHarvestCollectedEvent creates a harvest collected event
func NewHarvestCollectedEvent(r domain.HarvestReward) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HarvestCollected,
		Payload: HarvestCollectedPayloadV1{Reward: r},
	}
}

// NewUserLoggedInEvent creates a login event
func NewUserLoggedInEvent(id domain.Identity) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UserLoggedIn,
		Payload: UserPayloadV1{Identity: id},
	}
}

// NewUserLoggedOutEvent creates a logout event
func NewUserLoggedOutEvent(id domain.Identity) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    UserLoggedOut,
		Payload: UserPayloadV1{Identity: id},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every handler for the event type synchronously and joins
// their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// PublishBestEffort publishes evt and logs a failure instead of returning
// it. Economic actions use this so a broken subscriber never undoes them.
// A nil bus is allowed.
func PublishBestEffort(ctx context.Context, bus Bus, evt Event) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
