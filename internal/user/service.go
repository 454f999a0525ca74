// Package user is the mock identity collaborator. It records who is
// playing and notifies listeners on login; it never verifies anything and
// the economy never consults it.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/osse101/CaseSim_Go/internal/domain"
	"github.com/osse101/CaseSim_Go/internal/event"
	"github.com/osse101/CaseSim_Go/internal/logger"
	"github.com/osse101/CaseSim_Go/internal/repository"
	"github.com/osse101/CaseSim_Go/internal/utils"
)

// LoginCallback is invoked once per login or restore
type LoginCallback func(ctx context.Context, id domain.Identity)

// Service defines the identity operations
type Service interface {
	Login(ctx context.Context, name string) (domain.Identity, error)
	Logout(ctx context.Context) error
	Current() (domain.Identity, bool)
	Restore(ctx context.Context) (domain.Identity, bool, error)
	OnLogin(cb LoginCallback)
}

type service struct {
	kv  repository.KeyValue
	bus event.Bus
	rnd utils.RandomSource

	mu        sync.RWMutex
	current   *domain.Identity
	callbacks []LoginCallback
}

// NewService creates the identity stub. bus may be nil.
func NewService(kv repository.KeyValue, bus event.Bus, rnd utils.RandomSource) Service {
	if rnd == nil {
		rnd = utils.NewRandomSource()
	}
	return &service{kv: kv, bus: bus, rnd: rnd}
}

// OnLogin registers a callback for future logins
func (s *service) OnLogin(cb LoginCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, cb)
}

// Login stores a mock identity. An empty name gets a generated one.
func (s *service) Login(ctx context.Context, name string) (domain.Identity, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > MaxNameLength {
		return domain.Identity{}, fmt.Errorf(ErrMsgNameTooLong, domain.ErrInvalidInput, MaxNameLength)
	}
	if name == "" {
		suffix := utils.RandomInt64From(s.rnd, 0, maxGeneratedSuffix-1)
		name = DefaultNamePrefix + strconv.FormatInt(suffix, 10)
	}

	id := domain.Identity{Name: name, Email: DefaultEmail, Picture: DefaultPicture}
	raw, err := json.Marshal(id)
	if err != nil {
		return domain.Identity{}, fmt.Errorf(ErrMsgEncodeIdentity, err)
	}
	if err := s.kv.SetMany(ctx, map[string]string{domain.KeyUser: string(raw)}); err != nil {
		return domain.Identity{}, err
	}

	s.setCurrent(&id)
	logger.FromContext(ctx).Info(LogMsgLoggedIn, "name", id.Name)
	s.notify(ctx, id)
	event.PublishBestEffort(ctx, s.bus, event.NewUserLoggedInEvent(id))
	return id, nil
}

// Logout forgets the identity. Logging out without a session is a no-op.
func (s *service) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, domain.KeyUser); err != nil {
		return err
	}

	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev != nil {
		logger.FromContext(ctx).Info(LogMsgLoggedOut, "name", prev.Name)
		event.PublishBestEffort(ctx, s.bus, event.NewUserLoggedOutEvent(*prev))
	}
	return nil
}

// Current returns the logged-in identity, if any
func (s *service) Current() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Identity{}, false
	}
	return *s.current, true
}

// Restore loads a stored identity at startup and fires the login callbacks.
// An unreadable record is treated as no session.
func (s *service) Restore(ctx context.Context) (domain.Identity, bool, error) {
	log := logger.FromContext(ctx)

	raw, found, err := s.kv.Get(ctx, domain.KeyUser)
	if err != nil {
		return domain.Identity{}, false, err
	}
	if !found {
		log.Debug(LogMsgNoSession)
		return domain.Identity{}, false, nil
	}

	var id domain.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil || id.Name == "" {
		if err == nil {
			err = errors.New("empty name")
		}
		log.Warn(LogMsgCorruptSession, "error", fmt.Errorf(ErrMsgDecodeIdentity, domain.ErrCorruptState, err))
		return domain.Identity{}, false, nil
	}

	s.setCurrent(&id)
	log.Info(LogMsgRestored, "name", id.Name)
	s.notify(ctx, id)
	return id, true, nil
}

func (s *service) setCurrent(id *domain.Identity) {
	s.mu.Lock()
	s.current = id
	s.mu.Unlock()
}

func (s *service) notify(ctx context.Context, id domain.Identity) {
	s.mu.RLock()
	cbs := append([]LoginCallback(nil), s.callbacks...)
	s.mu.RUnlock()
	for _, cb := range cbs {
		cb(ctx, id)
	}
}
