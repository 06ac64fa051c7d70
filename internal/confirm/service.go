package confirm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-backoffice/internal/audit"
	"github.com/fekuna/omnipos-backoffice/internal/auth"
	"github.com/fekuna/omnipos-backoffice/internal/model"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/clock"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/i18n"
	"github.com/fekuna/omnipos-backoffice/internal/pkg/logger"
)

const DefaultTTL = 5 * time.Minute

type action struct {
	kind string
	op   Op
}

type registration struct {
	label string
	exec  Executor
}

type Service struct {
	store  Store
	audit  audit.UseCase
	clock  clock.Clock
	ttl    time.Duration
	logger logger.ZapLogger

	mu        sync.RWMutex
	executors map[action]registration
}

// NewService wires the confirmation flow. auditUC may be nil, in which case
// confirmed actions are only logged.
func NewService(store Store, auditUC audit.UseCase, clk clock.Clock, ttl time.Duration, log logger.ZapLogger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		store:     store,
		audit:     auditUC,
		clock:     clk,
		ttl:       ttl,
		logger:    log,
		executors: map[action]registration{},
	}
}

// Register makes op available on kind. label names the record in prompts.
func (s *Service) Register(kind string, op Op, label string, exec Executor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executors[action{kind, op}] = registration{label: label, exec: exec}
}

func (s *Service) lookup(kind string, op Op) (registration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.executors[action{kind, op}]
	return reg, ok
}

// Request records the first step and returns the pending action. No
// backend call happens here.
func (s *Service) Request(ctx context.Context, sessionID, kind string, op Op, targetID, note string) (*Pending, error) {
	reg, ok := s.lookup(kind, op)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", op, kind, ErrUnknownAction)
	}

	now := s.clock.Now()
	p := Pending{
		Token:     uuid.New().String(),
		SessionID: sessionID,
		Kind:      kind,
		Op:        op,
		TargetID:  targetID,
		Note:      note,
		Prompt:    i18n.FromContext(ctx).Label("confirm."+op.messageKey(), reg.label),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if sess, ok := auth.SessionFrom(ctx); ok {
		p.Actor = sess.Email
	}
	if err := s.store.Save(ctx, p, s.ttl); err != nil {
		return nil, fmt.Errorf("save confirmation: %w", err)
	}
	return &p, nil
}

// Confirm runs the pending action behind token exactly once.
func (s *Service) Confirm(ctx context.Context, sessionID, token string) (*Pending, *Outcome, error) {
	p, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if p.SessionID != sessionID {
		return nil, nil, ErrConfirmationForeign
	}
	if !s.clock.Now().Before(p.ExpiresAt) {
		_ = s.store.Delete(ctx, token)
		return &p, nil, ErrConfirmationExpired
	}
	// Another request may have confirmed the same token in between.
	if p, err = s.store.Take(ctx, token); err != nil {
		return nil, nil, err
	}

	reg, ok := s.lookup(p.Kind, p.Op)
	if !ok {
		return &p, nil, fmt.Errorf("%s %s: %w", p.Op, p.Kind, ErrUnknownAction)
	}

	out := reg.exec(ctx, p)
	s.logger.Info("confirmed action",
		zap.String("kind", p.Kind),
		zap.String("op", string(p.Op)),
		zap.String("target_id", p.TargetID),
		zap.Bool("ok", out.OK),
	)
	s.record(ctx, p, out)
	return &p, &out, nil
}

// Dismiss drops a pending action without running it.
func (s *Service) Dismiss(ctx context.Context, sessionID, token string) error {
	p, err := s.store.Get(ctx, token)
	if err != nil {
		return err
	}
	if p.SessionID != sessionID {
		return ErrConfirmationForeign
	}
	return s.store.Delete(ctx, token)
}

func (s *Service) record(ctx context.Context, p Pending, out Outcome) {
	if s.audit == nil {
		return
	}
	// The action already ran; a failed audit write must not change its result.
	_ = s.audit.Record(ctx, model.ActionLog{
		SessionID: p.SessionID,
		Actor:     p.Actor,
		Kind:      p.Kind,
		Action:    string(p.Op),
		TargetID:  p.TargetID,
		Succeeded: out.OK,
		Message:   out.Toast.Message,
	})
}
