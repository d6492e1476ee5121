package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/murkotick/financial-catalog-service/internal/app/catalog/domain"
	"github.com/murkotick/financial-catalog-service/internal/app/catalog/usecases/shared"
	"github.com/murkotick/financial-catalog-service/internal/pkg/logging"
)

// stagedID stands in for ids that are only assigned on commit.
const stagedID = "staged"

// Service keeps wizard sessions in memory. Sessions are not durable.
type Service struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	nextID   int64

	ttl    time.Duration
	repos  Repos
	writer *shared.Writer
}

func NewService(repos Repos, w *shared.Writer, ttl time.Duration) *Service {
	return &Service{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		repos:    repos,
		writer:   w,
	}
}

// Start validates the product step and opens a session for it.
func (s *Service) Start(details domain.ProductDetails) (*Session, error) {
	if err := validateProduct(details); err != nil {
		return nil, err
	}
	now := s.writer.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sess := &Session{
		ID:        s.nextID,
		Step:      StepProduct,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		Product:   details,
	}
	s.sessions[sess.ID] = sess
	logging.Debug("wizard session started", "session_id", sess.ID)
	return sess.snapshot(), nil
}

func (s *Service) Get(id int64) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id, s.writer.Now())
	if err != nil {
		return nil, err
	}
	return sess.snapshot(), nil
}

// Cancel drops the session and everything staged in it.
func (s *Service) Cancel(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id, s.writer.Now())
	if err != nil {
		return err
	}
	if sess.committing {
		return ErrSessionBusy
	}
	delete(s.sessions, id)
	return nil
}

func (s *Service) StageProduct(id int64, details domain.ProductDetails) (*Session, error) {
	if err := validateProduct(details); err != nil {
		return nil, err
	}
	return s.stage(id, StepProduct, func(sess *Session) { sess.Product = details })
}

func (s *Service) StagePricing(id int64, items []domain.PricingInput) (*Session, error) {
	if err := validatePricing(items, s.writer.Now()); err != nil {
		return nil, err
	}
	return s.stage(id, StepPricing, func(sess *Session) { sess.Pricing = items })
}

func (s *Service) StageFees(id int64, items []FeeStructureDraft) (*Session, error) {
	if err := validateFees(items, s.writer.Now()); err != nil {
		return nil, err
	}
	return s.stage(id, StepFees, func(sess *Session) { sess.Fees = items })
}

func (s *Service) StageLimits(id int64, items []domain.LimitInput) (*Session, error) {
	if err := validateLimits(items, s.writer.Now()); err != nil {
		return nil, err
	}
	return s.stage(id, StepLimits, func(sess *Session) { sess.Limits = items })
}

func (s *Service) StageDocuments(id int64, items []domain.DocumentInput) (*Session, error) {
	if err := validateDocuments(items, s.writer.Now()); err != nil {
		return nil, err
	}
	return s.stage(id, StepDocuments, func(sess *Session) { sess.Documents = items })
}

func (s *Service) StageLocalizations(id int64, items []domain.LocalizationInput) (*Session, error) {
	if err := validateLocalizations(items, s.writer.Now()); err != nil {
		return nil, err
	}
	return s.stage(id, StepLocalizations, func(sess *Session) { sess.Localizations = items })
}

// stage replaces the data of step once the session has reached the step
// before it. Staging refreshes the expiry.
func (s *Service) stage(id int64, step Step, apply func(*Session)) (*Session, error) {
	now := s.writer.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id, now)
	if err != nil {
		return nil, err
	}
	if sess.committing {
		return nil, ErrSessionBusy
	}
	if sess.Step < step-1 {
		return nil, ErrStepOutOfOrder
	}
	apply(sess)
	if step > sess.Step {
		sess.Step = step
	}
	sess.ExpiresAt = now.Add(s.ttl)
	return sess.snapshot(), nil
}

// Commit writes the staged product and every staged sub-entity in one
// transaction and closes the session. A failed commit keeps the session.
func (s *Service) Commit(ctx context.Context, id int64) (*Result, error) {
	now := s.writer.Now()

	s.mu.Lock()
	sess, err := s.lookup(id, now)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if sess.committing {
		s.mu.Unlock()
		return nil, ErrSessionBusy
	}
	sess.committing = true
	staged := sess.snapshot()
	s.mu.Unlock()

	res, err := s.commit(ctx, staged)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		sess.committing = false
		return nil, err
	}
	delete(s.sessions, id)
	logging.Info("wizard session committed", "session_id", id, "product_id", res.Product.ID())
	return res, nil
}

// Sweep removes expired sessions and reports how many were dropped.
func (s *Service) Sweep() int {
	now := s.writer.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.expired(now) && !sess.committing {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper sweeps on every tick until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				logging.Debug("wizard sessions expired", "count", n)
			}
		}
	}
}

// Len returns the number of open sessions.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// lookup must be called with mu held.
func (s *Service) lookup(id int64, now time.Time) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.expired(now) && !sess.committing {
		delete(s.sessions, id)
		return nil, ErrSessionExpired
	}
	return sess, nil
}
