package access

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/statisticsnorway/dataset-access-sub000/internal/access/metrics"
	"github.com/statisticsnorway/dataset-access-sub000/internal/audit"
	"github.com/statisticsnorway/dataset-access-sub000/internal/store"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/platform/sentinel"
	pstrings "github.com/statisticsnorway/dataset-access-sub000/pkg/platform/strings"
)

// DefaultDecisionTimeout bounds one access decision end to end. A decision
// that does not complete in time fails closed at the transport boundary.
const DefaultDecisionTimeout = 10 * time.Second

// Provisioner synthesizes an identity for a previously-unknown user. A
// (nil, nil) return means the user is not eligible; the decision then denies.
type Provisioner interface {
	TryProvision(ctx context.Context, userID string) (*domain.User, error)
}

// Publisher receives the audit event for every completed decision.
type Publisher interface {
	Publish(ctx context.Context, event audit.AccessEvent)
}

// Service is the access decision engine. It resolves an identity to its
// effective role set (direct roles plus group-inherited roles) and evaluates
// the roles in roleId sort order until one grants access.
type Service struct {
	users       store.UserStore
	roles       store.RoleStore
	groups      store.GroupStore
	provisioner Provisioner
	publisher   Publisher
	timeout     time.Duration
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithProvisioner enables template-driven identity auto-provisioning for
// unknown users.
func WithProvisioner(p Provisioner) Option {
	return func(s *Service) { s.provisioner = p }
}

// WithPublisher enables audit event publication for every decision.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithTimeout overrides the per-decision deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs the decision engine around its store collaborators.
func NewService(users store.UserStore, roles store.RoleStore, groups store.GroupStore, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		users:   users,
		roles:   roles,
		groups:  groups,
		timeout: DefaultDecisionTimeout,
		logger:  logger,
		tracer:  otel.Tracer("access"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasAccess decides whether the user may perform the requested operation.
// Unknown identities are denied unless the provisioner creates them; store
// and provisioning failures propagate as errors, never as silent denials.
func (s *Service) HasAccess(ctx context.Context, req EvaluateRequest) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, "access.HasAccess", trace.WithAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("privilege", req.Privilege.String()),
		attribute.String("path", req.Path),
	))
	defer span.End()

	start := time.Now()
	result, err := s.evaluate(ctx, req)
	s.metrics.ObserveEvaluateLatency(time.Since(start))

	switch {
	case err != nil:
		s.metrics.IncrementOutcome("error")
		return nil, s.classify(ctx, err)
	case result.Allowed:
		s.metrics.IncrementOutcome("allowed")
	default:
		s.metrics.IncrementOutcome("denied")
	}

	s.publish(ctx, req, result)
	return result, nil
}

func (s *Service) evaluate(ctx context.Context, req EvaluateRequest) (*Result, error) {
	user, err := s.resolveIdentity(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Unknown and not provisionable: fail closed.
		return &Result{Allowed: false, Reason: ReasonUnknownUser}, nil
	}

	roleIDs, err := s.effectiveRoleIDs(ctx, user)
	if err != nil {
		return nil, err
	}

	roles, err := s.roles.GetMany(ctx, roleIDs)
	if err != nil {
		return nil, err
	}

	// First-match-wins: evaluation order (ascending roleId) determines which
	// role is cited in the trace, not the outcome.
	for _, role := range roles {
		if RoleMatches(role, req) {
			return &Result{Allowed: true, MatchedRole: role.RoleID}, nil
		}
	}
	return &Result{Allowed: false, Reason: ReasonNoMatchingRole}, nil
}

// resolveIdentity fetches the user, falling back to the provisioner on a
// miss. Returns (nil, nil) when the user is unknown and ineligible.
func (s *Service) resolveIdentity(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, err
	}
	if s.provisioner == nil {
		return nil, nil
	}
	user, err = s.provisioner.TryProvision(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		s.metrics.IncrementUsersProvisioned()
		s.logger.InfoContext(ctx, "identity auto-provisioned", "user_id", user.UserID)
	}
	return user, nil
}

// effectiveRoleIDs is the deduplicated union of the user's direct roles and
// the roles of every group the user belongs to. Groups are fetched
// concurrently; a dangling group reference is dropped silently, mirroring the
// dangling-role rule.
func (s *Service) effectiveRoleIDs(ctx context.Context, user *domain.User) ([]string, error) {
	ids := append([]string(nil), user.Roles...)

	if len(user.Groups) > 0 {
		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		for _, groupID := range user.Groups {
			g.Go(func() error {
				group, err := s.groups.Get(gctx, groupID)
				if err != nil {
					if errors.Is(err, sentinel.ErrNotFound) {
						return nil
					}
					return err
				}
				mu.Lock()
				ids = append(ids, group.Roles...)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return pstrings.DedupeAndSort(ids), nil
}

// classify maps engine failures onto the error taxonomy the transport layer
// understands. Timeouts fail closed as explicit errors, never as denials.
func (s *Service) classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "access decision timed out")
	case dErrors.Has(err, dErrors.CodeValidation), dErrors.Has(err, dErrors.CodeInvalidInput):
		return err
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "backing store unavailable")
	default:
		s.logger.ErrorContext(ctx, "access decision failed", "error", err)
		return dErrors.Wrap(err, dErrors.CodeInternal, "access decision failed")
	}
}

func (s *Service) publish(ctx context.Context, req EvaluateRequest, result *Result) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(ctx, audit.AccessEvent{
		UserID:      req.UserID,
		Privilege:   req.Privilege.String(),
		Path:        req.Path,
		Valuation:   req.Valuation.String(),
		State:       req.State.String(),
		Allowed:     result.Allowed,
		MatchedRole: result.MatchedRole,
		ObservedAt:  time.Now(),
	})
}
