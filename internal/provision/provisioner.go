// Package provision synthesizes identities for unknown users from a
// configured template. Eligibility is strict: the userId must be a plain
// email address on the single configured auto-provisioning domain.
package provision

import (
	"context"
	"log/slog"
	"time"

	"github.com/statisticsnorway/dataset-access-sub000/internal/store"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/domain"
	dErrors "github.com/statisticsnorway/dataset-access-sub000/pkg/domain-errors"
	"github.com/statisticsnorway/dataset-access-sub000/pkg/email"
)

// DefaultWriteTimeout bounds the provisioning writes triggered mid-decision.
// It is shorter than the decision deadline so a hanging write surfaces as a
// provisioning error rather than eating the whole request budget.
const DefaultWriteTimeout = 5 * time.Second

// Provisioner creates a user and its roles from the template on first access.
type Provisioner struct {
	users        store.UserStore
	roles        store.RoleStore
	domain       string
	template     *Template
	writeTimeout time.Duration
	logger       *slog.Logger
}

// Option configures the Provisioner.
type Option func(*Provisioner)

// WithWriteTimeout overrides the bound on provisioning store writes.
func WithWriteTimeout(d time.Duration) Option {
	return func(p *Provisioner) { p.writeTimeout = d }
}

// New constructs a provisioner for one domain/template pair. Holding at most
// one pair is a known limitation of the design, not a multi-tenant mechanism.
func New(users store.UserStore, roles store.RoleStore, autoProvisionDomain string, template *Template, logger *slog.Logger, opts ...Option) *Provisioner {
	p := &Provisioner{
		users:        users,
		roles:        roles,
		domain:       autoProvisionDomain,
		template:     template,
		writeTimeout: DefaultWriteTimeout,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TryProvision synthesizes and persists an identity for userID. It returns
// (nil, nil) when the user is ineligible: the caller must then deny access.
// Store-write failures propagate as errors since a half-provisioned identity
// would be a correctness hazard.
//
// Provisioning is not idempotent-guarded against concurrent first accesses by
// the same identity; the stores' upsert semantics make the race safe at the
// cost of redundant writes.
func (p *Provisioner) TryProvision(ctx context.Context, userID string) (*domain.User, error) {
	local, dom, ok := email.Split(userID)
	if !ok || dom != p.domain {
		return nil, nil
	}

	instance, err := p.template.Instantiate(local)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "provisioning template produced an invalid document")
	}

	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	user := instance.User
	if err := p.users.Upsert(ctx, &user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist provisioned user")
	}
	for i := range instance.Roles {
		if err := p.roles.Upsert(ctx, &instance.Roles[i]); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist provisioned role")
		}
	}

	p.logger.InfoContext(ctx, "provisioned identity from template",
		"user_id", user.UserID,
		"roles", len(instance.Roles),
	)
	return &user, nil
}
