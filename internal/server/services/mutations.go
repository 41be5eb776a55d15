package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/logging"
	"github.com/dmitrijs2005/libsync/internal/server/metrics"
	"github.com/dmitrijs2005/libsync/internal/server/models"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libsync/internal/server/versions"
)

// Mutation is one logical write to a library.
type Mutation struct {
	// Op names the operation in logs and metrics.
	Op string
	// Create is set by the mutation that creates the library; it skips the
	// existence check.
	Create bool
	// Changes are the entities known to be touched up front.
	Changes models.ChangeSet
	// Apply performs the domain change inside the transaction and returns
	// the entities (and visibility transitions) it touched.
	Apply func(ctx context.Context, r repomanager.Repos) (models.ChangeSet, error)
	// IfUnmodifiedSince, when positive, must equal the library version at
	// the start of the mutation.
	IfUnmodifiedSince int64
}

// Coordinator runs mutations: one lease, one transaction and one new
// version per call, shared by every entity the mutation touches.
type Coordinator struct {
	store   repomanager.Store
	clock   *versions.Clock
	metrics *metrics.Metrics
	log     logging.Logger
}

func NewCoordinator(store repomanager.Store, clock *versions.Clock, m *metrics.Metrics, log logging.Logger) *Coordinator {
	return &Coordinator{
		store:   store,
		clock:   clock,
		metrics: m,
		log:     log.With("module", "coordinator"),
	}
}

// Apply commits m against lib and returns the new library version. Every
// failure matches common.ErrMutationFailed as well as its cause. Nothing
// is retried.
func (c *Coordinator) Apply(ctx context.Context, lib models.LibraryID, m Mutation) (int64, error) {
	start := time.Now()
	version, transitions, err := c.apply(ctx, lib, m)
	c.metrics.ObserveMutation(m.Op, err, time.Since(start))
	if err != nil {
		c.log.Warn(ctx, "mutation failed", "op", m.Op, "library", lib.String(), "error", err)
		return 0, fmt.Errorf("%w: %s %s: %w", common.ErrMutationFailed, m.Op, lib, err)
	}

	for _, t := range transitions {
		c.metrics.ObserveVisibility(t.FromZero)
	}
	c.log.Debug(ctx, "mutation committed", "op", m.Op, "library", lib.String(), "version", version)
	return version, nil
}

func (c *Coordinator) apply(ctx context.Context, lib models.LibraryID, m Mutation) (int64, []models.VisibilityTransition, error) {
	if !lib.Valid() {
		return 0, nil, fmt.Errorf("%w: invalid library %q", common.ErrorValidation, lib)
	}

	waitStart := time.Now()
	lease, err := c.clock.Acquire(ctx, lib)
	c.metrics.ObserveLockWait(time.Since(waitStart))
	if err != nil {
		return 0, nil, err
	}
	defer lease.Release()

	var version int64
	var transitions []models.VisibilityTransition
	err = c.store.Update(ctx, func(ctx context.Context, r repomanager.Repos) error {
		if !m.Create {
			current, err := r.Libraries().Get(ctx, lib)
			if err != nil {
				return err
			}
			if m.IfUnmodifiedSince > 0 && current.Version != m.IfUnmodifiedSince {
				return fmt.Errorf("%w: library %s is at version %d, not %d",
					common.ErrVersionConflict, lib, current.Version, m.IfUnmodifiedSince)
			}
		}

		var cs models.ChangeSet
		cs.Merge(m.Changes)
		if m.Apply != nil {
			extra, err := m.Apply(ctx, r)
			if err != nil {
				return err
			}
			cs.Merge(extra)
		}
		// the group record is versioned with its library
		if lib.Type == models.LibraryGroup && !cs.Contains(models.GroupEntity(lib.ID)) {
			cs.Touch(models.GroupEntity(lib.ID))
		}

		next, err := lease.Next(ctx, r.Libraries())
		if err != nil {
			return err
		}
		if err := r.Libraries().SetVersion(ctx, lib, next); err != nil {
			return err
		}
		for _, ch := range cs.Changes() {
			if ch.Deleted {
				err = r.Entities().Tombstone(ctx, lib, ch.Entity, next)
			} else {
				err = r.Entities().SetVersion(ctx, lib, ch.Entity, next)
			}
			if err != nil {
				return err
			}
		}
		for _, t := range cs.Transitions() {
			if err := onItemCountTransition(ctx, r, t); err != nil {
				return err
			}
		}

		version = next
		transitions = cs.Transitions()
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return version, transitions, nil
}

// onItemCountTransition keeps the search index in step with a group's
// item count crossing zero.
func onItemCountTransition(ctx context.Context, r repomanager.Repos, t models.VisibilityTransition) error {
	switch {
	case t.FromZero:
		return r.Visibility().SetPopulated(ctx, t.GroupID, true)
	case t.ToZero:
		return r.Visibility().SetPopulated(ctx, t.GroupID, false)
	default:
		return nil
	}
}
