package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/securenotes/go-secure-vault/internal/adapter"
	"github.com/securenotes/go-secure-vault/internal/config"
	"github.com/securenotes/go-secure-vault/internal/logger"
	"github.com/securenotes/go-secure-vault/internal/store"
	"github.com/securenotes/go-secure-vault/models"
)

// eventBufferSize bounds the replicator's event channel. A full buffer
// drops new events instead of blocking the loops.
const eventBufferSize = 32

type replicator struct {
	records store.RecordRepository
	remote  adapter.RemoteStore
	logger  *logger.Logger

	minBackoff time.Duration
	maxBackoff time.Duration

	events chan models.SyncEvent

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReplicator creates an idle [Replicator] over the given local and remote
// stores. Backoff bounds come from cfg; the replicator is inert until Start.
func NewReplicator(records store.RecordRepository, remote adapter.RemoteStore, cfg config.Sync, log *logger.Logger) Replicator {
	return &replicator{
		records:    records,
		remote:     remote,
		logger:     log,
		minBackoff: cfg.MinBackoff,
		maxBackoff: cfg.MaxBackoff,
		events:     make(chan models.SyncEvent, eventBufferSize),
	}
}

// Start implements [Replicator]. It pings the remote first so that bad
// credentials fail the call instead of looping; transient unreachability
// does not prevent the start, the loops retry on their own.
func (r *replicator) Start(ctx context.Context, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return ErrReplicationAlreadyStarted
	}
	if r.remote == nil {
		return ErrNoRemoteStore
	}

	if err := r.remote.Ping(ctx); err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			return fmt.Errorf("replication start: %w", err)
		}
		r.logger.Warn().
			Str("func", "replicator.Start").
			Err(err).
			Msg("remote unreachable at start, replication will retry")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(2)
	go r.pushLoop(loopCtx, ownerID)
	go r.pullLoop(loopCtx, ownerID)

	return nil
}

// Stop implements [Replicator]. It cancels the loops and blocks until both
// have exited. Safe to call when not running.
func (r *replicator) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}

func (r *replicator) Events() <-chan models.SyncEvent {
	return r.events
}

// pushLoop drains pending local writes to the remote store, waking on the
// repository's watch channel instead of polling.
func (r *replicator) pushLoop(ctx context.Context, ownerID string) {
	defer r.wg.Done()

	backoff := r.minBackoff
	for {
		err := r.pushPending(ctx, ownerID)
		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			r.logger.Err(err).
				Str("func", "replicator.pushLoop").
				Str("owner_id", ownerID).
				Msg("push round failed")
			r.emit(models.SyncEvent{Kind: models.SyncError, Direction: models.SyncPush, Err: err})
			if !r.sleep(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, r.maxBackoff)
			continue
		}

		backoff = r.minBackoff
		r.emit(models.SyncEvent{Kind: models.SyncPaused, Direction: models.SyncPush})

		select {
		case <-ctx.Done():
			return
		case <-r.records.Watch():
		}
	}
}

func (r *replicator) pushPending(ctx context.Context, ownerID string) error {
	pending, err := r.records.Pending(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("load pending records: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	r.emit(models.SyncEvent{Kind: models.SyncActive, Direction: models.SyncPush})

	var pushed []string
	for _, record := range pending {
		if err = r.pushRecord(ctx, record); err != nil {
			break
		}
		pushed = append(pushed, record.ID)
	}

	if len(pushed) > 0 {
		r.emit(models.SyncEvent{Kind: models.SyncChange, Direction: models.SyncPush, RecordIDs: pushed})
	}
	return err
}

// pushRecord sends one pending record. On a revision conflict the remote
// copy wins: it is fetched and applied locally, overwriting the local edit.
func (r *replicator) pushRecord(ctx context.Context, record models.VaultRecord) error {
	remoteRev, err := r.remote.Put(ctx, record)
	if err == nil {
		if markErr := r.records.MarkPushed(ctx, record.ID, record.Revision, remoteRev); markErr != nil {
			return fmt.Errorf("mark record pushed (id=%s): %w", record.ID, markErr)
		}
		return nil
	}
	if !errors.Is(err, store.ErrRevisionConflict) {
		return fmt.Errorf("push record (id=%s): %w", record.ID, err)
	}

	winner, err := r.remote.Get(ctx, record.ID)
	if err != nil {
		return fmt.Errorf("fetch conflict winner (id=%s): %w", record.ID, err)
	}
	if winner.OwnerID != record.OwnerID {
		// A foreign document under a colliding id never crosses the
		// owner boundary; the local pending write stays queued.
		return nil
	}
	if err = r.records.Apply(ctx, winner); err != nil {
		return fmt.Errorf("apply conflict winner (id=%s): %w", record.ID, err)
	}

	r.logger.Info().
		Str("func", "replicator.pushRecord").
		Str("record_id", record.ID).
		Str("remote_revision", winner.Revision).
		Msg("push conflict resolved in favor of remote copy")
	return nil
}

// pullLoop long-polls the remote changes feed and applies remote winners to
// the local store. The long poll itself paces the loop; backoff applies
// only after failures.
func (r *replicator) pullLoop(ctx context.Context, ownerID string) {
	defer r.wg.Done()

	since := ""
	backoff := r.minBackoff
	for {
		page, err := r.remote.Changes(ctx, ownerID, since)
		if err == nil {
			err = r.applyPage(ctx, ownerID, page)
		}

		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			r.logger.Err(err).
				Str("func", "replicator.pullLoop").
				Str("owner_id", ownerID).
				Str("since", since).
				Msg("pull round failed")
			r.emit(models.SyncEvent{Kind: models.SyncError, Direction: models.SyncPull, Err: err})
			if !r.sleep(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, r.maxBackoff)
		default:
			since = page.Since
			backoff = r.minBackoff
			if len(page.Records) == 0 {
				r.emit(models.SyncEvent{Kind: models.SyncPaused, Direction: models.SyncPull})
			}
		}
	}
}

// applyPage applies one changes-feed window. Remote revision ordering is
// authoritative: a remote document replaces the local copy unless the local
// revision generation is strictly ahead (an unpushed local edit, resolved
// by the push loop).
func (r *replicator) applyPage(ctx context.Context, ownerID string, page adapter.ChangesPage) error {
	if len(page.Records) == 0 {
		return nil
	}

	r.emit(models.SyncEvent{Kind: models.SyncActive, Direction: models.SyncPull})

	states, err := r.records.States(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("load local states: %w", err)
	}
	local := make(map[string]models.RecordState, len(states))
	for _, state := range states {
		local[state.ID] = state
	}

	var applied []string
	for _, record := range page.Records {
		if state, ok := local[record.ID]; ok {
			if state.Revision == record.Revision {
				// already converged, usually the echo of our own push
				continue
			}
			if store.RevisionGeneration(state.Revision) > store.RevisionGeneration(record.Revision) {
				continue
			}
		}

		if err = r.records.Apply(ctx, record); err != nil {
			return fmt.Errorf("apply remote record (id=%s): %w", record.ID, err)
		}
		applied = append(applied, record.ID)
	}

	if len(applied) > 0 {
		r.emit(models.SyncEvent{Kind: models.SyncChange, Direction: models.SyncPull, RecordIDs: applied})
	}
	return nil
}

func (r *replicator) emit(event models.SyncEvent) {
	event.At = time.Now().UTC()
	select {
	case r.events <- event:
	default:
		// a lagging consumer loses events, replication never stalls
	}
}

func (r *replicator) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func nextBackoff(current, max time.Duration) time.Duration {
	next := current * 2
	if next > max {
		next = max
	}
	return next
}
