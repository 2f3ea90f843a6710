package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/core/ports"
	"github.com/mortgagecenter/mortgage-client/internal/infrastructure/metrics"
)

// ListController holds the session's applications as last fetched and
// performs deletes against them. It is the only writer of the list.
//
// Refreshes are numbered. A response is applied only when it is newer than
// the last applied one and was issued at or after the latest mutation
// barrier, so a refresh started before a delete or save cannot overwrite
// the list fetched after it.
type ListController struct {
	api  ports.MortgageAPI
	cred Credential
	log  zerolog.Logger

	mu       sync.Mutex
	items    []domain.Mortgage
	issued   uint64
	applied  uint64
	barrier  uint64
	deleting map[domain.MortgageID]struct{}
	lastErr  error
}

func NewListController(api ports.MortgageAPI, cred Credential, log zerolog.Logger) *ListController {
	return &ListController{
		api:      api,
		cred:     cred,
		log:      log.With().Str("component", "list").Logger(),
		deleting: make(map[domain.MortgageID]struct{}),
	}
}

// Refresh fetches every record of the session and replaces the list
// wholesale. A stale response is dropped silently.
func (l *ListController) Refresh(ctx context.Context) error {
	token, err := l.cred.Token()
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.issued++
	seq := l.issued
	l.mu.Unlock()

	items, err := l.api.List(ctx, token)
	if err != nil {
		l.mu.Lock()
		l.lastErr = err
		l.mu.Unlock()
		l.log.Error().Err(err).Msg("refresh failed")
		l.cred.Reject(ctx, err)
		return fmt.Errorf("refresh: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq <= l.applied || seq < l.barrier {
		metrics.StaleRefreshesTotal.Inc()
		l.log.Debug().Uint64("seq", seq).Uint64("applied", l.applied).Msg("stale refresh discarded")
		return nil
	}
	if items == nil {
		items = []domain.Mortgage{}
	}
	l.items = items
	l.applied = seq
	l.lastErr = nil
	return nil
}

// RefreshAfterMutation raises the mutation barrier and refreshes. Any
// refresh still in flight from before the call is discarded on arrival.
func (l *ListController) RefreshAfterMutation(ctx context.Context) error {
	l.mu.Lock()
	l.barrier = l.issued + 1
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// Delete removes a persisted record and refreshes the list. An empty id is
// rejected before any request. On failure the list is left as it was.
func (l *ListController) Delete(ctx context.Context, id domain.MortgageID) error {
	if id == "" {
		return domain.ErrMissingID
	}
	token, err := l.cred.Token()
	if err != nil {
		return err
	}

	l.mu.Lock()
	if _, busy := l.deleting[id]; busy {
		l.mu.Unlock()
		return domain.ErrDeleteInProgress
	}
	l.deleting[id] = struct{}{}
	l.mu.Unlock()

	err = l.api.Delete(ctx, token, id)

	l.mu.Lock()
	delete(l.deleting, id)
	if err != nil {
		l.lastErr = err
	}
	l.mu.Unlock()

	if err != nil {
		l.log.Error().Err(err).Str("id", string(id)).Msg("delete failed")
		l.cred.Reject(ctx, err)
		return fmt.Errorf("delete %s: %w", id, err)
	}
	l.log.Info().Str("id", string(id)).Msg("mortgage deleted")
	return l.RefreshAfterMutation(ctx)
}

// Items returns a copy of the current list.
func (l *ListController) Items() []domain.Mortgage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Mortgage, len(l.items))
	copy(out, l.items)
	return out
}

func (l *ListController) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Deleting reports whether a delete of id is in flight.
func (l *ListController) Deleting(id domain.MortgageID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.deleting[id]
	return ok
}

func (l *ListController) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Clear drops the in-memory list, e.g. on logout.
func (l *ListController) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.barrier = l.issued + 1
	l.lastErr = nil
}
