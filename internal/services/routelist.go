package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"routeadmin/internal/domain"
	"routeadmin/internal/domain/models"
	"routeadmin/internal/utils"
)

// RoutesAPI is the remote backend the controller reads from and deletes on.
type RoutesAPI interface {
	List(ctx context.Context, f models.Filter) ([]models.Route, error)
	Delete(ctx context.Context, id models.RouteID, pass string) error
}

// AuditRecorder stores delete attempts. A nil recorder disables the journal.
type AuditRecorder interface {
	Record(ctx context.Context, e domain.AuditEntry) error
}

// State is everything the route list view renders. Snapshot returns a copy.
type State struct {
	Filter   models.Filter          `json:"filter"`
	Routes   []models.Route         `json:"routes"`
	Loading  bool                   `json:"loading"`
	Loaded   bool                   `json:"loaded"`
	Pending  models.PendingDeletion `json:"pending"`
	Deleting bool                   `json:"deleting"`
	Password string                 `json:"-"`
}

// RouteList owns the fetch lifecycle and the delete confirmation flow of
// one operator. Safe for concurrent use; the lock is never held across I/O.
type RouteList struct {
	API       RoutesAPI
	Audit     AuditRecorder
	SessionID string

	mu      sync.Mutex
	state   State
	notices []domain.Notice
	mounted bool
	token   uint64
	cancel  context.CancelFunc
}

func NewRouteList(api RoutesAPI) *RouteList {
	return &RouteList{
		API:   api,
		state: State{Routes: make([]models.Route, 0)},
	}
}

// Mount performs the initial load once; later calls do nothing.
func (l *RouteList) Mount(ctx context.Context) error {
	l.mu.Lock()
	if l.mounted {
		l.mu.Unlock()
		return nil
	}
	l.mounted = true
	l.mu.Unlock()
	return l.Load(ctx)
}

// SetFilter changes the origin/destination selection and reloads when it
// differs from the current one (or on the first call for a fresh controller).
func (l *RouteList) SetFilter(ctx context.Context, from, to string) error {
	next := models.Filter{From: from, To: to}.Normalize()

	l.mu.Lock()
	if l.mounted && l.state.Filter == next {
		l.mu.Unlock()
		return nil
	}
	l.mounted = true
	l.state.Filter = next
	l.mu.Unlock()
	return l.Load(ctx)
}

// Load fetches routes for the current filter. A newer Load cancels this one
// and its result is then dropped without a notice. On failure the previous
// list is kept and a fetch notice is queued.
func (l *RouteList) Load(ctx context.Context) error {
	l.mu.Lock()
	l.token++
	tok := l.token
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	filter := l.state.Filter
	l.state.Loading = true
	l.mu.Unlock()
	defer cancel()

	routes, err := l.API.List(ctx, filter)

	l.mu.Lock()
	defer l.mu.Unlock()

	if tok != l.token {
		utils.LogEvent(RequestIDFrom(ctx), "routes", "load_stale", fmt.Sprintf("token=%d latest=%d", tok, l.token))
		return nil
	}
	l.cancel = nil
	l.state.Loading = false

	if err != nil {
		utils.LogEvent(RequestIDFrom(ctx), "routes", "load_failed", err.Error())
		l.pushLocked(domain.NoticeFetchFailure, domain.MsgFetchFailure)
		return err
	}

	l.state.Routes = routes
	l.state.Loaded = true
	utils.LogEvent(RequestIDFrom(ctx), "routes", "load", fmt.Sprintf("from=%q to=%q count=%d", filter.From, filter.To, len(routes)))
	return nil
}

// RequestDelete opens the confirmation dialog for id. No request is sent.
func (l *RouteList) RequestDelete(id models.RouteID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Pending = models.PendingDeletion{RouteID: id, DialogOpen: true}
}

// Cancel closes the dialog and forgets the target. The list is untouched.
func (l *RouteList) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Pending = models.PendingDeletion{}
}

// SetPassword stores the password sent with the next delete.
func (l *RouteList) SetPassword(pass string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.Password = pass
}

// Confirm deletes the pending route. Without a pending id, or while another
// confirm for this controller is in flight, it does nothing and returns "".
// Whatever the backend answers, the dialog closes, the target is cleared and
// the list is reloaded.
func (l *RouteList) Confirm(ctx context.Context) (domain.DeleteOutcome, error) {
	l.mu.Lock()
	if !l.state.Pending.HasTarget() || l.state.Deleting {
		l.mu.Unlock()
		return "", nil
	}
	id := l.state.Pending.RouteID
	pass := l.state.Password
	l.state.Deleting = true
	l.mu.Unlock()

	delErr := l.API.Delete(ctx, id, pass)
	outcome := outcomeOf(delErr)

	l.mu.Lock()
	l.state.Deleting = false
	l.state.Pending = models.PendingDeletion{}
	if delErr != nil {
		l.pushLocked(domain.NoticeDeleteFailure, domain.MsgDeleteFailure)
	}
	l.mu.Unlock()

	reqID := RequestIDFrom(ctx)
	if delErr != nil {
		utils.LogEvent(reqID, "routes", "delete_failed", fmt.Sprintf("id=%s outcome=%s err=%v", id, outcome, delErr))
	} else {
		utils.LogEvent(reqID, "routes", "delete", "id="+id.String())
	}
	l.record(ctx, id, outcome, delErr)

	loadErr := l.Load(ctx)
	if delErr != nil {
		return outcome, delErr
	}
	return outcome, loadErr
}

func (l *RouteList) record(ctx context.Context, id models.RouteID, outcome domain.DeleteOutcome, delErr error) {
	if l.Audit == nil {
		return
	}
	entry := domain.AuditEntry{
		RouteID:   id.String(),
		Outcome:   outcome,
		RequestID: RequestIDFrom(ctx),
		SessionID: l.SessionID,
		CreatedAt: utils.NowUTC(),
	}
	var de domain.DeleteError
	if errors.As(delErr, &de) {
		if de.Err != nil {
			entry.Detail = de.Err.Error()
		} else {
			entry.Detail = de.Body
		}
	}
	if err := l.Audit.Record(ctx, entry); err != nil {
		utils.LogEvent(entry.RequestID, "audit", "record_failed", err.Error())
	}
}

func outcomeOf(err error) domain.DeleteOutcome {
	if err == nil {
		return domain.OutcomeSuccess
	}
	var de domain.DeleteError
	if errors.As(err, &de) && de.Err == nil {
		return domain.OutcomeFailure
	}
	return domain.OutcomeError
}

// Snapshot returns a copy of the current state for rendering.
func (l *RouteList) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.state
	s.Routes = append(make([]models.Route, 0, len(l.state.Routes)), l.state.Routes...)
	return s
}

// TakeNotices returns the queued notices and clears the queue.
func (l *RouteList) TakeNotices() []domain.Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.notices
	l.notices = nil
	return out
}

func (l *RouteList) pushLocked(kind domain.NoticeKind, msg string) {
	l.notices = append(l.notices, domain.Notice{Kind: kind, Message: msg})
}
