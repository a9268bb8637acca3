package adminclient

import (
	"sync"
	"time"

	"github.com/talemaro/wheel-backend/utils/logger"
)

const (
	// RefreshBuffer is how far ahead of expiry a long-lived session is
	// renewed.
	RefreshBuffer = 24 * time.Hour
	// MinSessionHeadroom is the latest point before expiry a renewal may be
	// scheduled, so network latency cannot cross the deadline.
	MinSessionHeadroom = 5 * time.Minute
	// MinRefreshInterval floors the delay so a short-lived session is not
	// renewed in a tight loop.
	MinRefreshInterval = 5 * time.Minute
)

// RefreshDelay computes how long to wait before renewing a session that
// expires in untilExpiry. Sessions comfortably inside the buffer renew a full
// buffer early; shorter ones renew between the interval floor and the
// headroom ceiling. A non-positive result means renew right now.
func RefreshDelay(untilExpiry time.Duration) time.Duration {
	var delay time.Duration
	if untilExpiry > RefreshBuffer {
		delay = untilExpiry - RefreshBuffer
	} else {
		delay = untilExpiry - MinSessionHeadroom
		if delay < MinRefreshInterval {
			delay = MinRefreshInterval
		}
		if delay < 0 {
			delay = 0
		}
	}

	latestAllowed := untilExpiry - MinSessionHeadroom
	if latestAllowed < 0 {
		latestAllowed = 0
	}
	if delay > latestAllowed {
		delay = latestAllowed
	}
	return delay
}

// SessionAPI is the slice of Client the keeper needs.
type SessionAPI interface {
	Refresh(sessionID string) (*Session, error)
	Logout(sessionID string) error
}

// Keeper holds one cached admin session and keeps it alive with a single
// cancellable timer. Each successful renewal re-arms the timer against the
// new expiry; any failed renewal discards the session and signs the user out.
//
// gen invalidates timer callbacks: cancelling bumps it, and a callback whose
// captured generation no longer matches is a no-op. Stopping a *time.Timer
// that already fired does not stop its callback, so the counter is what
// actually guarantees one renewal chain per held session.
type Keeper struct {
	api         SessionAPI
	store       Store
	onSignedOut func()

	mu      sync.Mutex
	session *Session
	timer   *time.Timer
	gen     uint64
	now     func() time.Time
}

// NewKeeper builds a keeper. onSignedOut may be nil; when set it fires once
// each time the cached session is discarded after a failed renewal.
func NewKeeper(api SessionAPI, store Store, onSignedOut func()) *Keeper {
	return &Keeper{
		api:         api,
		store:       store,
		onSignedOut: onSignedOut,
		now:         time.Now,
	}
}

// Start restores the persisted session. An absent or already-expired session
// is discarded and nil is returned: the caller must log in. A live one is
// refreshed against the server immediately, which both validates it (catching
// revocation and clock drift while the client was closed) and extends it; a
// failed refresh also discards. On success the renewal timer is armed.
func (k *Keeper) Start() (*Session, error) {
	stored, err := k.store.Load()
	if err != nil {
		return nil, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if stored == nil || !stored.ExpiresAt.After(k.now()) {
		k.clearLocked()
		return nil, nil
	}

	session, err := k.api.Refresh(stored.SessionID)
	if err != nil {
		logger.Warnf("Stored admin session rejected, discarding: %v", err)
		k.clearLocked()
		return nil, nil
	}

	if err := k.adoptLocked(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Adopt replaces the cached session (after a fresh login), cancelling any
// pending renewal before re-arming.
func (k *Keeper) Adopt(session *Session) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.adoptLocked(session)
}

// Session returns the currently held session, or nil when signed out.
func (k *Keeper) Session() *Session {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.session
}

// Stop cancels the pending renewal without touching the persisted session.
func (k *Keeper) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.cancelTimerLocked()
}

// SignOut revokes the session server-side (best effort) and clears the local
// copy.
func (k *Keeper) SignOut() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.session != nil {
		if err := k.api.Logout(k.session.SessionID); err != nil {
			logger.Warnf("Failed to revoke admin session: %v", err)
		}
	}
	k.clearLocked()
}

func (k *Keeper) adoptLocked(session *Session) error {
	k.cancelTimerLocked()
	k.session = session
	if err := k.store.Save(session); err != nil {
		return err
	}
	k.scheduleLocked(true)
	return nil
}

func (k *Keeper) scheduleLocked(allowImmediate bool) {
	if k.session == nil {
		return
	}

	delay := RefreshDelay(k.session.ExpiresAt.Sub(k.now()))
	if delay <= 0 {
		if allowImmediate {
			k.renewLocked()
			return
		}
		// The session we just renewed is still inside the headroom (TTL
		// shorter than the headroom); pace follow-ups at the floor instead
		// of looping.
		delay = MinRefreshInterval
	}

	gen := k.gen
	k.timer = time.AfterFunc(delay, func() {
		k.renewScheduled(gen)
	})
}

// renewScheduled is the timer callback. The generation check turns a stale
// callback — one that fired before a replace or clear could stop it — into a
// no-op, and the network call runs outside the lock so Session and Stop stay
// responsive while a renewal is on the wire.
func (k *Keeper) renewScheduled(gen uint64) {
	k.mu.Lock()
	if gen != k.gen || k.session == nil {
		k.mu.Unlock()
		return
	}
	k.timer = nil
	sessionID := k.session.SessionID
	k.mu.Unlock()

	session, err := k.api.Refresh(sessionID)

	k.mu.Lock()
	defer k.mu.Unlock()
	if gen != k.gen || k.session == nil {
		// Replaced or signed out while the refresh was in flight; whoever
		// did that owns the renewal chain now.
		return
	}
	if err != nil {
		logger.Warnf("Failed to refresh admin session automatically: %v", err)
		k.clearLocked()
		if k.onSignedOut != nil {
			k.onSignedOut()
		}
		return
	}

	k.session = session
	if err := k.store.Save(session); err != nil {
		logger.Errorf("Failed to persist refreshed admin session: %v", err)
	}
	k.scheduleLocked(false)
}

// renewLocked renews synchronously under the lock; used when adoption or
// startup finds the session already inside the headroom.
func (k *Keeper) renewLocked() {
	if k.session == nil {
		return
	}

	session, err := k.api.Refresh(k.session.SessionID)
	if err != nil {
		logger.Warnf("Failed to refresh admin session automatically: %v", err)
		k.clearLocked()
		if k.onSignedOut != nil {
			k.onSignedOut()
		}
		return
	}

	k.session = session
	if err := k.store.Save(session); err != nil {
		logger.Errorf("Failed to persist refreshed admin session: %v", err)
	}
	k.scheduleLocked(false)
}

func (k *Keeper) clearLocked() {
	k.cancelTimerLocked()
	k.session = nil
	if err := k.store.Clear(); err != nil {
		logger.Errorf("Failed to clear stored admin session: %v", err)
	}
}

// cancelTimerLocked stops any pending timer and bumps the generation so a
// callback that already fired and is waiting on the lock does nothing.
func (k *Keeper) cancelTimerLocked() {
	k.gen++
	if k.timer != nil {
		k.timer.Stop()
		k.timer = nil
	}
}
