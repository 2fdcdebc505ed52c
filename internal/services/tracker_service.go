package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"dayboard/internal/store"
	"dayboard/internal/websocket"
)

var ErrNotTracking = errors.New("no active session")

// Tracker states. The state is an explicit enum derived from the store once
// at startup and on every transition, never re-inferred ad hoc.
type TrackerState string

const (
	StateIdle     TrackerState = "idle"
	StateTracking TrackerState = "tracking"
)

type TrackerTimeLogStore interface {
	GetOpen(ctx context.Context) (store.TimeLog, error)
	Insert(ctx context.Context, id, categoryID string, start time.Time) error
	Close(ctx context.Context, id string, end time.Time) error
	Delete(ctx context.Context, id string) error
}

type Broadcaster interface {
	BroadcastChange(event websocket.Event)
	BroadcastTick(tick websocket.Tick)
}

// TrackerService owns the single open time session. At most one session
// system-wide is open; transitions go to the store first and mutate local
// state only after the store confirms.
type TrackerService struct {
	logs         TrackerTimeLogStore
	hub          Broadcaster
	discardUnder time.Duration
	tickEvery    time.Duration
	now          func() time.Time
	newID        func() string

	mu       sync.Mutex
	state    TrackerState
	open     store.TimeLog
	elapsed  int64
	stopTick chan struct{}
}

type TrackerStatus struct {
	State          TrackerState `json:"state"`
	SessionID      string       `json:"session_id,omitempty"`
	CategoryID     string       `json:"category_id,omitempty"`
	StartTime      *time.Time   `json:"start_time,omitempty"`
	ElapsedSeconds int64        `json:"elapsed_seconds"`
}

func NewTrackerService(logs TrackerTimeLogStore, hub Broadcaster, discardUnder time.Duration, now func() time.Time, newID func() string) *TrackerService {
	return &TrackerService{
		logs:         logs,
		hub:          hub,
		discardUnder: discardUnder,
		tickEvery:    time.Second,
		now:          now,
		newID:        newID,
		state:        StateIdle,
	}
}

// Recover reconstructs tracking state from the store after a restart. A
// lingering open log resumes with elapsed = now - start_time.
func (s *TrackerService) Recover(ctx context.Context) error {
	open, err := s.logs.GetOpen(ctx)
	if errors.Is(err, store.ErrNoOpenLog) {
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateTracking
	s.open = open
	s.elapsed = int64(s.now().Sub(open.StartTime).Seconds())
	s.startTicker()
	return nil
}

// Start opens a session for categoryID. If one is already open it is settled
// first: closed at now, or deleted when shorter than the discard threshold
// (an accidental tap, not real activity).
func (s *TrackerService) Start(ctx context.Context, categoryID string) (TrackerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTracking {
		if err := s.settleOpenLocked(ctx); err != nil {
			return s.statusLocked(), err
		}
	}

	id := s.newID()
	start := s.now()
	if err := s.logs.Insert(ctx, id, categoryID, start); err != nil {
		return s.statusLocked(), err
	}
	s.state = StateTracking
	s.open = store.TimeLog{ID: id, CategoryID: categoryID, StartTime: start}
	s.elapsed = 0
	s.startTicker()
	s.hub.BroadcastChange(websocket.Event{Table: "time_logs", Action: "start"})
	return s.statusLocked(), nil
}

// Stop closes the open session. Failing the store update leaves the session
// open and the ticker running.
func (s *TrackerService) Stop(ctx context.Context) (TrackerStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateTracking {
		return s.statusLocked(), ErrNotTracking
	}
	if err := s.logs.Close(ctx, s.open.ID, s.now()); err != nil {
		return s.statusLocked(), err
	}
	s.stopTicker()
	s.state = StateIdle
	s.open = store.TimeLog{}
	s.elapsed = 0
	s.hub.BroadcastChange(websocket.Event{Table: "time_logs", Action: "stop"})
	return s.statusLocked(), nil
}

func (s *TrackerService) Status() TrackerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Close stops the tick goroutine. Safe to call when idle.
func (s *TrackerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTicker()
}

// settleOpenLocked closes or discards the current open session. On success
// the tracker is idle; on store failure nothing changes.
func (s *TrackerService) settleOpenLocked(ctx context.Context) error {
	now := s.now()
	if now.Sub(s.open.StartTime) < s.discardUnder {
		if err := s.logs.Delete(ctx, s.open.ID); err != nil {
			return err
		}
	} else {
		if err := s.logs.Close(ctx, s.open.ID, now); err != nil {
			return err
		}
	}
	s.stopTicker()
	s.state = StateIdle
	s.open = store.TimeLog{}
	s.elapsed = 0
	return nil
}

func (s *TrackerService) statusLocked() TrackerStatus {
	status := TrackerStatus{State: s.state, ElapsedSeconds: s.elapsed}
	if s.state == StateTracking {
		status.SessionID = s.open.ID
		status.CategoryID = s.open.CategoryID
		start := s.open.StartTime
		status.StartTime = &start
	}
	return status
}

func (s *TrackerService) startTicker() {
	stop := make(chan struct{})
	s.stopTick = stop
	go func() {
		ticker := time.NewTicker(s.tickEvery)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				if s.state != StateTracking {
					s.mu.Unlock()
					return
				}
				s.elapsed++
				tick := websocket.Tick{SessionID: s.open.ID, Elapsed: s.elapsed}
				s.mu.Unlock()
				s.hub.BroadcastTick(tick)
			}
		}
	}()
}

func (s *TrackerService) stopTicker() {
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
}
