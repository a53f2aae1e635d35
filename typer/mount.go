package typer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Observer is notified when engines are acquired and released.
type Observer interface {
	Mounted(id uuid.UUID)
	Unmounted(id uuid.UUID)
}

// Mounter creates one running engine per mount.
type Mounter struct {
	strings  []string
	opts     Options
	observer Observer

	created  atomic.Int64
	released atomic.Int64
}

// NewMounter returns a Mounter for strs. observer may be nil.
func NewMounter(strs []string, opts Options, observer Observer) *Mounter {
	return &Mounter{
		strings:  append([]string(nil), strs...),
		opts:     opts,
		observer: observer,
	}
}

// Mount builds a fresh engine and starts its timer loop. The engine runs until
// Unmount is called, ctx is cancelled, or a non-looping animation finishes.
func (m *Mounter) Mount(ctx context.Context) (*Mount, error) {
	e, err := NewEngine(m.strings, m.opts)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	mnt := &Mount{
		engine: e,
		frames: make(chan Frame, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	m.created.Add(1)
	if m.observer != nil {
		m.observer.Mounted(e.ID())
	}
	go mnt.run(ctx, m.opts.StartDelay, func() {
		m.released.Add(1)
		if m.observer != nil {
			m.observer.Unmounted(e.ID())
		}
	})
	return mnt, nil
}

// Created is the number of engines ever mounted.
func (m *Mounter) Created() int64 { return m.created.Load() }

// Released is the number of engines that have stopped.
func (m *Mounter) Released() int64 { return m.released.Load() }

// Active is the number of engines currently running.
func (m *Mounter) Active() int64 { return m.Created() - m.Released() }

// Mount is the handle of one running engine.
type Mount struct {
	engine *Engine
	frames chan Frame
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// ID identifies the engine owned by this mount.
func (m *Mount) ID() uuid.UUID { return m.engine.ID() }

// Frames delivers the animation. It is closed when the engine stops.
func (m *Mount) Frames() <-chan Frame { return m.frames }

// Done is closed once the engine has been released.
func (m *Mount) Done() <-chan struct{} { return m.done }

// Unmount stops the engine and waits for its goroutine to exit. It is safe to
// call more than once.
func (m *Mount) Unmount() {
	m.once.Do(m.cancel)
	<-m.done
}

func (m *Mount) run(ctx context.Context, start time.Duration, release func()) {
	defer close(m.done)
	defer release()
	defer close(m.frames)
	defer m.cancel()

	timer := time.NewTimer(start)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		frame, delay, finished := m.engine.Next()
		select {
		case m.frames <- frame:
		case <-ctx.Done():
			return
		}
		if finished {
			return
		}
		timer.Reset(delay)
	}
}
