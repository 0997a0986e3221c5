package app

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// State of the interrupt handling state machine
type State int32

const (
	// Armed waits for the first interrupt
	Armed State = iota
	// ShuttingDown has seen one interrupt; the next one forces exit
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case ShuttingDown:
		return "shutting-down"
	default:
		return "unknown"
	}
}

// Shutdown turns SIGINT/SIGTERM into process exit. The first signal exits
// with status 0 after running cleanup; any later one exits with status 1
// without waiting.
type Shutdown struct {
	exit    func(code int)
	cleanup []func()
	state   atomic.Int32

	signals    chan os.Signal
	done       chan struct{}
	armOnce    sync.Once
	disarmOnce sync.Once
}

// NewShutdown creates a handler in the Armed state. exit is normally os.Exit.
func NewShutdown(exit func(code int), cleanup ...func()) *Shutdown {
	return &Shutdown{
		exit:    exit,
		cleanup: cleanup,
		signals: make(chan os.Signal, 2),
		done:    make(chan struct{}),
	}
}

// State returns the current state
func (s *Shutdown) State() State {
	return State(s.state.Load())
}

// Handle applies one signal to the state machine
func (s *Shutdown) Handle(sig os.Signal) {
	if !s.state.CompareAndSwap(int32(Armed), int32(ShuttingDown)) {
		slog.Warn("Received second interrupt signal, forcing exit...", "signal", sig.String())
		s.exit(1)
		return
	}

	slog.Info("Received interrupt signal, shutting down gracefully...", "signal", sig.String())
	slog.Info("Press Ctrl+C again to force exit")
	for _, fn := range s.cleanup {
		fn()
	}
	s.exit(0)
}

// Arm starts delivering sigs (SIGINT and SIGTERM when none are given) to
// Handle. Only the first call has an effect.
func (s *Shutdown) Arm(sigs ...os.Signal) {
	s.armOnce.Do(func() {
		if len(sigs) == 0 {
			sigs = []os.Signal{os.Interrupt, syscall.SIGTERM}
		}
		signal.Notify(s.signals, sigs...)
		go s.loop()
	})
}

// Disarm stops signal delivery
func (s *Shutdown) Disarm() {
	s.disarmOnce.Do(func() {
		signal.Stop(s.signals)
		close(s.done)
	})
}

func (s *Shutdown) loop() {
	for {
		select {
		case sig := <-s.signals:
			// cleanup may block; the loop must stay free for the forcing signal
			go s.Handle(sig)
		case <-s.done:
			return
		}
	}
}
