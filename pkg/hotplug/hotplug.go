// Package hotplug watches the kernel for CPUs being added, removed, or
// brought on- and offline, and re-probes the CPU count after each burst of
// such events.
package hotplug

import (
	"bytes"
	"log/slog"
	"strings"
	"time"

	"github.com/egandro/schedutils/pkg/config"
)

const (
	// Buffers prevent blocking if bursts occur
	EventBufferSize = 100
	JobBufferSize   = 10
)

type CPUAction int

const (
	ActionAdd CPUAction = iota
	ActionRemove
	ActionOnline
	ActionOffline
)

func (a CPUAction) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionOnline:
		return "online"
	case ActionOffline:
		return "offline"
	}
	return "unknown"
}

type CPUEvent struct {
	CPU    string
	Action CPUAction
}

// CPUCounter discovers the current CPU mask width; satisfied by
// *schedutils.Client.
type CPUCounter interface {
	MaxCPUs() (int, error)
}

// UpdateFunc receives the freshly probed CPU mask width together with the
// batch of events that triggered the probe.
type UpdateFunc func(maxCPUs int, batch []CPUEvent)

// Watcher listens for CPU hotplug uevents and re-probes the CPU count.
type Watcher struct {
	counter   CPUCounter
	window    time.Duration
	onUpdate  UpdateFunc
	netlinkFD int
	reactor   *reactor
	logger    *slog.Logger

	// readerDone is closed when the netlink reader goroutine has exited.
	readerDone chan struct{}
}

// NewWatcher creates a new Watcher, batching events within the configured
// hotplug window.
func NewWatcher(counter CPUCounter, cfg *config.Config, onUpdate UpdateFunc) *Watcher {
	window := cfg.HotplugBatchWindow
	if window <= 0 {
		window = config.ConstantHotplugBatchWindow
	}
	return &Watcher{
		counter:   counter,
		window:    window,
		onUpdate:  onUpdate,
		netlinkFD: -1,
		logger:    slog.Default(),
	}
}

// Start starts the reactor and the netlink listener.
func (w *Watcher) Start() error {
	w.logger.Info("[cpu-hotplug] Starting watcher")
	w.reactor = newReactor(w.window, w.handleBatch, w.logger)
	w.reactor.start()
	return w.startNetlink()
}

// Stop stops the watcher and waits for the netlink reader to exit.
func (w *Watcher) Stop() error {
	if w.reactor == nil {
		return nil
	}
	w.logger.Info("[cpu-hotplug] Stopping watcher")
	w.reactor.stop()
	err := w.stopNetlink()
	w.reactor = nil
	return err
}

func (w *Watcher) handleBatch(batch []CPUEvent) {
	w.logger.Info("[cpu-hotplug] Events detected - probing CPU count", "batch_size", len(batch))
	n, err := w.counter.MaxCPUs()
	if err != nil {
		w.logger.Error("[cpu-hotplug] Failed to probe CPU count", "error", err)
		return
	}
	if w.onUpdate != nil {
		w.onUpdate(n, batch)
	}
}

// parseUevent extracts a CPU event from a kernel uevent message. Messages
// consist of NUL separated fields, starting with a "action@devpath" header
// followed by KEY=value pairs.
func parseUevent(msg []byte) (CPUEvent, bool) {
	var action, subsystem, devpath string
	for _, field := range bytes.Split(msg, []byte{0}) {
		key, value, ok := strings.Cut(string(field), "=")
		if !ok {
			continue
		}
		switch key {
		case "ACTION":
			action = value
		case "SUBSYSTEM":
			subsystem = value
		case "DEVPATH":
			devpath = value
		}
	}
	if subsystem != "cpu" {
		return CPUEvent{}, false
	}
	evt := CPUEvent{CPU: devpath[strings.LastIndex(devpath, "/")+1:]}
	switch action {
	case "add":
		evt.Action = ActionAdd
	case "remove":
		evt.Action = ActionRemove
	case "online":
		evt.Action = ActionOnline
	case "offline":
		evt.Action = ActionOffline
	default:
		return CPUEvent{}, false
	}
	return evt, true
}

// reactor handles the buffering and dispatching of events.
// It is separated from Watcher to allow unit testing of the batching logic.
type reactor struct {
	events   chan CPUEvent
	jobs     chan []CPUEvent
	stopChan chan struct{}
	window   time.Duration
	handler  func([]CPUEvent)
	logger   *slog.Logger
}

func newReactor(window time.Duration, handler func([]CPUEvent), logger *slog.Logger) *reactor {
	return &reactor{
		events:   make(chan CPUEvent, EventBufferSize),
		jobs:     make(chan []CPUEvent, JobBufferSize),
		stopChan: make(chan struct{}),
		window:   window,
		handler:  handler,
		logger:   logger,
	}
}

func (r *reactor) start() {
	go r.processBatches()
	go r.workerLogic()
}

func (r *reactor) stop() {
	close(r.stopChan)
}

func (r *reactor) ingest(evt CPUEvent) {
	select {
	case r.events <- evt:
	default:
		r.logger.Warn("[hotplug-reactor] Event buffer full! Dropping event.")
	}
}

func (r *reactor) processBatches() {
	var batch []CPUEvent
	timer := time.NewTimer(r.window)
	if !timer.Stop() {
		<-timer.C
	}
	timerRunning := false

	for {
		select {
		case <-r.stopChan:
			return
		case evt := <-r.events:
			batch = append(batch, evt)

			// Extend window
			if timerRunning {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(r.window)
			timerRunning = true
			r.logger.Debug("[hotplug-reactor] Buffering hotplug event", "cpu", evt.CPU, "action", evt.Action, "batch_size", len(batch))

		case <-timer.C:
			timerRunning = false
			if len(batch) > 0 {
				job := batch
				batch = nil

				select {
				case r.jobs <- job:
					r.logger.Debug("[hotplug-reactor] Batch sent to worker", "events", len(job))
				default:
					r.logger.Error("[hotplug-reactor] Job Queue full! Worker is too slow.")
				}
			}
		}
	}
}

func (r *reactor) workerLogic() {
	for {
		select {
		case <-r.stopChan:
			return
		case batch := <-r.jobs:
			r.handler(batch)
		}
	}
}
