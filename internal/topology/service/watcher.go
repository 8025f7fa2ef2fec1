package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/anthanhphan/gosdk/logger"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/port"
	"github.com/anthanhphan/go-bucket-topology/pkg/framing"
)

const (
	defaultReconnectMin = 500 * time.Millisecond
	defaultReconnectMax = 30 * time.Second
)

var errStreamClosed = errors.New("change feed closed by server")

type WatcherConfig struct {
	MaxContentLength int
	ReconnectMin     time.Duration
	ReconnectMax     time.Duration
}

func (c WatcherConfig) withDefaults() WatcherConfig {
	if c.MaxContentLength <= 0 {
		c.MaxContentLength = framing.DefaultMaxFrameLength
	}
	if c.ReconnectMin <= 0 {
		c.ReconnectMin = defaultReconnectMin
	}
	if c.ReconnectMax < c.ReconnectMin {
		c.ReconnectMax = max(defaultReconnectMax, c.ReconnectMin)
	}
	return c
}

// ChangeFeedWatcher keeps one streaming connection to a bucket's change feed
// open. Every document it decodes is written to the store and then handed to
// the subscribers, in arrival order, from the watcher's own goroutine.
type ChangeFeedWatcher struct {
	bucket       string
	uri          *url.URL
	creds        *domain.Credentials
	controlPlane port.ControlPlane
	parser       port.DocumentParser
	store        *TopologyStore
	cfg          WatcherConfig

	// subs is replaced on every change and read without locking at
	// notification time.
	subs  atomic.Pointer[[]port.Reconfigurable]
	subMu sync.Mutex

	ctx       context.Context
	cancel    context.CancelFunc
	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

func NewChangeFeedWatcher(
	bucket string,
	uri *url.URL,
	creds *domain.Credentials,
	controlPlane port.ControlPlane,
	parser port.DocumentParser,
	store *TopologyStore,
	cfg WatcherConfig,
) *ChangeFeedWatcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &ChangeFeedWatcher{
		bucket:       bucket,
		uri:          uri,
		creds:        creds,
		controlPlane: controlPlane,
		parser:       parser,
		store:        store,
		cfg:          cfg.withDefaults(),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	w.subs.Store(&[]port.Reconfigurable{})
	return w
}

// Start launches the read loop. Calls after the first, or after Shutdown,
// do nothing.
func (w *ChangeFeedWatcher) Start() {
	w.startOnce.Do(func() {
		go w.run()
	})
}

// Shutdown closes the stream and returns once the read loop has exited. No
// subscriber is called after it returns. Calling it from a subscriber's
// Reconfigure deadlocks; use go w.Shutdown() there.
func (w *ChangeFeedWatcher) Shutdown() {
	w.stopOnce.Do(func() {
		w.cancel()
		// Never started: nothing will close done.
		w.startOnce.Do(func() { close(w.done) })
	})
	<-w.done
}

// AddSubscriber registers sub. The same subscriber may be added more than
// once and is then notified once per registration.
func (w *ChangeFeedWatcher) AddSubscriber(sub port.Reconfigurable) {
	w.subMu.Lock()
	defer w.subMu.Unlock()

	cur := *w.subs.Load()
	next := make([]port.Reconfigurable, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, sub)
	w.subs.Store(&next)
}

// RemoveSubscriber drops one registration of sub and reports whether one was
// found. A notification already in progress still reaches sub.
func (w *ChangeFeedWatcher) RemoveSubscriber(sub port.Reconfigurable) bool {
	w.subMu.Lock()
	defer w.subMu.Unlock()

	cur := *w.subs.Load()
	for i, s := range cur {
		if s != sub {
			continue
		}
		next := make([]port.Reconfigurable, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		next = append(next, cur[i+1:]...)
		w.subs.Store(&next)
		return true
	}
	return false
}

func (w *ChangeFeedWatcher) SubscriberCount() int {
	return len(*w.subs.Load())
}

func (w *ChangeFeedWatcher) run() {
	defer close(w.done)

	logger.Infow("Change feed watcher started", "bucket", w.bucket, "uri", w.uri.Redacted())
	defer logger.Infow("Change feed watcher stopped", "bucket", w.bucket)

	backoff := w.cfg.ReconnectMin
	for {
		connected, err := w.consume()
		if w.ctx.Err() != nil {
			return
		}
		if connected {
			backoff = w.cfg.ReconnectMin
		}

		logger.Warnw("Change feed connection lost, reconnecting",
			"bucket", w.bucket, "backoff", backoff.String(), "error", err.Error())

		timer := time.NewTimer(backoff)
		select {
		case <-w.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		backoff = min(backoff*2, w.cfg.ReconnectMax)
	}
}

// consume reads one connection until it fails. connected reports whether the
// stream was opened at all.
func (w *ChangeFeedWatcher) consume() (connected bool, err error) {
	body, err := w.controlPlane.Stream(w.ctx, w.uri, w.creds)
	if err != nil {
		return false, err
	}
	defer body.Close()

	frames, err := framing.NewReader(body, w.cfg.MaxContentLength)
	if err != nil {
		return true, err
	}

	for {
		frame, err := frames.Next()
		switch {
		case errors.Is(err, framing.ErrFrameTooLarge):
			logger.Warnw("Skipping oversized change feed message",
				"bucket", w.bucket, "max_content_length", w.cfg.MaxContentLength)
			continue
		case errors.Is(err, io.EOF):
			return true, errStreamClosed
		case err != nil:
			return true, err
		}
		w.handle(frame)
	}
}

func (w *ChangeFeedWatcher) handle(frame []byte) {
	t, err := w.parser.ParseBucket(frame)
	if err != nil {
		logger.Warnw("Skipping malformed change feed message", "bucket", w.bucket, "error", err.Error())
		return
	}
	if t.Bucket == "" {
		t.Bucket = w.bucket
	}
	if t.Bucket != w.bucket {
		logger.Warnw("Skipping change feed message for another bucket", "bucket", w.bucket, "got", t.Bucket)
		return
	}
	w.apply(t)
}

func (w *ChangeFeedWatcher) apply(t domain.Topology) {
	if w.ctx.Err() != nil {
		return
	}
	w.store.Put(w.bucket, t)
	logger.Debugw("Topology applied", "bucket", w.bucket, "nodes", len(t.Nodes))

	for _, sub := range *w.subs.Load() {
		if w.ctx.Err() != nil {
			return
		}
		sub.Reconfigure(t)
	}
}
