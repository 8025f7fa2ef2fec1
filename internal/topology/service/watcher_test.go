package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/anthanhphan/go-bucket-topology/internal/topology/domain"
	"github.com/anthanhphan/go-bucket-topology/internal/topology/service/mocks"
)

// scriptedFeed hands out one scripted stream per Stream call and an idle
// stream once the script runs out.
type scriptedFeed struct {
	mu      sync.Mutex
	streams []func(ctx context.Context) (io.ReadCloser, error)
	calls   int
}

func (f *scriptedFeed) stream(ctx context.Context, _ *url.URL, _ *domain.Credentials) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.streams) == 0 {
		return idleStream(ctx), nil
	}
	next := f.streams[0]
	f.streams = f.streams[1:]
	return next(ctx)
}

func (f *scriptedFeed) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// pipe returns a stream the test writes to. It is closed when the watcher's
// context ends.
func (f *scriptedFeed) pipe() *io.PipeWriter {
	pr, pw := io.Pipe()
	f.streams = append(f.streams, func(ctx context.Context) (io.ReadCloser, error) {
		go func() {
			<-ctx.Done()
			_ = pw.CloseWithError(ctx.Err())
		}()
		return pr, nil
	})
	return pw
}

func (f *scriptedFeed) text(s string) {
	f.streams = append(f.streams, func(context.Context) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	})
}

func (f *scriptedFeed) fail(err error) {
	f.streams = append(f.streams, func(context.Context) (io.ReadCloser, error) {
		return nil, err
	})
}

func newTestWatcher(t *testing.T, feed *scriptedFeed) (*ChangeFeedWatcher, *TopologyStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cp := mocks.NewMockControlPlane(ctrl)
	cp.EXPECT().Stream(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(feed.stream).AnyTimes()
	parser := mocks.NewMockDocumentParser(ctrl)
	parser.EXPECT().ParseBucket(gomock.Any()).DoAndReturn(parseFrame).AnyTimes()

	uri, err := url.Parse("http://x.example:8091/pools/default/bucketsStreaming/beer")
	require.NoError(t, err)

	store := NewTopologyStore()
	w := NewChangeFeedWatcher("beer", uri, nil, cp, parser, store, WatcherConfig{
		MaxContentLength: 64,
		ReconnectMin:     time.Millisecond,
		ReconnectMax:     2 * time.Millisecond,
	})
	t.Cleanup(w.Shutdown)
	return w, store
}

func waitForCount(t *testing.T, r *recorder, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return r.count() >= n }, 2*time.Second, time.Millisecond)
}

func TestChangeFeedWatcher_DeliversInOrder(t *testing.T) {
	feed := &scriptedFeed{}
	pw := feed.pipe()
	w, store := newTestWatcher(t, feed)

	a, b := &recorder{}, &recorder{}
	w.AddSubscriber(a)
	w.AddSubscriber(b)
	w.Start()

	// Documents split across arbitrary chunk boundaries.
	for _, chunk := range []string{"beer:1\nbe", "er:2\n\n", "beer:", "3\n"} {
		_, err := pw.Write([]byte(chunk))
		require.NoError(t, err)
	}

	waitForCount(t, a, 3)
	waitForCount(t, b, 3)
	want := []string{"rev-1", "rev-2", "rev-3"}
	assert.Equal(t, want, a.revisions())
	assert.Equal(t, want, b.revisions())

	got, ok := store.Get("beer")
	require.True(t, ok)
	assert.Equal(t, "rev-3", got.StreamingURI)
}

func TestChangeFeedWatcher_SkipsMalformedDocument(t *testing.T) {
	feed := &scriptedFeed{}
	pw := feed.pipe()
	w, _ := newTestWatcher(t, feed)

	r := &recorder{}
	w.AddSubscriber(r)
	w.Start()

	_, err := pw.Write([]byte("beer:1\nnot a document\nbeer:2\n"))
	require.NoError(t, err)
	waitForCount(t, r, 2)
	assert.Equal(t, []string{"rev-1", "rev-2"}, r.revisions())

	// Same connection still delivers.
	_, err = pw.Write([]byte("beer:3\n"))
	require.NoError(t, err)
	waitForCount(t, r, 3)
	assert.Equal(t, []string{"rev-1", "rev-2", "rev-3"}, r.revisions())
	assert.Equal(t, 1, feed.callCount())
}

func TestChangeFeedWatcher_SkipsOversizedAndForeignDocuments(t *testing.T) {
	feed := &scriptedFeed{}
	pw := feed.pipe()
	w, _ := newTestWatcher(t, feed)

	r := &recorder{}
	w.AddSubscriber(r)
	w.Start()

	payload := strings.Repeat("x", 200) + "\nwine:1\nbeer:1\n"
	_, err := pw.Write([]byte(payload))
	require.NoError(t, err)

	waitForCount(t, r, 1)
	assert.Equal(t, []string{"rev-1"}, r.revisions())
	assert.Equal(t, 1, feed.callCount())
}

func TestChangeFeedWatcher_Reconnects(t *testing.T) {
	feed := &scriptedFeed{}
	feed.fail(errors.New("connection refused"))
	feed.text("beer:1\n")
	feed.text("beer:2\n")
	w, store := newTestWatcher(t, feed)

	r := &recorder{}
	w.AddSubscriber(r)
	w.Start()

	waitForCount(t, r, 2)
	assert.Equal(t, []string{"rev-1", "rev-2"}, r.revisions())
	assert.GreaterOrEqual(t, feed.callCount(), 3)

	got, _ := store.Get("beer")
	assert.Equal(t, "rev-2", got.StreamingURI)
}

func TestChangeFeedWatcher_Shutdown(t *testing.T) {
	feed := &scriptedFeed{}
	pw := feed.pipe()
	w, _ := newTestWatcher(t, feed)

	r := &recorder{}
	w.AddSubscriber(r)
	w.Start()

	_, err := pw.Write([]byte("beer:1\n"))
	require.NoError(t, err)
	waitForCount(t, r, 1)

	w.Shutdown()
	w.Shutdown()

	_, err = pw.Write([]byte("beer:2\n"))
	assert.Error(t, err)
	assert.Equal(t, 1, r.count())

	// Start after shutdown does nothing.
	w.Start()
	assert.Equal(t, 1, feed.callCount())
}

// stopOnFirst stops the watcher from inside its first notification.
type stopOnFirst struct {
	recorder
	w       *ChangeFeedWatcher
	once    sync.Once
	stopped chan struct{}
}

func (s *stopOnFirst) Reconfigure(t domain.Topology) {
	s.recorder.Reconfigure(t)
	s.once.Do(func() {
		go func() {
			s.w.Shutdown()
			close(s.stopped)
		}()
	})
}

func TestChangeFeedWatcher_ShutdownFromSubscriber(t *testing.T) {
	feed := &scriptedFeed{}
	pw := feed.pipe()
	w, _ := newTestWatcher(t, feed)

	sub := &stopOnFirst{w: w, stopped: make(chan struct{})}
	w.AddSubscriber(sub)
	w.Start()

	_, err := pw.Write([]byte("beer:1\n"))
	require.NoError(t, err)

	select {
	case <-sub.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown started from a subscriber did not complete")
	}

	_, err = pw.Write([]byte("beer:2\n"))
	assert.Error(t, err)
	assert.Equal(t, []string{"rev-1"}, sub.revisions())
}

func TestChangeFeedWatcher_ShutdownBeforeStart(t *testing.T) {
	w, _ := newTestWatcher(t, &scriptedFeed{})

	done := make(chan struct{})
	go func() {
		w.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("shutdown of an unstarted watcher blocked")
	}
}

func TestChangeFeedWatcher_RemoveSubscriber(t *testing.T) {
	w, _ := newTestWatcher(t, &scriptedFeed{})

	a, b := &recorder{}, &recorder{}
	w.AddSubscriber(a)
	w.AddSubscriber(b)
	w.AddSubscriber(a)
	assert.Equal(t, 3, w.SubscriberCount())

	assert.True(t, w.RemoveSubscriber(a))
	assert.Equal(t, 2, w.SubscriberCount())
	assert.True(t, w.RemoveSubscriber(a))
	assert.False(t, w.RemoveSubscriber(a))
	assert.Equal(t, 1, w.SubscriberCount())

	w.apply(domain.Topology{Bucket: "beer", StreamingURI: "rev-9"})
	assert.Zero(t, a.count())
	assert.Equal(t, []string{"rev-9"}, b.revisions())
}
