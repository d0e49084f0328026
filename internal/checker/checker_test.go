package checker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bxxf/flight-schema/internal/capture"
	"github.com/bxxf/flight-schema/internal/capture/capturetest"
	"github.com/bxxf/flight-schema/internal/config"
	"github.com/bxxf/flight-schema/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu     sync.Mutex
	keys   []string
	causes []error
	err    error
}

func (n *recordingNotifier) NotifyDrift(_ context.Context, key string, cause error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.keys = append(n.keys, key)
	n.causes = append(n.causes, cause)
	return n.err
}

func (n *recordingNotifier) notified() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.keys...)
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "mapper", "testdata", name))
	require.NoError(t, err)
	return data
}

func newChecker(t *testing.T, interval time.Duration) (*Checker, *capturetest.MemStore, *recordingNotifier) {
	t.Helper()
	store := capturetest.NewMemStore()
	cfg := config.Config{MaxPayloadBytes: 1 << 20, CaptureTTL: time.Hour, CheckInterval: interval}
	notifier := &recordingNotifier{}
	svc := capture.NewService(store, cfg, zap.NewNop())
	return NewChecker(svc, notifier, cfg, zap.NewNop()), store, notifier
}

func TestRunOnce(t *testing.T) {
	c, store, notifier := newChecker(t, time.Minute)

	store.Put("capture:search:a", fixture(t, "search_sfo_osl.json"))
	store.Put("capture:search:b", []byte(`{"status":true,"message":"Success","data":{"flightOffers":[{"segments":{}}]}}`))
	store.Put("capture:extras:c", fixture(t, "extras.json"))
	store.Put("capture:extras:d", []byte(`{"includedProducts":`))

	report := c.RunOnce(context.Background())
	assert.Equal(t, 4, report.Checked)
	assert.Equal(t, []string{"capture:search:b", "capture:extras:d"}, report.Drifted)
	assert.Equal(t, []string{"capture:search:b", "capture:extras:d"}, notifier.notified())

	var schemaErr *mapper.SchemaError
	require.ErrorAs(t, notifier.causes[0], &schemaErr)
	assert.Equal(t, "data.flightOffers[0].segments", schemaErr.Path)
	assert.True(t, mapper.IsSyntax(notifier.causes[1]))
}

func TestRunOnce_NotifierFailureDoesNotStop(t *testing.T) {
	c, store, notifier := newChecker(t, time.Minute)
	notifier.err = errors.New("webhook down")

	store.Put("capture:extras:a", []byte(`[]`))
	store.Put("capture:extras:b", []byte(`{}`))

	report := c.RunOnce(context.Background())
	assert.Equal(t, 2, report.Checked)
	assert.Len(t, report.Drifted, 2)
	assert.Len(t, notifier.notified(), 2)
}

func TestRunOnce_StoreUnavailable(t *testing.T) {
	c, store, notifier := newChecker(t, time.Minute)
	store.Put("capture:search:a", fixture(t, "search_sfo_osl.json"))
	store.Err = errors.New("connection refused")

	report := c.RunOnce(context.Background())
	assert.Zero(t, report.Checked)
	assert.Empty(t, report.Drifted)
	assert.Empty(t, notifier.notified())
}

func TestRegisterCheckerHooks(t *testing.T) {
	c, store, notifier := newChecker(t, 10*time.Millisecond)
	store.Put("capture:extras:bad", []byte(`{}`))

	lc := fxtest.NewLifecycle(t)
	RegisterCheckerHooks(lc, c)
	lc.RequireStart()

	assert.Eventually(t, func() bool {
		return len(notifier.notified()) > 0
	}, time.Second, 5*time.Millisecond)

	lc.RequireStop()
	assert.Equal(t, "capture:extras:bad", notifier.notified()[0])
}
