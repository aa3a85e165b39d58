package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mpetrik/apogee/pkg/common"
)

func TestRouter_Post(t *testing.T) {
	r := NewRouter(10)

	err := r.Post(BarEvent, common.Bar{})
	if err != nil {
		t.Errorf("Post failed: %v", err)
	}

	if r.postCount.Load() != 1 {
		t.Errorf("Expected postCount=1, got %d", r.postCount.Load())
	}
}

func TestRouter_PostCapacityReached(t *testing.T) {
	r := NewRouter(1)

	err := r.Post(BarEvent, common.Bar{})
	if err != nil {
		t.Errorf("First Post failed: %v", err)
	}

	err = r.Post(BarEvent, common.Bar{})
	if err == nil {
		t.Error("Expected error when capacity reached")
	}

	if r.postFails.Load() != 1 {
		t.Errorf("Expected postFails=1, got %d", r.postFails.Load())
	}
}

func TestRouter_Exec(t *testing.T) {
	r := NewRouter(10)

	barHandled := make(chan struct{})
	r.OnBar = func(ctx context.Context, bar common.Bar) {
		close(barHandled)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errChan := r.Exec(ctx)

	if err := r.Post(BarEvent, common.Bar{}); err != nil {
		t.Errorf("Post failed: %v", err)
	}

	select {
	case <-barHandled:
	case <-time.After(time.Second):
		t.Fatal("Bar handler not called")
	}
	cancel()

	err := <-errChan
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	if r.dispatchCount.Load() != 1 {
		t.Errorf("Expected dispatchCount=1, got %d", r.dispatchCount.Load())
	}
}

func TestRouter_ExecLoop(t *testing.T) {
	r := NewRouter(10)

	var barHandled bool
	r.OnBar = func(ctx context.Context, bar common.Bar) {
		barHandled = true
	}

	doOnceCount := 0
	doOnceCb := func(ctx context.Context) error {
		doOnceCount++
		if doOnceCount > 5 {
			return errors.New("done")
		}
		return nil
	}

	if err := r.Post(BarEvent, common.Bar{}); err != nil {
		t.Errorf("Post failed: %v", err)
	}

	errChan := r.ExecLoop(context.Background(), doOnceCb)

	err := <-errChan
	if err == nil || err.Error() != "done" {
		t.Errorf("Expected 'done' error, got %v", err)
	}

	if !barHandled {
		t.Error("Bar handler not called")
	}

	if doOnceCount <= 5 {
		t.Errorf("Expected doOnceCount>5, got %d", doOnceCount)
	}
}

// The drain barrier: events posted while one batch is dispatched, including
// second-order cascades, must all be handled before doOnce runs again.
func TestRouter_ExecLoopDrainsCascades(t *testing.T) {
	r := NewRouter(100)

	var sequence []string

	r.OnBar = func(ctx context.Context, bar common.Bar) {
		sequence = append(sequence, "bar")
		if err := r.Post(SignalEvent, common.Signal{Symbol: bar.Symbol}); err != nil {
			t.Errorf("Post failed: %v", err)
		}
	}
	r.OnSignal = func(ctx context.Context, signal common.Signal) {
		sequence = append(sequence, "signal")
		if err := r.Post(OrderEvent, common.Order{Symbol: signal.Symbol}); err != nil {
			t.Errorf("Post failed: %v", err)
		}
	}
	r.OnOrder = func(ctx context.Context, order common.Order) {
		sequence = append(sequence, "order")
	}

	advances := 0
	doOnce := func(ctx context.Context) error {
		sequence = append(sequence, "advance")
		advances++
		if advances > 2 {
			return errors.New("done")
		}
		return r.Post(BarEvent, common.Bar{Symbol: "AAPL"})
	}

	<-r.ExecLoop(context.Background(), doOnce)

	expected := []string{
		"advance", "bar", "signal", "order",
		"advance", "bar", "signal", "order",
		"advance",
	}
	if len(sequence) != len(expected) {
		t.Fatalf("Expected sequence %v, got %v", expected, sequence)
	}
	for i := range expected {
		if sequence[i] != expected[i] {
			t.Fatalf("Expected sequence %v, got %v", expected, sequence)
		}
	}
}

func TestRouter_AllEventTypes(t *testing.T) {
	r := NewRouter(20)

	handled := map[EventId]bool{}

	r.OnBar = func(ctx context.Context, bar common.Bar) { handled[BarEvent] = true }
	r.OnSignal = func(ctx context.Context, signal common.Signal) { handled[SignalEvent] = true }
	r.OnOrder = func(ctx context.Context, order common.Order) { handled[OrderEvent] = true }
	r.OnOrderRejected = func(ctx context.Context, rejected common.OrderRejected) { handled[OrderRejectionEvent] = true }
	r.OnFill = func(ctx context.Context, fill common.Fill) { handled[FillEvent] = true }
	r.OnEquity = func(ctx context.Context, sample common.EquitySample) { handled[EquityEvent] = true }

	posts := []struct {
		id   EventId
		data interface{}
	}{
		{BarEvent, common.Bar{}},
		{SignalEvent, common.Signal{}},
		{OrderEvent, common.Order{}},
		{OrderRejectionEvent, common.OrderRejected{}},
		{FillEvent, common.Fill{}},
		{EquityEvent, common.EquitySample{}},
	}
	for _, post := range posts {
		if err := r.Post(post.id, post.data); err != nil {
			t.Fatalf("Post(%v) failed: %v", post.id, err)
		}
	}

	stop := errors.New("stop")
	<-r.ExecLoop(context.Background(), func(ctx context.Context) error { return stop })

	for _, post := range posts {
		if !handled[post.id] {
			t.Errorf("Handler for %v not called", post.id)
		}
	}
}

func TestRouter_DispatchInvalidPayload(t *testing.T) {
	r := NewRouter(10)
	r.OnBar = func(ctx context.Context, bar common.Bar) {
		t.Error("Handler called with invalid payload")
	}

	if err := r.Post(BarEvent, "not a bar"); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	stop := errors.New("stop")
	<-r.ExecLoop(context.Background(), func(ctx context.Context) error { return stop })

	if r.dispatchFails.Load() != 1 {
		t.Errorf("Expected dispatchFails=1, got %d", r.dispatchFails.Load())
	}
}
