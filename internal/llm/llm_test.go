package llm

import (
	"context"
	"sync"
	"testing"
)

func TestTokenTrackerAccumulates(t *testing.T) {
	tr := NewTokenTracker()

	tr.Add(100, 20)
	tr.Add(50, 10)

	in, out := tr.Total()
	if in != 150 || out != 30 {
		t.Errorf("expected 150/30, got %d/%d", in, out)
	}
	if tr.Calls() != 2 {
		t.Errorf("expected 2 calls, got %d", tr.Calls())
	}

	tr.Reset()
	in, out = tr.Total()
	if in != 0 || out != 0 || tr.Calls() != 0 {
		t.Errorf("reset should zero the tracker, got %d/%d over %d calls", in, out, tr.Calls())
	}
}

func TestTokenTrackerConcurrentAdds(t *testing.T) {
	tr := NewTokenTracker()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Add(1, 1)
		}()
	}
	wg.Wait()

	in, out := tr.Total()
	if in != 10 || out != 10 || tr.Calls() != 10 {
		t.Errorf("expected 10/10 over 10 calls, got %d/%d over %d", in, out, tr.Calls())
	}
}

func TestCompleterFunc(t *testing.T) {
	var gotSystem string
	c := CompleterFunc(func(_ context.Context, system string, _ []Message) (string, error) {
		gotSystem = system
		return "ok", nil
	})

	out, err := c.Complete(context.Background(), "be brief", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" || gotSystem != "be brief" {
		t.Errorf("unexpected passthrough: %q %q", out, gotSystem)
	}
}
