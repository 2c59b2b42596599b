package narrative

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"
)

func TestBufferVersions(t *testing.T) {
	var b Buffer
	if text, v := b.Get(); text != "" || v != 0 {
		t.Fatalf("fresh buffer = %q, %d", text, v)
	}
	b.Set("one")
	b.Set("two")
	text, v := b.Get()
	if text != "two" || v != 2 {
		t.Fatalf("got %q, %d", text, v)
	}
	b.Clear()
	if text, v := b.Get(); text != "" || v != 3 {
		t.Fatalf("after clear %q, %d", text, v)
	}
}

func TestDispatcherDelivers(t *testing.T) {
	var b Buffer
	d := NewDispatcher(&b, quietLogger())
	d.Dispatch("briefing", func(ctx context.Context) string { return "hello operator" })
	d.Wait()
	if text, _ := b.Get(); text != "hello operator" {
		t.Fatalf("buffer = %q", text)
	}
}

func TestDispatcherLastWriterWins(t *testing.T) {
	var b Buffer
	d := NewDispatcher(&b, quietLogger())

	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(2)

	d.Dispatch("slow", func(ctx context.Context) string {
		started.Done()
		<-release
		return "slow"
	})
	d.Dispatch("fast", func(ctx context.Context) string {
		started.Done()
		return "fast"
	})
	started.Wait()

	// Wait for the fast request to land before letting the slow one finish.
	for {
		if text, _ := b.Get(); text == "fast" {
			break
		}
		runtime.Gosched()
	}
	close(release)
	d.Wait()

	text, v := b.Get()
	if text != "slow" || v != 2 {
		t.Fatalf("got %q v%d, the request that finished last should own the buffer", text, v)
	}
}

func TestDispatcherConcurrentRequests(t *testing.T) {
	var b Buffer
	d := NewDispatcher(&b, quietLogger())
	for i := 0; i < 32; i++ {
		d.Dispatch(fmt.Sprintf("req-%d", i), func(ctx context.Context) string {
			return fmt.Sprintf("reply-%d", i)
		})
	}
	d.Wait()
	if _, v := b.Get(); v != 32 {
		t.Fatalf("version = %d, every request should have delivered", v)
	}
}
