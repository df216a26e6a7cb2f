package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var errTransient = errors.New("connection reset")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get(missing) hit")
	}

	if err := c.Set(ctx, "report", []byte(`{"ok":true}`), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "report")
	if err != nil || !hit || string(data) != `{"ok":true}` {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "report"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "report"); hit {
		t.Error("Get() hit after Delete()")
	}
	if err := c.Delete(ctx, "report"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestFileCache_ExpiredAndCorrupt(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry hit")
	}

	if err := os.MkdirAll(filepath.Dir(c.path("bad")), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("bad"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("Get(corrupt) = %v, %v, want clean miss", hit, err)
	}
	if _, err := os.Stat(c.path("bad")); !os.IsNotExist(err) {
		t.Error("corrupt entry not removed")
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if n, err := c.Len(); err != nil || n != 2 {
		t.Fatalf("Len() = %d, %v; want 2", n, err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear() left %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	if Hash([]byte("hello")) != Hash([]byte("hello")) {
		t.Error("Hash() is not deterministic")
	}
	if Hash([]byte("hello")) == Hash([]byte("world")) {
		t.Error("Hash() collides on different inputs")
	}
	if n := len(Hash([]byte("hello"))); n != 64 {
		t.Errorf("len(Hash()) = %d, want 64", n)
	}
}

func TestKeyers(t *testing.T) {
	k := NewDefaultKeyer()
	a := k.ReportKey("abc", ReportKeyOpts{Width: 800, Height: 600})
	b := k.ReportKey("abc", ReportKeyOpts{Width: 400, Height: 600})
	c := k.ReportKey("def", ReportKeyOpts{Width: 800, Height: 600})
	if a == b || a == c {
		t.Error("ReportKey() ignores its inputs")
	}
	if a != k.ReportKey("abc", ReportKeyOpts{Width: 800, Height: 600}) {
		t.Error("ReportKey() is not deterministic")
	}

	scoped := NewScopedKeyer(nil, "team:1:")
	if got, want := scoped.ReportKey("abc", ReportKeyOpts{Width: 800, Height: 600}), "team:1:"+a; got != want {
		t.Errorf("ScopedKeyer.ReportKey() = %q, want %q", got, want)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := Retryable(errTransient)
	if !IsRetryable(err) {
		t.Error("IsRetryable() = false for wrapped error")
	}
	if !errors.Is(err, errTransient) {
		t.Error("Retryable() does not unwrap")
	}
	if IsRetryable(errTransient) {
		t.Error("IsRetryable() = true for plain error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()

	tests := []struct {
		name      string
		fail      int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, true, 1, false},
		{"recovers", 2, true, 3, false},
		{"exhausted", 5, true, 3, true},
		{"permanent", 5, false, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(context.Background(), func() error {
				calls++
				if calls <= tt.fail {
					if tt.retryable {
						return Retryable(errTransient)
					}
					return errTransient
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("RetryWithBackoff() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoff_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(errTransient) })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithBackoff() error = %v, want context.Canceled", err)
	}
}
