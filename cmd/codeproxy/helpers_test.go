package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/michaelbrown/codeproxy/internal/compile"
)

func TestTruncate(t *testing.T) {
	if got := truncate("  short  ", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate(strings.Repeat("a", 12), 10); got != strings.Repeat("a", 10)+"..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestTimeAgo(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := timeAgo(time.Now().Add(-tt.ago)); got != tt.want {
			t.Errorf("timeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}

func TestReplSession(t *testing.T) {
	sess := &replSession{langID: 71}
	if sess.source() != "" {
		t.Errorf("empty source = %q", sess.source())
	}

	sess.lines = []string{"x = input()", "print(x)"}
	if got := sess.source(); got != "x = input()\nprint(x)\n" {
		t.Errorf("source = %q", got)
	}

	if handleReplCommand(":stdin hello world", sess) {
		t.Error(":stdin should not exit")
	}
	if sess.stdin != "hello world\n" {
		t.Errorf("stdin = %q", sess.stdin)
	}

	handleReplCommand(":clear", sess)
	if len(sess.lines) != 0 {
		t.Errorf("lines after :clear = %v", sess.lines)
	}

	if !handleReplCommand(":quit", sess) {
		t.Error(":quit should exit")
	}
}

func TestInflightCancel(t *testing.T) {
	var f inflight
	f.cancel() // nothing running

	ctx := f.start()
	done := make(chan struct{})
	go func() {
		f.cancel()
		close(done)
	}()
	<-done

	if ctx.Err() == nil {
		t.Error("cancel should stop the running submission")
	}
	f.finish()
	f.finish()

	next := f.start()
	if next.Err() != nil {
		t.Error("a new submission should start uncancelled")
	}
	f.finish()
	if next.Err() == nil {
		t.Error("finish should release the context")
	}
}

func TestLogCompileErrorKeepsCause(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	a := &app{logger: zap.New(core)}

	err := &compile.Error{Kind: compile.KindTransport, Err: errors.New("dial tcp: i/o timeout")}
	logCompileError(a, err)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["kind"] != "transport_error" {
		t.Errorf("kind = %v", fields["kind"])
	}
	if msg, _ := fields["error"].(string); !strings.Contains(msg, "i/o timeout") {
		t.Errorf("error field = %v, want the cause", fields["error"])
	}
}
