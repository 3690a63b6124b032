package redisx

import (
	"testing"
	"time"
)

func TestNew_AppliesTimeout(t *testing.T) {
	c := New("localhost:6379")
	defer c.Close()

	opts := c.Options()
	if opts.ReadTimeout != 2*time.Second || opts.WriteTimeout != 2*time.Second {
		t.Fatalf("timeouts = read %v / write %v, want 2s", opts.ReadTimeout, opts.WriteTimeout)
	}
}
