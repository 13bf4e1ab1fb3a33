package http

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestMultiLimiter_Allow(t *testing.T) {
	ml := newMultiLimiter(rate.Limit(2), 2, time.Minute)
	key := "203.0.113.7"
	if !ml.allow(key) {
		t.Fatal("first allow should pass")
	}
	if !ml.allow(key) {
		t.Fatal("second allow should pass")
	}
	if ml.allow(key) {
		t.Fatal("third allow should be rate limited")
	}
	if !ml.allow("198.51.100.1") {
		t.Fatal("other keys keep their own budget")
	}
}
