package ratelimit

import "testing"

func TestAllowWithinCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("a", 3, 0) {
			t.Fatalf("request %d rejected within capacity", i)
		}
	}
	if l.Allow("a", 3, 0) {
		t.Fatalf("request allowed past capacity with no refill")
	}
}

func TestKeysIsolated(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatalf("first key rejected")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("exhausted key allowed")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("fresh key rejected after another key exhausted")
	}
}

func TestRefill(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 1000) {
		t.Fatalf("first request rejected")
	}
	// 1000 tokens/sec refills within the spin below.
	ok := false
	for i := 0; i < 1_000_000; i++ {
		if l.Allow("a", 1, 1000) {
			ok = true
			break
		}
	}
	if !ok {
		t.Fatalf("bucket never refilled")
	}
}
