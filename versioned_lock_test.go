package stm

import "testing"

func TestVersionedLockTryLockExcludesConcurrentLockers(t *testing.T) {
	var l VersionedLock
	l.init(5)

	g1, ok := l.TryLock()
	if !ok {
		t.Fatal("expected first TryLock to succeed")
	}

	if _, ok := l.TryLock(); ok {
		t.Fatal("expected second TryLock to fail while locked")
	}

	if v := l.Version(); !v.IsLocked() {
		t.Fatalf("expected locked version, got %v", v)
	}

	g1.release()

	if v := l.Version(); v != 5 {
		t.Fatalf("expected release with no setVersion to restore 5, got %v", v)
	}
}

func TestVersionedLockSetVersionPublishesOnRelease(t *testing.T) {
	var l VersionedLock
	l.init(1)

	g, ok := l.TryLock()
	if !ok {
		t.Fatal("expected TryLock to succeed")
	}

	g.setVersion(9)
	if v := l.Version(); !v.IsLocked() {
		t.Fatalf("setVersion must not touch the word before release, got %v", v)
	}

	g.release()
	if v := l.Version(); v != 9 {
		t.Fatalf("expected released version 9, got %v", v)
	}
}

func TestVersionIsLocked(t *testing.T) {
	cases := []struct {
		v    Version
		want bool
	}{
		{0, false},
		{1, false},
		{-1, true},
		{-5, true},
	}
	for _, c := range cases {
		if got := c.v.IsLocked(); got != c.want {
			t.Errorf("Version(%d).IsLocked() = %v, want %v", c.v, got, c.want)
		}
	}
}
