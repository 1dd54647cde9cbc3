package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/raqa-app/auth-service/internal/auth"
	"github.com/raqa-app/auth-service/internal/domain"
)

const testKey = "token-test-secret-at-least-32-chars!!"

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fixedClock lets tests advance time without sleeping.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newIssuer(clock *fixedClock) *auth.TokenIssuer {
	return auth.NewTokenIssuer([]byte(testKey), clock.Now)
}

func TestIssueVerify_ReturnsSubject(t *testing.T) {
	clock := &fixedClock{now: testStart}
	issuer := newIssuer(clock)

	token, err := issuer.Issue("ann@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "ann@x.com" {
		t.Errorf("subject = %q, want %q", subject, "ann@x.com")
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	clock := &fixedClock{now: testStart}
	issuer := newIssuer(clock)

	token, err := issuer.Issue("ann@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Still valid just inside the 30-minute TTL.
	clock.now = testStart.Add(29 * time.Minute)
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("verify at 29m: %v", err)
	}

	clock.now = testStart.Add(31 * time.Minute)
	if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("verify at 31m: err = %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	clock := &fixedClock{now: testStart}
	issuer := newIssuer(clock)

	token, err := issuer.Issue("ann@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	// A single flipped character in either the payload or the signature
	// must fail verification.
	for i, segment := range []int{1, 2} {
		tampered := []byte(parts[segment])
		if tampered[0] == 'A' {
			tampered[0] = 'B'
		} else {
			tampered[0] = 'A'
		}
		mutated := make([]string, 3)
		copy(mutated, parts)
		mutated[segment] = string(tampered)

		if _, err := issuer.Verify(strings.Join(mutated, ".")); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("case %d: tampered token verified, err = %v", i, err)
		}
	}
}

func TestVerify_WrongKey(t *testing.T) {
	clock := &fixedClock{now: testStart}
	issuer := newIssuer(clock)
	other := auth.NewTokenIssuer([]byte("a-different-secret-also-32-chars!!!!"), clock.Now)

	token, err := other.Issue("ann@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("token signed with another key verified, err = %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	clock := &fixedClock{now: testStart}
	issuer := newIssuer(clock)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("Verify(%q): err = %v, want ErrTokenInvalid", raw, err)
		}
	}
}
