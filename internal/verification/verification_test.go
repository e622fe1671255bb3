package verification

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	v := New()

	token, err := v.Issue("marie@x.com", "Marie")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token issued")
	}

	if v.IsVerified(token) {
		t.Fatalf("token verified before Verify call")
	}

	email, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if email != "marie@x.com" {
		t.Fatalf("email = %s, want marie@x.com", email)
	}

	if !v.IsVerified(token) {
		t.Fatalf("token not marked verified")
	}
}

func TestVerify_UnknownToken(t *testing.T) {
	v := New()

	if _, err := v.Verify("no-such-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	v := New()

	token, err := v.Issue("marie@x.com", "Marie")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Сдвигаем часы за срок действия токена.
	v.now = func() time.Time { return time.Now().Add(TTL + time.Minute) }

	if _, err := v.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// Просроченный токен удаляется и не может быть подтверждён повторно.
	v.now = time.Now
	if _, err := v.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token survived cleanup: %v", err)
	}
}

func TestTokensAreUnique(t *testing.T) {
	v := New()

	a, err := v.Issue("a@x.com", "A")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	b, err := v.Issue("a@x.com", "A")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if a == b {
		t.Fatalf("tokens must be unique per issue")
	}
}
