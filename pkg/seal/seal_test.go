package seal_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/seal"
)

type orderRef struct {
	ID      int64  `msgpack:"id"`
	Version string `msgpack:"v"`
}

func TestSignedRoundTrip(t *testing.T) {
	sealer, err := seal.New([]byte("secret"))
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}

	token, err := sealer.Seal(orderRef{ID: 42, Version: "3"})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if strings.Count(token, ".") != 1 {
		t.Fatalf("expected payload.signature token, got %q", token)
	}

	var got orderRef
	if err := sealer.Open(token, &got); err != nil {
		t.Fatalf("open: %v", err)
	}
	if diff := cmp.Diff(orderRef{ID: 42, Version: "3"}, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestSignedTokenDetectsTampering(t *testing.T) {
	sealer, _ := seal.New([]byte("secret"))
	other, _ := seal.New([]byte("other"))

	token, err := sealer.Seal(orderRef{ID: 1})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	var got orderRef
	if err := other.Open(token, &got); !errors.Is(err, seal.ErrSignatureMismatch) {
		t.Fatalf("expected signature mismatch for foreign key, got %v", err)
	}

	forged, _ := other.Seal(orderRef{ID: 2})
	payload, _, _ := strings.Cut(forged, ".")
	_, signature, _ := strings.Cut(token, ".")
	if err := sealer.Open(payload+"."+signature, &got); !errors.Is(err, seal.ErrSignatureMismatch) {
		t.Fatalf("expected signature mismatch for swapped payload, got %v", err)
	}

	for _, bad := range []string{"", "no-dot", "a.", ".b", "!!!.???"} {
		if err := sealer.Open(bad, &got); !errors.Is(err, seal.ErrInvalidToken) {
			t.Errorf("Open(%q) = %v, want ErrInvalidToken", bad, err)
		}
	}
}

func TestEncryptedRoundTrip(t *testing.T) {
	sealer, err := seal.New([]byte(strings.Repeat("k", 32)), seal.WithEncryption())
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}
	if !sealer.Encrypted() {
		t.Fatalf("expected encrypted sealer")
	}

	token, err := sealer.Seal("card-4242")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if strings.Contains(token, ".") {
		t.Fatalf("expected opaque token, got %q", token)
	}

	var got string
	if err := sealer.Open(token, &got); err != nil || got != "card-4242" {
		t.Fatalf("open: %q, %v", got, err)
	}

	tampered := []byte(token)
	if tampered[5] == 'A' {
		tampered[5] = 'B'
	} else {
		tampered[5] = 'A'
	}
	if err := sealer.Open(string(tampered), &got); err == nil {
		t.Fatalf("expected tampered ciphertext to fail")
	}
	if err := sealer.Open("AA", &got); !errors.Is(err, seal.ErrInvalidToken) {
		t.Fatalf("expected short ciphertext to be invalid, got %v", err)
	}
}

func TestNewRejectsEmptyKey(t *testing.T) {
	if _, err := seal.New(nil); err == nil {
		t.Fatalf("expected empty key to fail")
	}
}
