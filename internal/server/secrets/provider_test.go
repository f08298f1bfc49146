package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/schoolcloud/identity/internal/common"
)

func TestProvider_Resolve_ParameterConfigured(t *testing.T) {
	t.Parallel()

	calls := 0
	p := NewProvider("/identity/jwt", "fallback", "us-east-1")
	p.fetch = func(ctx context.Context, param, region string) (string, error) {
		calls++
		if param != "/identity/jwt" {
			t.Fatalf("unexpected parameter name %q", param)
		}
		return "managed-secret", nil
	}

	got, err := p.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if string(got) != "managed-secret" {
		t.Fatalf("got %q", got)
	}

	// second resolve serves the cache
	if _, err := p.Resolve(context.Background()); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("fetch called %d times, want 1", calls)
	}
}

func TestProvider_Resolve_FetchFailureIsFatal(t *testing.T) {
	t.Parallel()

	p := NewProvider("/identity/jwt", "fallback", "us-east-1")
	p.fetch = func(ctx context.Context, param, region string) (string, error) {
		return "", errors.New("ssm unreachable")
	}

	_, err := p.Resolve(context.Background())
	if !errors.Is(err, common.ErrorConfiguration) {
		t.Fatalf("expected ErrorConfiguration, got %v", err)
	}

	// the failure is cached as well; no retry that could succeed with a
	// different key mid-process
	_, err2 := p.Resolve(context.Background())
	if !errors.Is(err2, common.ErrorConfiguration) {
		t.Fatalf("expected cached ErrorConfiguration, got %v", err2)
	}
}

func TestProvider_Resolve_ExplicitFallback(t *testing.T) {
	t.Parallel()

	p := NewProvider("", "explicit-secret", "us-east-1")
	p.fetch = func(ctx context.Context, param, region string) (string, error) {
		t.Fatal("fetch must not be called without a parameter name")
		return "", nil
	}

	got, err := p.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if string(got) != "explicit-secret" {
		t.Fatalf("got %q", got)
	}
}

func TestProvider_Resolve_DevDefault(t *testing.T) {
	t.Parallel()

	p := NewProvider("", "", "us-east-1")

	got, err := p.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if string(got) != DevDefaultSecret {
		t.Fatalf("got %q want %q", got, DevDefaultSecret)
	}
}
