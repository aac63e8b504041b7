package apikey

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openlecture/vorlesung/pkg/auth"
)

func newAuth() *Authenticator {
	return New([]RawKeyEntry{
		{Key: "sk-valid-1", Identity: auth.Identity{Subject: "svc-a"}},
		{Key: "sk-valid-2", Identity: auth.Identity{Subject: "svc-b"}},
	})
}

func requestWithAuth(header string) *http.Request {
	r := httptest.NewRequest("POST", "/mcp/messages", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	return r
}

func TestValidKey(t *testing.T) {
	result := newAuth().Authenticate(context.Background(), requestWithAuth("Bearer sk-valid-2"))
	if result.Decision != auth.Yes {
		t.Fatalf("decision = %v, want Yes", result.Decision)
	}
	if result.Identity.Subject != "svc-b" {
		t.Errorf("subject = %q", result.Identity.Subject)
	}
}

func TestInvalidKey(t *testing.T) {
	result := newAuth().Authenticate(context.Background(), requestWithAuth("Bearer sk-wrong"))
	if result.Decision != auth.No {
		t.Errorf("decision = %v, want No", result.Decision)
	}
	if result.Err == nil {
		t.Error("expected an error for invalid key")
	}
}

func TestEmptyBearerIsNo(t *testing.T) {
	result := newAuth().Authenticate(context.Background(), requestWithAuth("Bearer "))
	if result.Decision != auth.No {
		t.Errorf("decision = %v, want No", result.Decision)
	}
}

func TestMissingHeaderAbstains(t *testing.T) {
	result := newAuth().Authenticate(context.Background(), requestWithAuth(""))
	if result.Decision != auth.Abstain {
		t.Errorf("decision = %v, want Abstain", result.Decision)
	}
}

func TestNonBearerAbstains(t *testing.T) {
	result := newAuth().Authenticate(context.Background(), requestWithAuth("Basic dXNlcjpwYXNz"))
	if result.Decision != auth.Abstain {
		t.Errorf("decision = %v, want Abstain", result.Decision)
	}
}

func TestIdentityIsCopied(t *testing.T) {
	a := newAuth()
	first := a.Authenticate(context.Background(), requestWithAuth("Bearer sk-valid-1"))
	first.Identity.Subject = "mutated"

	second := a.Authenticate(context.Background(), requestWithAuth("Bearer sk-valid-1"))
	if second.Identity.Subject != "svc-a" {
		t.Error("identity should be copied per authentication")
	}
}
