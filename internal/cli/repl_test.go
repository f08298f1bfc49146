package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type stubExec struct {
	loggedIn bool
	calls    []string

	signupErr error
	loginErr  error
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) Signup(ctx context.Context) error {
	s.calls = append(s.calls, "signup")
	return s.signupErr
}

func (s *stubExec) Login(ctx context.Context) error {
	s.calls = append(s.calls, "login")
	return s.loginErr
}

func (s *stubExec) SetRole(ctx context.Context) error {
	s.calls = append(s.calls, "role")
	return nil
}

func (s *stubExec) SetPolicy(ctx context.Context) error {
	s.calls = append(s.calls, "policy")
	return nil
}

func (s *stubExec) Events(ctx context.Context) error {
	s.calls = append(s.calls, "events")
	return nil
}

func (s *stubExec) AddEvent(ctx context.Context) error {
	s.calls = append(s.calls, "event")
	return nil
}

func (s *stubExec) Logout(ctx context.Context) error {
	s.calls = append(s.calls, "logout")
	return nil
}

func runWithInput(t *testing.T, exec execIface, input string) string {
	t.Helper()
	var out bytes.Buffer
	runREPL(context.Background(), exec, bufio.NewReader(strings.NewReader(input)), &out)
	return out.String()
}

func TestREPL_DispatchesCommands(t *testing.T) {
	t.Parallel()

	stub := &stubExec{}
	runWithInput(t, stub, "signup\nlogin\nrole\npolicy\nevents\nevent\nlogout\nexit\n")

	want := []string{"signup", "login", "role", "policy", "events", "event", "logout"}
	if len(stub.calls) != len(want) {
		t.Fatalf("calls %v, want %v", stub.calls, want)
	}
	for i := range want {
		if stub.calls[i] != want[i] {
			t.Fatalf("calls %v, want %v", stub.calls, want)
		}
	}
}

func TestREPL_UnknownCommand(t *testing.T) {
	t.Parallel()

	out := runWithInput(t, &stubExec{}, "frobnicate\nexit\n")
	if !strings.Contains(out, `unknown command "frobnicate"`) {
		t.Fatalf("missing unknown-command message: %q", out)
	}
}

func TestREPL_CommandErrorDoesNotEndSession(t *testing.T) {
	t.Parallel()

	stub := &stubExec{loginErr: errors.New("unauthorized")}
	out := runWithInput(t, stub, "login\nlogin\nexit\n")

	if len(stub.calls) != 2 {
		t.Fatalf("loop stopped after a failed command: calls %v", stub.calls)
	}
	if !strings.Contains(out, "unauthorized") {
		t.Fatalf("error not reported: %q", out)
	}
}

func TestREPL_HelpFollowsSessionState(t *testing.T) {
	t.Parallel()

	out := runWithInput(t, &stubExec{}, "help\nexit\n")
	if !strings.Contains(out, "signup, login") {
		t.Fatalf("anonymous help wrong: %q", out)
	}

	out = runWithInput(t, &stubExec{loggedIn: true}, "help\nexit\n")
	if !strings.Contains(out, "role, policy, events, event, logout") {
		t.Fatalf("logged-in help wrong: %q", out)
	}
}

func TestREPL_EOFEndsSession(t *testing.T) {
	t.Parallel()

	stub := &stubExec{}
	runWithInput(t, stub, "events\n")
	if len(stub.calls) != 1 || stub.calls[0] != "events" {
		t.Fatalf("calls %v", stub.calls)
	}
}
