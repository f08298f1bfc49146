package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	SetRole(ctx context.Context) error
	SetPolicy(ctx context.Context) error
	Events(ctx context.Context) error
	AddEvent(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line, parses the first token as the command, and dispatches to
// methods on 'a'. Unknown commands are reported back to the user. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed and the loop continues;
// a failed command never ends the session.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprint(w, "identity> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: role, policy, events, event, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: signup, login, exit")
			}
		case "signup":
			cmdErr = a.Signup(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "role":
			cmdErr = a.SetRole(ctx)
		case "policy":
			cmdErr = a.SetPolicy(ctx)
		case "events":
			cmdErr = a.Events(ctx)
		case "event":
			cmdErr = a.AddEvent(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(w, "unknown command %q, try \"help\"\n", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, cmdErr.Error())
		}
	}
}
