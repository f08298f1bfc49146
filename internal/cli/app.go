// Package cli implements the operator console for the identity backend. It
// drives the identity services directly; protected commands still pass a
// bearer token through the authorization guard, the same gate any other
// caller goes through.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/schoolcloud/identity/internal/common"
	"github.com/schoolcloud/identity/internal/server"
	"github.com/schoolcloud/identity/internal/server/auth"
)

type App struct {
	backend *server.App
	token   string
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(backend *server.App) *App {
	return &App{
		backend: backend,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.backend.Close()
	runREPL(ctx, a, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

// principal re-authorizes the session token for every protected command,
// exactly the way a protected route would.
func (a *App) principal() (*auth.Principal, error) {
	headers := map[string]string{
		common.AuthorizationHeaderName: common.BearerPrefix + a.token,
	}
	return a.backend.Guard.Authorize(headers)
}
