package cli

import (
	"context"
	"fmt"
)

func (a *App) SetRole(ctx context.Context) error {
	principal, err := a.principal()
	if err != nil {
		return err
	}

	role, err := GetSimpleText(a.reader, "Enter role (student|teacher|admin)", a.out)
	if err != nil {
		return err
	}

	updated, err := a.backend.Identity.SetRole(ctx, principal.Subject, role)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Role of %s set to %s\n", principal.Subject, updated)
	return nil
}

func (a *App) SetPolicy(ctx context.Context) error {
	principal, err := a.principal()
	if err != nil {
		return err
	}

	policy, err := GetSimpleText(a.reader, "Enter encryption policy (empty for SSE-S3)", a.out)
	if err != nil {
		return err
	}

	updated, err := a.backend.Identity.SetEncryptionPolicy(ctx, principal.Subject, policy)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Encryption policy of %s set to %s\n", principal.Subject, updated)
	return nil
}
