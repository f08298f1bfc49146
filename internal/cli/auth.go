package cli

import (
	"context"
	"fmt"

	"github.com/schoolcloud/identity/internal/server/services"
)

func (a *App) Signup(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	role, err := GetSimpleText(a.reader, "Enter role (student|teacher|admin, empty for student)", a.out)
	if err != nil {
		return err
	}
	schoolID, err := GetSimpleText(a.reader, "Enter school id (optional)", a.out)
	if err != nil {
		return err
	}
	dob, err := GetSimpleText(a.reader, "Enter date of birth (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	result, err := a.backend.Identity.Signup(ctx, services.SignupParams{
		Email:    email,
		Password: password,
		Role:     role,
		SchoolID: schoolID,
		DOB:      dob,
	})
	if err != nil {
		return err
	}

	a.token = result.Token
	fmt.Fprintf(a.out, "Signed up as %s (%s)\ntoken: %s\n", result.User.Email, result.User.Role, result.Token)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	result, err := a.backend.Identity.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.token = result.Token
	fmt.Fprintf(a.out, "Logged in as %s (%s)\ntoken: %s\n", result.User.Email, result.User.Role, result.Token)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
