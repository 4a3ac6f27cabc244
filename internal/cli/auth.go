package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/cryptox"
)

func (a *App) Register(ctx context.Context) error {
	username, err := a.prompt("Enter username")
	if err != nil {
		return err
	}
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.WipeByteArray(password)

	u, err := a.auth.Register(ctx, username, email, string(password))
	if errors.Is(err, common.ErrUsernameTaken) {
		a.println("That username is taken, pick another one")
		return nil
	}
	if err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", u.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := a.prompt("Enter username")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.WipeByteArray(password)

	u, err := a.auth.Login(ctx, username, string(password))
	if errors.Is(err, common.ErrInvalidCredentials) {
		a.println("Wrong username or password")
		return nil
	}
	if err != nil {
		return err
	}

	a.printf("Hola, %s!\n", u.Username)
	return nil
}

// Logout ends the session; with wipe every local account is removed too.
func (a *App) Logout(ctx context.Context, wipe bool) error {
	if err := a.auth.Logout(ctx, wipe); err != nil {
		return err
	}
	if wipe {
		a.println("Local accounts removed")
	} else {
		a.println("Logged out")
	}
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.printf("%s <%s>\n", u.Username, u.Email)
	if u.Description != "" {
		a.println(u.Description)
	}
	if u.ProfilePictureURI != "" {
		a.printf("Picture: %s\n", u.ProfilePictureURI)
	}
	return nil
}

// EditProfile asks for a new description and picture; blank answers keep
// the current value.
func (a *App) EditProfile(ctx context.Context) error {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	description, err := a.prompt("Description (blank keeps current)")
	if err != nil {
		return err
	}
	picture, err := a.prompt("Picture URI (blank keeps current)")
	if err != nil {
		return err
	}
	if description == "" {
		description = u.Description
	}
	if picture == "" {
		picture = u.ProfilePictureURI
	}

	changed, err := a.auth.UpdateProfile(ctx, description, picture)
	if err != nil {
		return err
	}
	if changed {
		a.println("Profile saved")
	} else {
		a.println("Nothing changed")
	}
	return nil
}
