package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jourin/internal/client/client"
	"github.com/dmitrijs2005/jourin/internal/common"
)

// Swapped in tests.
var getSimpleText = askLine
var getPassword = askPassword

// Register prompts for a username and password and creates an account on
// the server. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		a.log.Error(ctx, "registration failed", "user", userName, "error", err)
		return err
	}

	a.printf("Registered %s, you can log in now.\n", userName)
	return nil
}

// Login prompts for credentials and tries the server first. When the server
// is unreachable it falls back to the offline cache, which unlocks the CLI
// but keeps history and streak local.
//
// Final mode:
//   - ModeOnline if online login succeeds,
//   - ModeOffline if offline login succeeds,
//   - ModeDisabled if both fail.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.authService.OnlineLogin(ctx, userName, password)
	if err == nil {
		a.setMode(ModeOnline)
		a.printf("Logged in as %s.\n", userName)
		return nil
	}

	if !errors.Is(err, client.ErrUnavailable) {
		a.log.Warn(ctx, "login unsuccessful", "user", userName, "error", err)
		a.printf("Login failed: %v\n", err)
		return err
	}

	a.log.Info(ctx, "server unavailable, trying offline login", "user", userName)
	if err := a.authService.OfflineLogin(ctx, userName, password); err != nil {
		a.log.Warn(ctx, "offline login unsuccessful", "user", userName, "error", err)
		a.setMode(ModeDisabled)
		a.printf("Offline login failed: %v\n", err)
		return err
	}

	a.setMode(ModeOffline)
	a.printf("Logged in offline as %s. Entries stay on this device.\n", userName)
	return nil
}

// Logout returns to anonymous mode. The offline credential cache survives.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out.\n")
	return nil
}

// Forget wipes the cached offline credentials.
func (a *App) Forget(ctx context.Context) error {
	if err := a.authService.ClearOfflineData(ctx); err != nil {
		return err
	}
	a.printf("Offline credentials removed.\n")
	return nil
}
