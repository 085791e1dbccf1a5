// Package services contains the application services of the jourin client.
// This file defines the authentication service: online/offline login,
// register, logout, liveness ping, and the offline credential cache.
package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/jourin/internal/client/client"
	"github.com/dmitrijs2005/jourin/internal/client/kv"
	"github.com/dmitrijs2005/jourin/internal/client/session"
	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/cryptox"
	"github.com/dmitrijs2005/jourin/internal/logging"
)

// OfflineAuthKey holds the credentials cached by the last online login.
const OfflineAuthKey = "jourin_offline_auth"

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - OnlineLogin: authenticate against the server, cache credentials for
//     offline use, and sync pending local data once per login.
//   - OfflineLogin: verify credentials against the local cache. The session
//     stays anonymous for storage purposes.
//   - Register: create a new user on the server.
//   - Logout: drop tokens and return to anonymous mode.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//   - ClearOfflineData: wipe the cached credentials.
type AuthService interface {
	OfflineLogin(ctx context.Context, username string, password []byte) error
	OnlineLogin(ctx context.Context, username string, password []byte) error
	Register(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	ClearOfflineData(ctx context.Context) error
}

// LoginSyncer runs the one-time upload of anonymous data after login.
type LoginSyncer interface {
	SyncOnLogin(ctx context.Context, identity string) error
	Forget(identity string)
}

type offlineAuth struct {
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type authService struct {
	client  client.Client
	kv      kv.Store
	session *session.Session
	syncer  LoginSyncer
	log     logging.Logger
}

// NewAuthService wires the auth service. syncer may be nil.
func NewAuthService(c client.Client, s kv.Store, sess *session.Session, syncer LoginSyncer, log logging.Logger) AuthService {
	return &authService{client: c, kv: s, session: sess, syncer: syncer, log: log.With("module", "auth")}
}

// OfflineLogin checks (username, password) against the cached verifier. It
// returns client.ErrLocalDataNotAvailable when nothing is cached and
// client.ErrUnauthorized on a mismatch.
func (a *authService) OfflineLogin(ctx context.Context, username string, password []byte) error {
	var cached offlineAuth
	ok, err := kv.LoadJSON(ctx, a.kv, a.log, OfflineAuthKey, &cached)
	if err != nil {
		return err
	}
	if !ok {
		return client.ErrLocalDataNotAvailable
	}
	if cached.Username != username {
		return client.ErrUnauthorized
	}

	candidate := cryptox.LoginVerifier(password, cached.Salt)
	if subtle.ConstantTimeCompare(cached.Verifier, candidate) == 0 {
		return client.ErrUnauthorized
	}

	a.session.SignIn(username, false)
	return nil
}

// OnlineLogin authenticates against the server, caches credentials for
// offline use and, on an anonymous to authenticated transition, uploads
// pending local data. A failed upload is logged and does not fail the login.
func (a *authService) OnlineLogin(ctx context.Context, userName string, password []byte) error {
	salt, err := a.client.GetSalt(ctx, userName)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	verifier := cryptox.LoginVerifier(password, salt)
	if err := a.client.Login(ctx, userName, verifier); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	cached := offlineAuth{Username: userName, Salt: salt, Verifier: verifier}
	if err := kv.SetJSON(ctx, a.kv, OfflineAuthKey, cached); err != nil {
		return fmt.Errorf("offline data saving error: %w", err)
	}

	wasAnonymous := !a.session.Authenticated()
	a.session.SignIn(userName, true)

	if wasAnonymous && a.syncer != nil {
		if err := a.syncer.SyncOnLogin(ctx, userName); err != nil {
			a.log.Warn(ctx, "login sync failed, local data kept", "user", userName, "error", err)
		}
	}
	return nil
}

// Register creates a new account on the server with a fresh random salt.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	salt := common.GenerateRandByteArray(32)
	verifier := cryptox.LoginVerifier(password, salt)

	return a.client.Register(ctx, username, salt, verifier)
}

func (a *authService) Logout(ctx context.Context) error {
	identity := a.session.Identity()
	a.client.Logout()
	a.session.SignOut()
	if a.syncer != nil && identity != "" {
		a.syncer.Forget(identity)
	}
	a.log.Info(ctx, "logged out", "user", identity)
	return nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func (a *authService) ClearOfflineData(ctx context.Context) error {
	return a.kv.Delete(ctx, OfflineAuthKey)
}
