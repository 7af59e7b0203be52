package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/snsclone-go/apperror"
	"github.com/user/snsclone-go/models"
	"github.com/user/snsclone-go/state"
	"github.com/user/snsclone-go/validation"
)

// Outcome reports where Bootstrap left the session.
type Outcome int

const (
	// OutcomeSignedOut means no token was stored; the sign-in view stays up.
	OutcomeSignedOut Outcome = iota
	// OutcomeSignInRequired means a stored token was rejected or the profile could not be loaded.
	OutcomeSignInRequired
	// OutcomeReady means the session and the feed were loaded.
	OutcomeReady
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSignInRequired:
		return "sign-in-required"
	case OutcomeReady:
		return "ready"
	default:
		return "signed-out"
	}
}

// Bootstrap restores a stored session. With a token it hides sign-in and loads the
// caller's profile; if that fails the sign-in view comes back and nothing else is
// fetched. Otherwise posts, the roster and comments are loaded in that order.
func (a *App) Bootstrap(ctx context.Context) (Outcome, error) {
	_, ok, err := a.tokens.Load(ctx)
	if err != nil {
		return OutcomeSignedOut, err
	}
	if !ok {
		a.logger.Debug("no stored session")
		return OutcomeSignedOut, nil
	}

	a.store.Dispatch(state.HideSignIn{})
	me, err := a.gw.MyProfile(ctx)
	if err != nil {
		a.logger.Info("stored session rejected", zap.Error(err))
		a.store.Dispatch(state.ShowSignIn{})
		return OutcomeSignInRequired, err
	}
	a.store.Dispatch(state.OwnProfileFetched{Profile: me})

	err = errors.Join(
		a.refreshPosts(ctx),
		a.refreshProfiles(ctx),
		a.refreshComments(ctx),
	)
	if err != nil {
		return OutcomeReady, err
	}
	a.logger.Info("session restored", zap.Int64("account", me.OwnerRef))
	return OutcomeReady, nil
}

// SignIn creates a session for cred and loads the roster, feed and own profile. The
// sign-in view is closed whatever the outcome.
func (a *App) SignIn(ctx context.Context, cred models.Credential) error {
	if err := validation.Credential(cred); err != nil {
		return err
	}
	defer a.store.Dispatch(state.HideSignIn{})
	end := a.authRequest()
	defer end()

	if err := a.createSession(ctx, cred); err != nil {
		return err
	}
	return a.loadSession(ctx)
}

// SignUp registers cred, signs in, creates a profile with DefaultNickname and loads
// everything SignIn does. The sign-up view is closed whatever the outcome.
func (a *App) SignUp(ctx context.Context, cred models.Credential) error {
	if err := validation.Credential(cred); err != nil {
		return err
	}
	defer a.store.Dispatch(state.HideSignUp{})
	end := a.authRequest()
	defer end()

	acc, err := a.gw.Register(ctx, cred)
	if err != nil {
		return err
	}
	a.logger.Info("registered", zap.Int64("account", acc.ID))

	if err := a.createSession(ctx, cred); err != nil {
		return err
	}
	profile, err := a.gw.CreateProfile(ctx, models.NewProfile{Nickname: DefaultNickname})
	if err != nil {
		return err
	}
	a.store.Dispatch(state.ProfileCreated{Profile: profile})
	return a.loadSession(ctx)
}

// SignOut forgets the stored token and resets the session.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.tokens.Clear(ctx); err != nil {
		return err
	}
	a.store.Dispatch(state.SignedOut{})
	return nil
}

// EditNickname changes the caller's nickname locally. SaveProfile sends it.
func (a *App) EditNickname(text string) {
	a.store.Dispatch(state.SetOwnNickname{Text: text})
}

// SaveProfile sends the caller's current nickname and an optional new avatar.
func (a *App) SaveProfile(ctx context.Context, image *models.Upload) error {
	me := a.store.Snapshot().Session.Me
	if me.ID == 0 {
		return apperror.NewAuthError("not signed in", nil)
	}
	update := models.ProfileUpdate{ID: me.ID, Nickname: me.Nickname, Image: image}
	if err := validation.ProfileUpdate(update); err != nil {
		return err
	}

	end := a.authRequest()
	defer end()
	profile, err := a.gw.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	a.store.Dispatch(state.ProfileUpdated{Profile: profile}, state.HideProfileEditor{})
	return nil
}

func (a *App) createSession(ctx context.Context, cred models.Credential) error {
	pair, err := a.gw.CreateSession(ctx, cred)
	if err != nil {
		return err
	}
	if err := a.tokens.Save(ctx, pair.Access); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	return nil
}

// loadSession fetches roster, posts, comments and own profile. A failed step does not
// stop the ones after it; all failures are returned together.
func (a *App) loadSession(ctx context.Context) error {
	errs := []error{
		a.refreshProfiles(ctx),
		a.refreshPosts(ctx),
		a.refreshComments(ctx),
	}
	me, err := a.gw.MyProfile(ctx)
	if err == nil {
		a.store.Dispatch(state.OwnProfileFetched{Profile: me})
	}
	return errors.Join(append(errs, err)...)
}

func (a *App) refreshProfiles(ctx context.Context) error {
	profiles, err := a.gw.ListProfiles(ctx)
	if err != nil {
		return err
	}
	a.store.Dispatch(state.ProfilesFetched{Profiles: profiles})
	return nil
}
