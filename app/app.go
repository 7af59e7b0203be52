// Package app runs the client's user-facing flows. Each flow calls the backend through a
// Gateway, persists the session token where needed, and dispatches the outcomes into a
// state.Store. Views (the CLI here) read state from the store and call these flows.
package app

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/user/snsclone-go/models"
	"github.com/user/snsclone-go/state"
	"github.com/user/snsclone-go/tokenstore"
)

// Gateway is the backend API as seen by the flows. *api.Client implements it.
type Gateway interface {
	CreateSession(ctx context.Context, cred models.Credential) (models.TokenPair, error)
	Register(ctx context.Context, cred models.Credential) (models.Account, error)

	CreateProfile(ctx context.Context, p models.NewProfile) (models.Profile, error)
	UpdateProfile(ctx context.Context, u models.ProfileUpdate) (models.Profile, error)
	MyProfile(ctx context.Context) (models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)

	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, p models.NewPost) (models.Post, error)
	UpdateLikes(ctx context.Context, u models.LikeUpdate) (models.Post, error)

	ListComments(ctx context.Context) ([]models.Comment, error)
	CreateComment(ctx context.Context, c models.NewComment) (models.Comment, error)
}

// DefaultNickname is given to the profile created on sign-up.
const DefaultNickname = "anonymous"

// App wires the gateway, the token store and the state store together.
type App struct {
	gw     Gateway
	tokens tokenstore.Store
	store  *state.Store
	logger *zap.Logger

	likes singleflight.Group
}

// New creates an App. A nil store starts from state.Initial(); a nil logger is a no-op.
func New(gw Gateway, tokens tokenstore.Store, store *state.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = state.NewStore(state.Initial(), logger)
	}
	return &App{gw: gw, tokens: tokens, store: store, logger: logger}
}

// Store returns the state store the flows dispatch into.
func (a *App) Store() *state.Store { return a.store }

// State returns the current state snapshot.
func (a *App) State() state.State { return a.store.Snapshot() }

// Open* and Close* show or hide one overlay. Close only takes effect when that
// overlay is the one showing.
func (a *App) OpenSignIn()         { a.store.Dispatch(state.ShowSignIn{}) }
func (a *App) CloseSignIn()        { a.store.Dispatch(state.HideSignIn{}) }
func (a *App) OpenSignUp()         { a.store.Dispatch(state.ShowSignUp{}) }
func (a *App) CloseSignUp()        { a.store.Dispatch(state.HideSignUp{}) }
func (a *App) OpenProfileEditor()  { a.store.Dispatch(state.ShowProfileEditor{}) }
func (a *App) CloseProfileEditor() { a.store.Dispatch(state.HideProfileEditor{}) }
func (a *App) OpenComposer()       { a.store.Dispatch(state.ShowComposer{}) }
func (a *App) CloseComposer()      { a.store.Dispatch(state.HideComposer{}) }

// authRequest marks an auth request in flight and returns the func that ends it.
func (a *App) authRequest() func() {
	a.store.Dispatch(state.BeginAuthRequest{})
	return func() { a.store.Dispatch(state.EndAuthRequest{}) }
}

func (a *App) postRequest() func() {
	a.store.Dispatch(state.BeginPostRequest{})
	return func() { a.store.Dispatch(state.EndPostRequest{}) }
}
