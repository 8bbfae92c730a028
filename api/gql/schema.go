package gql

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/thesrcielos/HeroHigherLower/internal/apperrors"
	"github.com/thesrcielos/HeroHigherLower/internal/game"
	"github.com/thesrcielos/HeroHigherLower/internal/hero"
	"github.com/thesrcielos/HeroHigherLower/internal/user"
)

// resolverError reports the AppError message to clients and its HTTP status
// as the "code" extension.
type resolverError struct {
	err error
}

func (e resolverError) Error() string {
	return apperrors.Message(e.err)
}

func (e resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": apperrors.Status(e.err)}
}

var errNotAuthenticated = resolverError{apperrors.NewAppError(http.StatusUnauthorized, "Not authenticated", nil)}

type resolveFunc func(p graphql.ResolveParams) (interface{}, error)

func wrap(fn resolveFunc) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		if err != nil {
			if _, ok := err.(resolverError); ok {
				return nil, err
			}
			return nil, resolverError{err}
		}
		return out, nil
	}
}

func identity(p graphql.ResolveParams) (*user.Identity, error) {
	if p.Context == nil {
		return nil, errNotAuthenticated
	}
	id, ok := user.IdentityFromContext(p.Context)
	if !ok {
		return nil, errNotAuthenticated
	}
	return id, nil
}

func nonNull(t graphql.Input) *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(t)}
}

type resolver struct {
	users       *user.UserService
	heroes      *hero.HeroService
	higherLower *game.HigherLowerService
}

// NewSchema builds the public GraphQL schema over the services.
func NewSchema(users *user.UserService, heroes *hero.HeroService, higherLower *game.HigherLowerService) (graphql.Schema, error) {
	r := &resolver{users: users, heroes: heroes, higherLower: higherLower}
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.query(),
		Mutation: r.mutation(),
	})
}

func (r *resolver) query() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"heroes": &graphql.Field{
				Type: graphql.NewList(heroType),
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					heroes, err := r.heroes.ListHeroes(p.Context)
					if err != nil {
						return nil, err
					}
					return presentHeroes(heroes), nil
				}),
			},
			"hero": &graphql.Field{
				Type: heroType,
				Args: graphql.FieldConfigArgument{"id": nonNull(graphql.String)},
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					h, err := r.heroes.GetHero(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					return presentHero(h), nil
				}),
			},
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					users, err := r.users.ListUsers(p.Context)
					if err != nil {
						return nil, err
					}
					return presentUsers(users), nil
				}),
			},
			"user": &graphql.Field{
				Type: userType,
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := identity(p)
					if err != nil {
						return nil, err
					}
					u, err := r.users.GetUser(p.Context, id.ID)
					if err != nil {
						return nil, err
					}
					return presentUser(u), nil
				}),
			},
			"me": &graphql.Field{
				Type: userType,
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := identity(p)
					if err != nil {
						return nil, nil
					}
					u, err := r.users.GetUser(p.Context, id.ID)
					if err != nil {
						return nil, err
					}
					return presentUser(u), nil
				}),
			},
		},
	})
}

func (r *resolver) mutation() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addUser": &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"email":    nonNull(graphql.String),
					"username": nonNull(graphql.String),
					"password": nonNull(graphql.String),
				},
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					auth, err := r.users.Signup(p.Context, user.SignupRequest{
						Email:    p.Args["email"].(string),
						Username: p.Args["username"].(string),
						Password: p.Args["password"].(string),
					})
					if err != nil {
						return nil, err
					}
					return presentAuth(auth), nil
				}),
			},
			"login": &graphql.Field{
				Type: authType,
				Args: graphql.FieldConfigArgument{
					"username": nonNull(graphql.String),
					"password": nonNull(graphql.String),
				},
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					auth, err := r.users.Login(p.Context, user.LoginRequest{
						Username: p.Args["username"].(string),
						Password: p.Args["password"].(string),
					})
					if err != nil {
						return nil, err
					}
					return presentAuth(auth), nil
				}),
			},
			"updateHigherLowerHighestScore": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{"streak": nonNull(graphql.Int)},
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := identity(p)
					if err != nil {
						return nil, err
					}
					u, err := r.users.RecordHigherLowerScore(p.Context, id.ID, p.Args["streak"].(int))
					if err != nil {
						return nil, err
					}
					return presentUser(u), nil
				}),
			},
			"updateDraftGameStats": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{"won": nonNull(graphql.Boolean)},
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := identity(p)
					if err != nil {
						return nil, err
					}
					u, err := r.users.RecordDraftResult(p.Context, id.ID, p.Args["won"].(bool))
					if err != nil {
						return nil, err
					}
					return presentUser(u), nil
				}),
			},
			"startHigherLowerSession": &graphql.Field{
				Type: sessionType,
				Args: graphql.FieldConfigArgument{"attribute": nonNull(graphql.String)},
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := identity(p)
					if err != nil {
						return nil, err
					}
					session, err := r.higherLower.StartSession(p.Context, id.ID, game.StartSessionRequest{
						Attribute: p.Args["attribute"].(string),
					})
					if err != nil {
						return nil, err
					}
					return presentSession(session), nil
				}),
			},
			"validateHigherLowerGuess": &graphql.Field{
				Type: guessResultType,
				Args: graphql.FieldConfigArgument{
					"guess":        nonNull(graphql.String),
					"attribute":    nonNull(graphql.String),
					"heroAId":      nonNull(graphql.String),
					"heroBId":      nonNull(graphql.String),
					"currentScore": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := identity(p); err != nil {
						return nil, err
					}
					req := game.GuessRequest{
						Guess:     p.Args["guess"].(string),
						Attribute: p.Args["attribute"].(string),
						HeroAID:   p.Args["heroAId"].(string),
						HeroBID:   p.Args["heroBId"].(string),
					}
					if score, ok := p.Args["currentScore"].(int); ok {
						req.CurrentScore = score
					}
					result, err := r.higherLower.ValidateGuess(p.Context, req)
					if err != nil {
						return nil, err
					}
					return presentGuess(result), nil
				}),
			},
			"endHigherLowerSession": &graphql.Field{
				Type: persistResultType,
				Args: graphql.FieldConfigArgument{"finalScore": nonNull(graphql.Int)},
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := identity(p)
					if err != nil {
						return nil, err
					}
					summary, err := r.higherLower.EndSession(p.Context, id.ID, game.EndSessionRequest{
						FinalScore: p.Args["finalScore"].(int),
					})
					if err != nil {
						return nil, err
					}
					return presentSummary(summary), nil
				}),
			},
			"changePassword": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"currentPassword": nonNull(graphql.String),
					"newPassword":     nonNull(graphql.String),
				},
				Resolve: wrap(func(p graphql.ResolveParams) (interface{}, error) {
					id, err := identity(p)
					if err != nil {
						return nil, err
					}
					u, err := r.users.ChangePassword(p.Context, id.ID, user.ChangePasswordRequest{
						CurrentPassword: p.Args["currentPassword"].(string),
						NewPassword:     p.Args["newPassword"].(string),
					})
					if err != nil {
						return nil, err
					}
					return presentUser(u), nil
				}),
			},
		},
	})
}
