package graphql

import (
	"context"
	"time"

	"github.com/and161185/todo-graph/internal/model"
	"github.com/and161185/todo-graph/internal/service"
	"github.com/gofrs/uuid/v5"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// Resolvers wires application services into GraphQL field resolvers.
type Resolvers struct {
	auth  service.AuthService
	todos service.TodoService
	users service.UserService
	log   *zap.Logger
}

// NewResolvers constructs the resolver set.
func NewResolvers(auth service.AuthService, todos service.TodoService, users service.UserService, log *zap.Logger) *Resolvers {
	return &Resolvers{auth: auth, todos: todos, users: users, log: log}
}

// callerID resolves the caller's identity from the request context.
// Every protected resolver goes through this single gate.
func (r *Resolvers) callerID(ctx context.Context) (uuid.UUID, error) {
	id, err := r.auth.ResolveIdentity(TokenFromCtx(ctx))
	if err != nil {
		return uuid.Nil, r.mapError(err)
	}
	return id, nil
}

func idArg(p graphql.ResolveParams) (uuid.UUID, error) {
	s, _ := p.Args["id"].(string)
	id, err := uuid.FromString(s)
	if err != nil {
		return uuid.Nil, &apiError{msg: "malformed id", code: codeBadUserInput}
	}
	return id, nil
}

// optStr returns a pointer only when the argument was supplied,
// so absent and empty values stay distinguishable in patches.
func optStr(p graphql.ResolveParams, name string) *string {
	if v, ok := p.Args[name]; ok {
		if s, ok := v.(string); ok {
			return &s
		}
	}
	return nil
}

func optBool(p graphql.ResolveParams, name string) *bool {
	if v, ok := p.Args[name]; ok {
		if b, ok := v.(bool); ok {
			return &b
		}
	}
	return nil
}

func userOut(u *model.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       u.ID.String(),
		"username": u.Username,
		"email":    u.Email,
	}
}

func todoOut(t *model.Todo) map[string]interface{} {
	out := map[string]interface{}{
		"id":        t.ID.String(),
		"ownerId":   t.OwnerID.String(),
		"title":     t.Title,
		"completed": t.Completed,
		"createdAt": t.CreatedAt.Format(time.RFC3339),
		"updatedAt": t.UpdatedAt.Format(time.RFC3339),
	}
	if t.Description != "" {
		out["description"] = t.Description
	}
	return out
}

func todosOut(ts []model.Todo) []interface{} {
	out := make([]interface{}, 0, len(ts))
	for i := range ts {
		out = append(out, todoOut(&ts[i]))
	}
	return out
}

// --- Query ---

func (r *Resolvers) resolveHello(graphql.ResolveParams) (interface{}, error) {
	return "Hello World!", nil
}

func (r *Resolvers) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	callerID, err := r.callerID(p.Context)
	if err != nil {
		return nil, err
	}
	u, err := r.users.Get(p.Context, callerID)
	if err != nil {
		return nil, r.mapError(err)
	}
	return userOut(u), nil
}

// resolveTodos lists the caller's own items. There is no unscoped listing.
func (r *Resolvers) resolveTodos(p graphql.ResolveParams) (interface{}, error) {
	callerID, err := r.callerID(p.Context)
	if err != nil {
		return nil, err
	}
	ts, err := r.todos.ListForOwner(p.Context, callerID)
	if err != nil {
		return nil, r.mapError(err)
	}
	return todosOut(ts), nil
}

func (r *Resolvers) resolveTodo(p graphql.ResolveParams) (interface{}, error) {
	callerID, err := r.callerID(p.Context)
	if err != nil {
		return nil, err
	}
	id, err := idArg(p)
	if err != nil {
		return nil, err
	}
	t, err := r.todos.Get(p.Context, callerID, id)
	if err != nil {
		return nil, r.mapError(err)
	}
	return todoOut(t), nil
}

func (r *Resolvers) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	id, err := idArg(p)
	if err != nil {
		return nil, err
	}
	u, err := r.users.Get(p.Context, id)
	if err != nil {
		return nil, r.mapError(err)
	}
	return userOut(u), nil
}

func (r *Resolvers) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	us, err := r.users.List(p.Context)
	if err != nil {
		return nil, r.mapError(err)
	}
	out := make([]interface{}, 0, len(us))
	for i := range us {
		out = append(out, userOut(&us[i]))
	}
	return out, nil
}

// --- Mutation ---

func (r *Resolvers) resolveRegister(p graphql.ResolveParams) (interface{}, error) {
	username, _ := p.Args["username"].(string)
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	tok, u, err := r.auth.Register(p.Context, username, email, password)
	if err != nil {
		return nil, r.mapError(err)
	}
	return map[string]interface{}{"token": tok.AccessToken, "user": userOut(u)}, nil
}

func (r *Resolvers) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	tok, u, err := r.auth.LoginWithIP(p.Context, email, password, RemoteAddrFromCtx(p.Context))
	if err != nil {
		return nil, r.mapError(err)
	}
	return map[string]interface{}{"token": tok.AccessToken, "user": userOut(u)}, nil
}

// resolveCreateTodo stamps the owner from the caller's identity; there is no
// owner field in the input at all.
func (r *Resolvers) resolveCreateTodo(p graphql.ResolveParams) (interface{}, error) {
	callerID, err := r.callerID(p.Context)
	if err != nil {
		return nil, err
	}
	title, _ := p.Args["title"].(string)
	description, _ := p.Args["description"].(string)

	t, err := r.todos.Create(p.Context, callerID, title, description)
	if err != nil {
		return nil, r.mapError(err)
	}
	return todoOut(t), nil
}

func (r *Resolvers) resolveUpdateTodo(p graphql.ResolveParams) (interface{}, error) {
	callerID, err := r.callerID(p.Context)
	if err != nil {
		return nil, err
	}
	id, err := idArg(p)
	if err != nil {
		return nil, err
	}
	patch := model.TodoPatch{
		Title:       optStr(p, "title"),
		Description: optStr(p, "description"),
		Completed:   optBool(p, "completed"),
	}
	t, err := r.todos.Update(p.Context, callerID, id, patch)
	if err != nil {
		return nil, r.mapError(err)
	}
	return todoOut(t), nil
}

func (r *Resolvers) resolveDeleteTodo(p graphql.ResolveParams) (interface{}, error) {
	callerID, err := r.callerID(p.Context)
	if err != nil {
		return nil, err
	}
	id, err := idArg(p)
	if err != nil {
		return nil, err
	}
	removed, err := r.todos.Delete(p.Context, callerID, id)
	if err != nil {
		return nil, r.mapError(err)
	}
	return removed, nil
}

func (r *Resolvers) resolveUpdateUser(p graphql.ResolveParams) (interface{}, error) {
	callerID, err := r.callerID(p.Context)
	if err != nil {
		return nil, err
	}
	patch := model.UserPatch{
		Username: optStr(p, "username"),
		Email:    optStr(p, "email"),
	}
	u, err := r.users.UpdateSelf(p.Context, callerID, patch)
	if err != nil {
		return nil, r.mapError(err)
	}
	return userOut(u), nil
}

func (r *Resolvers) resolveDeleteUser(p graphql.ResolveParams) (interface{}, error) {
	callerID, err := r.callerID(p.Context)
	if err != nil {
		return nil, err
	}
	removed, err := r.users.DeleteSelf(p.Context, callerID)
	if err != nil {
		return nil, r.mapError(err)
	}
	return removed, nil
}

// --- field resolvers ---

// resolveUserTodos backs User.todos: the todo table is the source of truth,
// not the denormalized id list on the user row. Items stay caller-scoped
// even when reached through user objects: only the owner sees the list,
// every other caller gets null.
func (r *Resolvers) resolveUserTodos(p graphql.ResolveParams) (interface{}, error) {
	src, ok := p.Source.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	idStr, ok := src["id"].(string)
	if !ok {
		return nil, nil
	}
	ownerID, err := uuid.FromString(idStr)
	if err != nil {
		return nil, nil
	}
	callerID, err := r.auth.ResolveIdentity(TokenFromCtx(p.Context))
	if err != nil || callerID != ownerID {
		return nil, nil
	}
	ts, err := r.todos.ListForOwner(p.Context, ownerID)
	if err != nil {
		return nil, r.mapError(err)
	}
	return todosOut(ts), nil
}

// resolveTodoUser backs Todo.user.
func (r *Resolvers) resolveTodoUser(p graphql.ResolveParams) (interface{}, error) {
	src, ok := p.Source.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	ownerStr, ok := src["ownerId"].(string)
	if !ok {
		return nil, &apiError{msg: "malformed owner id", code: codeInternal}
	}
	ownerID, err := uuid.FromString(ownerStr)
	if err != nil {
		return nil, &apiError{msg: "malformed owner id", code: codeInternal}
	}
	u, err := r.users.Get(p.Context, ownerID)
	if err != nil {
		return nil, r.mapError(err)
	}
	return userOut(u), nil
}
