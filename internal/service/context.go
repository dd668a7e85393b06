package service

import "context"

type ctxKey string

const (
	ctxSubjectKey ctxKey = "subject"
	ctxRoleKey    ctxKey = "role"
)

func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxSubjectKey, sub)
}

func SubjectFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxSubjectKey).(string)
	return v, ok
}

type Role string

const (
	RoleCustomer Role = "ROLE_CUSTOMER"
	RoleAdmin    Role = "ROLE_ADMIN"
)

func WithRole(ctx context.Context, r Role) context.Context {
	return context.WithValue(ctx, ctxRoleKey, r)
}
func RoleFromContext(ctx context.Context) (Role, bool) {
	v, ok := ctx.Value(ctxRoleKey).(Role)
	return v, ok
}

func requireAdmin(ctx context.Context) error {
	role, ok := RoleFromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}
	if role != RoleAdmin {
		return ErrForbidden
	}
	return nil
}
