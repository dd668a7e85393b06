package grpc

import (
	"context"
	"strings"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/token"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type TokenParser interface {
	Parse(token string) (*token.Claims, error)
}

var publicMethods = map[string]struct{}{
	"/grpc.health.v1.Health/Check":                                   {},
	"/grpc.health.v1.Health/Watch":                                   {},
	"/grpc.health.v1.Health/List":                                    {},
	"/grpc.reflection.v1alpha.ServerReflection/ServerReflectionInfo": {},
	"/grpc.reflection.v1.ServerReflection/ServerReflectionInfo":      {},
}

// NewAdminUnaryServerInterceptor пропускает health и reflection без токена,
// остальные методы требуют админский Bearer в metadata.
func NewAdminUnaryServerInterceptor(tokens TokenParser, log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := publicMethods[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		ctx, err := authorize(ctx, tokens, info.FullMethod, log)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func NewAdminStreamServerInterceptor(tokens TokenParser, log *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if _, ok := publicMethods[info.FullMethod]; ok {
			return handler(srv, ss)
		}
		if _, err := authorize(ss.Context(), tokens, info.FullMethod, log); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

func authorize(ctx context.Context, tokens TokenParser, method string, log *zap.Logger) (context.Context, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Errorf(codes.Unauthenticated, "missing metadata (method=%s)", method)
	}
	authz := getFirst(md, "authorization")
	if authz == "" {
		return nil, status.Errorf(codes.Unauthenticated, "authorization header not found (method=%s)", method)
	}
	prefix := "bearer "
	if len(authz) < len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return nil, status.Error(codes.Unauthenticated, "invalid authorization scheme")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return nil, status.Error(codes.Unauthenticated, "empty bearer token")
	}

	claims, err := tokens.Parse(raw)
	if err != nil {
		log.Warn("grpc admin token rejected", zap.String("method", method), zap.Error(err))
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	if service.Role(claims.Role) != service.RoleAdmin {
		return nil, status.Error(codes.PermissionDenied, "admin role required")
	}

	ctx = service.WithRole(ctx, service.RoleAdmin)
	ctx = service.WithSubject(ctx, claims.Subject)
	return ctx, nil
}

func getFirst(md metadata.MD, key string) string {
	vals := md.Get(key)
	if len(vals) > 0 {
		return vals[0]
	}
	return ""
}
