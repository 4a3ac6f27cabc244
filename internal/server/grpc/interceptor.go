package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const usernameKey ctxKey = "username"

// protected lists the methods that need an access token.
var protected = map[string]bool{
	MethodAddComment:    true,
	MethodDeleteComment: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protected[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	username, err := auth.UsernameFromToken(accessToken, s.secret)
	if errors.Is(err, common.ErrTokenExpired) {
		return nil, status.Error(codes.Unauthenticated, "token expired")
	}
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(context.WithValue(ctx, usernameKey, username), req)
}

func usernameFrom(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}

func (s *GRPCServer) metricsUnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	s.metrics.RPC(info.FullMethod, status.Code(err).String())
	return resp, err
}

func (s *GRPCServer) metricsStreamInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	err := handler(srv, ss)
	s.metrics.RPC(info.FullMethod, status.Code(err).String())
	return err
}
