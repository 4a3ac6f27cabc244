package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestAccessTokenInterceptor(t *testing.T) {
	s := NewGRPCServer("", logging.Discard(), Services{}, secret, time.Minute, nil)

	valid, err := auth.GenerateToken("lucia", []byte(secret), time.Minute)
	require.NoError(t, err)
	expired, err := auth.GenerateToken("lucia", []byte(secret), -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.GenerateToken("lucia", []byte("other"), time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		token    string
		wantCode codes.Code
		wantUser string
	}{
		{name: "public method without token", method: MethodListMoments, wantCode: codes.OK},
		{name: "protected without token", method: MethodAddComment, wantCode: codes.Unauthenticated},
		{name: "protected with valid token", method: MethodDeleteComment, token: valid, wantCode: codes.OK, wantUser: "lucia"},
		{name: "expired token", method: MethodAddComment, token: expired, wantCode: codes.Unauthenticated},
		{name: "foreign signature", method: MethodAddComment, token: foreign, wantCode: codes.Unauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.token != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(common.AccessTokenHeaderName, tt.token))
			}

			var gotUser string
			called := false
			h := func(ctx context.Context, req any) (any, error) {
				called = true
				gotUser = usernameFrom(ctx)
				return "ok", nil
			}

			_, err := s.accessTokenInterceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: tt.method}, h)
			assert.Equal(t, tt.wantCode, status.Code(err))
			assert.Equal(t, tt.wantCode == codes.OK, called)
			assert.Equal(t, tt.wantUser, gotUser)
		})
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{nil, codes.OK},
		{common.ErrRequiredFieldsMissing, codes.InvalidArgument},
		{common.ErrorNotFound, codes.NotFound},
		{common.ErrInvalidCredentials, codes.Unauthenticated},
		{common.ErrNotCommentAuthor, codes.PermissionDenied},
		{common.ErrSeedReadOnly, codes.FailedPrecondition},
		{context.Canceled, codes.Canceled},
		{status.Error(codes.Aborted, "x"), codes.Aborted},
		{assert.AnError, codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, status.Code(toStatus(tt.err)), "%v", tt.err)
	}
}
