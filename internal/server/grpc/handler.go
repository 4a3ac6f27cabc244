package grpc

import (
	"context"

	"github.com/dmitrijs2005/baconnect/internal/aggregate"
	"github.com/dmitrijs2005/baconnect/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Login takes {"username", "password"} and returns {"access_token"}.
func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	username := stringField(req, "username")

	u, err := s.svc.Auth.Verify(ctx, username, stringField(req, "password"))
	if err != nil {
		s.logger.Warn(ctx, "login failed", "username", username, "error", err)
		return nil, toStatus(err)
	}

	token, err := auth.GenerateToken(u.Username, s.secret, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "logged in", "username", u.Username)
	return structpb.NewStruct(map[string]any{"access_token": token})
}

// ListMoments takes {"query"} and returns the current feed for it.
func (s *GRPCServer) ListMoments(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	moments, ok := <-s.svc.Engine.Search(ctx, stringField(req, "query"))
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, toStatus(err)
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	comments, err := s.svc.Queries.ListAllComments(ctx)
	if err != nil {
		s.logger.Error(ctx, "list comments", "error", err)
		return nil, toStatus(err)
	}

	return feedStruct(aggregate.Items(moments, comments))
}

// AddComment takes {"moment_id", "content"} and returns the stored
// comment under "comment". The author is the token's user.
func (s *GRPCServer) AddComment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	momentID, err := idField(req, "moment_id")
	if err != nil {
		return nil, err
	}

	c, err := s.svc.Comments.Add(ctx, momentID, usernameFrom(ctx), stringField(req, "content"))
	if err != nil {
		return nil, toStatus(err)
	}

	return structpb.NewStruct(map[string]any{"comment": commentValue(*c)})
}

// DeleteComment takes {"comment_id"}. Only the comment's author may
// delete it.
func (s *GRPCServer) DeleteComment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(req, "comment_id")
	if err != nil {
		return nil, err
	}

	if err := s.svc.Comments.Delete(ctx, id, usernameFrom(ctx)); err != nil {
		return nil, toStatus(err)
	}

	return &structpb.Struct{}, nil
}

// WatchFeed takes {"query"} and streams the feed for it on every change
// of moments or comments until the client goes away.
func (s *GRPCServer) WatchFeed(req *structpb.Struct, stream grpc.ServerStream) error {
	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()

	query := stringField(req, "query")
	s.logger.Debug(ctx, "feed watch started", "query", query)

	feed := aggregate.Feed(ctx, s.svc.Engine.Search(ctx, query), s.svc.Queries.AllComments(ctx))
	for items := range feed {
		out, err := feedStruct(items)
		if err != nil {
			return toStatus(err)
		}
		if err := stream.SendMsg(out); err != nil {
			return err
		}
	}

	return toStatus(ctx.Err())
}
