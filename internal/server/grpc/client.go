package grpc

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/baconnect/internal/aggregate"
	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// FeedClient calls connect.feed.FeedService. After Login the access token
// is attached to every call.
type FeedClient struct {
	cc grpc.ClientConnInterface

	mu    sync.RWMutex
	token string
}

func NewFeedClient(cc grpc.ClientConnInterface) *FeedClient {
	return &FeedClient{cc: cc}
}

func (c *FeedClient) withToken(ctx context.Context) context.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, c.token)
}

func (c *FeedClient) call(ctx context.Context, method string, in map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(c.withToken(ctx), method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *FeedClient) Login(ctx context.Context, username, password string) error {
	out, err := c.call(ctx, MethodLogin, map[string]any{"username": username, "password": password})
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.token = stringField(out, "access_token")
	c.mu.Unlock()
	return nil
}

func (c *FeedClient) ListMoments(ctx context.Context, query string) ([]aggregate.FeedItem, error) {
	out, err := c.call(ctx, MethodListMoments, map[string]any{"query": query})
	if err != nil {
		return nil, err
	}
	return parseFeed(out)
}

func (c *FeedClient) AddComment(ctx context.Context, momentID int64, content string) (models.Comment, error) {
	out, err := c.call(ctx, MethodAddComment, map[string]any{"moment_id": formatID(momentID), "content": content})
	if err != nil {
		return models.Comment{}, err
	}
	return parseComment(out.GetFields()["comment"].GetStructValue())
}

func (c *FeedClient) DeleteComment(ctx context.Context, commentID int64) error {
	_, err := c.call(ctx, MethodDeleteComment, map[string]any{"comment_id": formatID(commentID)})
	return err
}

// FeedStream receives WatchFeed updates.
type FeedStream struct {
	stream grpc.ClientStream
}

func (s *FeedStream) Recv() ([]aggregate.FeedItem, error) {
	out := new(structpb.Struct)
	if err := s.stream.RecvMsg(out); err != nil {
		return nil, err
	}
	return parseFeed(out)
}

// WatchFeed opens a feed stream for query; cancel ctx to close it.
func (c *FeedClient) WatchFeed(ctx context.Context, query string) (*FeedStream, error) {
	stream, err := c.cc.NewStream(c.withToken(ctx), &FeedServiceDesc.Streams[0], MethodWatchFeed)
	if err != nil {
		return nil, err
	}
	req, err := structpb.NewStruct(map[string]any{"query": query})
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(req); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &FeedStream{stream: stream}, nil
}
