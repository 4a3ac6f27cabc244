package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "connect.feed.FeedService"

	MethodLogin         = "/" + ServiceName + "/Login"
	MethodListMoments   = "/" + ServiceName + "/ListMoments"
	MethodAddComment    = "/" + ServiceName + "/AddComment"
	MethodDeleteComment = "/" + ServiceName + "/DeleteComment"
	MethodWatchFeed     = "/" + ServiceName + "/WatchFeed"
)

// FeedServer is the server API of connect.feed.FeedService. Payloads are
// google.protobuf.Struct values; field names are listed on each handler.
type FeedServer interface {
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListMoments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddComment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteComment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WatchFeed(*structpb.Struct, grpc.ServerStream) error
}

func unary(method string, call func(FeedServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FeedServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FeedServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchFeedHandler(srv any, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(FeedServer).WatchFeed(in, stream)
}

// FeedServiceDesc describes connect.feed.FeedService for
// grpc.ServiceRegistrar.RegisterService.
var FeedServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FeedServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unary(MethodLogin, FeedServer.Login)},
		{MethodName: "ListMoments", Handler: unary(MethodListMoments, FeedServer.ListMoments)},
		{MethodName: "AddComment", Handler: unary(MethodAddComment, FeedServer.AddComment)},
		{MethodName: "DeleteComment", Handler: unary(MethodDeleteComment, FeedServer.DeleteComment)},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "WatchFeed", Handler: watchFeedHandler, ServerStreams: true},
	},
	Metadata: "connect/feed.proto",
}

// RegisterFeedServer registers srv on s.
func RegisterFeedServer(s grpc.ServiceRegistrar, srv FeedServer) {
	s.RegisterService(&FeedServiceDesc, srv)
}
