package grpc

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/baconnect/internal/aggregate"
	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Ids travel as decimal strings: seed ids sit near math.MinInt64 and do
// not survive a float64 round trip.

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func stringField(in *structpb.Struct, name string) string {
	return in.GetFields()[name].GetStringValue()
}

func idField(in *structpb.Struct, name string) (int64, error) {
	v := stringField(in, name)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, status.Errorf(codes.InvalidArgument, "%s: %q is not an id", name, v)
	}
	return id, nil
}

func momentValue(m models.Moment) map[string]any {
	return map[string]any{
		"id":          formatID(m.ID),
		"image_uri":   m.ImageURI,
		"description": m.Description,
		"date":        float64(m.Date),
		"location":    m.Location,
		"seed":        m.IsSeed(),
	}
}

func commentValue(c models.Comment) map[string]any {
	return map[string]any{
		"id":        formatID(c.ID),
		"moment_id": formatID(c.MomentID),
		"author":    c.Author,
		"content":   c.Content,
		"timestamp": float64(c.Timestamp),
	}
}

// feedStruct encodes items as {"items": [{"moment": {...}, "comment_count": n}]}.
func feedStruct(items []aggregate.FeedItem) (*structpb.Struct, error) {
	list := make([]any, 0, len(items))
	for _, it := range items {
		list = append(list, map[string]any{
			"moment":        momentValue(it.Moment),
			"comment_count": float64(it.CommentCount),
		})
	}
	return structpb.NewStruct(map[string]any{"items": list})
}

func parseMoment(v *structpb.Struct) (models.Moment, error) {
	id, err := strconv.ParseInt(stringField(v, "id"), 10, 64)
	if err != nil {
		return models.Moment{}, err
	}
	return models.Moment{
		ID:          id,
		ImageURI:    stringField(v, "image_uri"),
		Description: stringField(v, "description"),
		Date:        int64(v.GetFields()["date"].GetNumberValue()),
		Location:    stringField(v, "location"),
	}, nil
}

func parseComment(v *structpb.Struct) (models.Comment, error) {
	id, err := strconv.ParseInt(stringField(v, "id"), 10, 64)
	if err != nil {
		return models.Comment{}, err
	}
	momentID, err := strconv.ParseInt(stringField(v, "moment_id"), 10, 64)
	if err != nil {
		return models.Comment{}, err
	}
	return models.Comment{
		ID:        id,
		MomentID:  momentID,
		Author:    stringField(v, "author"),
		Content:   stringField(v, "content"),
		Timestamp: int64(v.GetFields()["timestamp"].GetNumberValue()),
	}, nil
}

func parseFeed(v *structpb.Struct) ([]aggregate.FeedItem, error) {
	values := v.GetFields()["items"].GetListValue().GetValues()
	out := make([]aggregate.FeedItem, 0, len(values))
	for _, item := range values {
		fields := item.GetStructValue()
		m, err := parseMoment(fields.GetFields()["moment"].GetStructValue())
		if err != nil {
			return nil, err
		}
		out = append(out, aggregate.FeedItem{
			Moment:       m,
			CommentCount: int(fields.GetFields()["comment_count"].GetNumberValue()),
		})
	}
	return out, nil
}

// toStatus maps data core errors onto gRPC status codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := codes.Internal
	switch {
	case errors.Is(err, common.ErrRequiredFieldsMissing):
		code = codes.InvalidArgument
	case errors.Is(err, common.ErrorNotFound):
		code = codes.NotFound
	case errors.Is(err, common.ErrInvalidCredentials):
		code = codes.Unauthenticated
	case errors.Is(err, common.ErrNotCommentAuthor):
		code = codes.PermissionDenied
	case errors.Is(err, common.ErrSeedReadOnly):
		code = codes.FailedPrecondition
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	}
	if code == codes.Internal {
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}
