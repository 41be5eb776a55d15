package grpc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

var errBadRequest = errors.New("bad request")

func field(req *structpb.Struct, name string) (*structpb.Value, bool) {
	v, ok := req.GetFields()[name]
	if !ok {
		return nil, false
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, false
	}
	return v, true
}

func intField(req *structpb.Struct, name string) (int64, error) {
	v, ok := field(req, name)
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", errBadRequest, name)
	}
	return toInt(name, v)
}

func optionalInt(req *structpb.Struct, name string) (int64, error) {
	v, ok := field(req, name)
	if !ok {
		return 0, nil
	}
	return toInt(name, v)
}

func toInt(name string, v *structpb.Value) (int64, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number", errBadRequest, name)
	}
	f := n.NumberValue
	if f != math.Trunc(f) || f < 0 || f > 1<<53 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errBadRequest, name)
	}
	return int64(f), nil
}

func stringField(req *structpb.Struct, name string) (string, error) {
	s, ok, err := optionalString(req, name)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %s is required", errBadRequest, name)
	}
	return s, nil
}

func optionalString(req *structpb.Struct, name string) (string, bool, error) {
	v, ok := field(req, name)
	if !ok {
		return "", false, nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", false, fmt.Errorf("%w: %s must be a string", errBadRequest, name)
	}
	return s.StringValue, true, nil
}

// stringPtr is optionalString for patch fields.
func stringPtr(req *structpb.Struct, name string) (*string, error) {
	s, ok, err := optionalString(req, name)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func stringList(req *structpb.Struct, name string) ([]string, error) {
	v, ok := field(req, name)
	if !ok {
		return nil, nil
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list", errBadRequest, name)
	}
	out := make([]string, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: %s must contain strings", errBadRequest, name)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}

func libraryField(req *structpb.Struct) (models.LibraryID, error) {
	s, err := stringField(req, "library")
	if err != nil {
		return models.LibraryID{}, err
	}
	lib, err := models.ParseLibraryID(s)
	if err != nil {
		return models.LibraryID{}, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return lib, nil
}

func versionMap(m map[string]int64) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(m))
	for k, v := range m {
		fields[k] = structpb.NewNumberValue(float64(v))
	}
	return &structpb.Struct{Fields: fields}
}

func groupVersionMap(m map[int64]int64) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(m))
	for k, v := range m {
		fields[strconv.FormatInt(k, 10)] = structpb.NewNumberValue(float64(v))
	}
	return &structpb.Struct{Fields: fields}
}

func refList(refs []models.EntityRef) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(refs))
	for _, r := range refs {
		values = append(values, structpb.NewStringValue(r.String()))
	}
	return &structpb.ListValue{Values: values}
}

func groupStruct(g *models.Group) *structpb.Struct {
	members := make([]*structpb.Value, 0, len(g.Members))
	sorted := slices.Clone(g.Members)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UserID < sorted[j].UserID })
	for _, m := range sorted {
		members = append(members, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"user_id": structpb.NewNumberValue(float64(m.UserID)),
			"role":    structpb.NewStringValue(string(m.Role)),
		}}))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":              structpb.NewNumberValue(float64(g.ID)),
		"owner_id":        structpb.NewNumberValue(float64(g.OwnerID)),
		"type":            structpb.NewStringValue(string(g.Type)),
		"name":            structpb.NewStringValue(g.Name),
		"description":     structpb.NewStringValue(g.Description),
		"url":             structpb.NewStringValue(g.URL),
		"library_reading": structpb.NewStringValue(g.LibraryReading),
		"library_editing": structpb.NewStringValue(g.LibraryEditing),
		"file_editing":    structpb.NewStringValue(g.FileEditing),
		"members":         structpb.NewListValue(&structpb.ListValue{Values: members}),
		"version":         structpb.NewNumberValue(float64(g.Version)),
	}}
}

// toStatus maps core errors onto gRPC status codes. Internal errors do not
// leak their text.
func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, common.ErrorValidation):
		code = codes.InvalidArgument
	case errors.Is(err, common.ErrorNotFound):
		code = codes.NotFound
	case errors.Is(err, common.ErrStaleVersion), errors.Is(err, common.ErrVersionConflict):
		code = codes.FailedPrecondition
	case errors.Is(err, common.ErrLockTimeout), errors.Is(err, common.ErrStorageUnavailable):
		code = codes.Unavailable
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}
