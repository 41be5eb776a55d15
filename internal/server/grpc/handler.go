package grpc

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/libsync/internal/server/models"
	"github.com/dmitrijs2005/libsync/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// LastModifiedVersionHeader carries the library version in response headers.
const LastModifiedVersionHeader = "last-modified-version"

// RequestIDHeader is echoed back, or generated when the caller sends none.
const RequestIDHeader = "x-request-id"

func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		s.logger.Error(ctx, op+" failed", "error", err)
	}
	return st
}

// versioned sets the version header and returns the body with "version".
func (s *GRPCServer) versioned(ctx context.Context, version int64, fields map[string]*structpb.Value) *structpb.Struct {
	if err := grpc.SetHeader(ctx, metadata.Pairs(LastModifiedVersionHeader, strconv.FormatInt(version, 10))); err != nil {
		s.logger.Warn(ctx, "failed to set version header", "error", err)
	}
	if fields == nil {
		fields = make(map[string]*structpb.Value, 1)
	}
	fields["version"] = structpb.NewNumberValue(float64(version))
	return &structpb.Struct{Fields: fields}
}

func (s *GRPCServer) CreateLibrary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	owner, err := intField(req, "owner_id")
	if err != nil {
		return nil, s.fail(ctx, "CreateLibrary", err)
	}
	typ, err := stringField(req, "type")
	if err != nil {
		return nil, s.fail(ctx, "CreateLibrary", err)
	}

	var params *services.GroupParams
	if models.LibraryType(typ) == models.LibraryGroup {
		params, err = groupParams(req)
		if err != nil {
			return nil, s.fail(ctx, "CreateLibrary", err)
		}
	}

	lib, version, err := s.libraries.CreateLibrary(ctx, owner, models.LibraryType(typ), params)
	if err != nil {
		return nil, s.fail(ctx, "CreateLibrary", err)
	}
	return s.versioned(ctx, version, map[string]*structpb.Value{
		"library": structpb.NewStringValue(lib.String()),
	}), nil
}

func groupParams(req *structpb.Struct) (*services.GroupParams, error) {
	var p services.GroupParams
	var err error
	if p.Name, err = stringField(req, "name"); err != nil {
		return nil, err
	}
	strs := []struct {
		name string
		dst  *string
	}{
		{"description", &p.Description},
		{"url", &p.URL},
		{"library_reading", &p.LibraryReading},
		{"library_editing", &p.LibraryEditing},
		{"file_editing", &p.FileEditing},
	}
	for _, f := range strs {
		if *f.dst, _, err = optionalString(req, f.name); err != nil {
			return nil, err
		}
	}
	groupType, _, err := optionalString(req, "group_type")
	if err != nil {
		return nil, err
	}
	p.Type = models.GroupType(groupType)
	return &p, nil
}

func (s *GRPCServer) DeleteLibrary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lib, err := libraryField(req)
	if err != nil {
		return nil, s.fail(ctx, "DeleteLibrary", err)
	}
	version, err := s.libraries.DeleteLibrary(ctx, lib)
	if err != nil {
		return nil, s.fail(ctx, "DeleteLibrary", err)
	}
	return s.versioned(ctx, version, nil), nil
}

func (s *GRPCServer) UpdateGroup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	groupID, err := intField(req, "group_id")
	if err != nil {
		return nil, s.fail(ctx, "UpdateGroup", err)
	}
	ifUnmodified, err := optionalInt(req, "if_unmodified_since_version")
	if err != nil {
		return nil, s.fail(ctx, "UpdateGroup", err)
	}

	var patch models.GroupPatch
	ptrs := []struct {
		name string
		dst  **string
	}{
		{"name", &patch.Name},
		{"description", &patch.Description},
		{"url", &patch.URL},
		{"library_reading", &patch.LibraryReading},
		{"library_editing", &patch.LibraryEditing},
		{"file_editing", &patch.FileEditing},
	}
	for _, f := range ptrs {
		if *f.dst, err = stringPtr(req, f.name); err != nil {
			return nil, s.fail(ctx, "UpdateGroup", err)
		}
	}
	groupType, err := stringPtr(req, "group_type")
	if err != nil {
		return nil, s.fail(ctx, "UpdateGroup", err)
	}
	if groupType != nil {
		t := models.GroupType(*groupType)
		patch.Type = &t
	}

	version, err := s.libraries.UpdateGroup(ctx, groupID, patch, ifUnmodified)
	if err != nil {
		return nil, s.fail(ctx, "UpdateGroup", err)
	}
	return s.versioned(ctx, version, nil), nil
}

func (s *GRPCServer) AddMember(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	groupID, err := intField(req, "group_id")
	if err != nil {
		return nil, s.fail(ctx, "AddMember", err)
	}
	userID, err := intField(req, "user_id")
	if err != nil {
		return nil, s.fail(ctx, "AddMember", err)
	}
	role, ok, err := optionalString(req, "role")
	if err != nil {
		return nil, s.fail(ctx, "AddMember", err)
	}
	if !ok {
		role = string(models.RoleMember)
	}

	version, err := s.libraries.AddMember(ctx, groupID, userID, models.Role(role))
	if err != nil {
		return nil, s.fail(ctx, "AddMember", err)
	}
	return s.versioned(ctx, version, nil), nil
}

func (s *GRPCServer) RemoveMember(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	groupID, err := intField(req, "group_id")
	if err != nil {
		return nil, s.fail(ctx, "RemoveMember", err)
	}
	userID, err := intField(req, "user_id")
	if err != nil {
		return nil, s.fail(ctx, "RemoveMember", err)
	}
	version, err := s.libraries.RemoveMember(ctx, groupID, userID)
	if err != nil {
		return nil, s.fail(ctx, "RemoveMember", err)
	}
	return s.versioned(ctx, version, nil), nil
}

func (s *GRPCServer) CreateItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lib, err := libraryField(req)
	if err != nil {
		return nil, s.fail(ctx, "CreateItem", err)
	}
	itemType, err := stringField(req, "item_type")
	if err != nil {
		return nil, s.fail(ctx, "CreateItem", err)
	}
	key, _, err := optionalString(req, "key")
	if err != nil {
		return nil, s.fail(ctx, "CreateItem", err)
	}

	key, version, err := s.libraries.CreateItem(ctx, lib, itemType, key)
	if err != nil {
		return nil, s.fail(ctx, "CreateItem", err)
	}
	return s.versioned(ctx, version, map[string]*structpb.Value{
		"key": structpb.NewStringValue(key),
	}), nil
}

func (s *GRPCServer) DeleteItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lib, err := libraryField(req)
	if err != nil {
		return nil, s.fail(ctx, "DeleteItem", err)
	}
	key, err := stringField(req, "key")
	if err != nil {
		return nil, s.fail(ctx, "DeleteItem", err)
	}
	version, err := s.libraries.DeleteItem(ctx, lib, key)
	if err != nil {
		return nil, s.fail(ctx, "DeleteItem", err)
	}
	return s.versioned(ctx, version, nil), nil
}

// ApplyMutation takes entity ids in listing form under "updated" and
// "deleted".
func (s *GRPCServer) ApplyMutation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lib, err := libraryField(req)
	if err != nil {
		return nil, s.fail(ctx, "ApplyMutation", err)
	}
	ifUnmodified, err := optionalInt(req, "if_unmodified_since_version")
	if err != nil {
		return nil, s.fail(ctx, "ApplyMutation", err)
	}

	var cs models.ChangeSet
	for _, list := range []struct {
		name   string
		record func(models.EntityRef)
	}{
		{"updated", cs.Touch},
		{"deleted", cs.Delete},
	} {
		ids, err := stringList(req, list.name)
		if err != nil {
			return nil, s.fail(ctx, "ApplyMutation", err)
		}
		for _, id := range ids {
			ref, err := models.ParseEntityRef(id)
			if err != nil {
				return nil, s.fail(ctx, "ApplyMutation", fmt.Errorf("%w: %w", errBadRequest, err))
			}
			list.record(ref)
		}
	}

	version, err := s.libraries.ApplyMutation(ctx, lib, cs, ifUnmodified)
	if err != nil {
		return nil, s.fail(ctx, "ApplyMutation", err)
	}
	return s.versioned(ctx, version, nil), nil
}

func (s *GRPCServer) GetLibraryVersion(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lib, err := libraryField(req)
	if err != nil {
		return nil, s.fail(ctx, "GetLibraryVersion", err)
	}
	version, err := s.versions.LibraryVersion(ctx, lib)
	if err != nil {
		return nil, s.fail(ctx, "GetLibraryVersion", err)
	}
	return s.versioned(ctx, version, nil), nil
}

func (s *GRPCServer) GetGroup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	groupID, err := intField(req, "group_id")
	if err != nil {
		return nil, s.fail(ctx, "GetGroup", err)
	}
	g, err := s.versions.Group(ctx, groupID)
	if err != nil {
		return nil, s.fail(ctx, "GetGroup", err)
	}
	return s.versioned(ctx, g.Version, map[string]*structpb.Value{
		"group": structpb.NewStructValue(groupStruct(g)),
	}), nil
}

func (s *GRPCServer) GetGroupVersion(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	groupID, err := intField(req, "group_id")
	if err != nil {
		return nil, s.fail(ctx, "GetGroupVersion", err)
	}
	version, err := s.versions.GroupVersion(ctx, groupID)
	if err != nil {
		return nil, s.fail(ctx, "GetGroupVersion", err)
	}
	return s.versioned(ctx, version, nil), nil
}

func (s *GRPCServer) GetVersionListing(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lib, err := libraryField(req)
	if err != nil {
		return nil, s.fail(ctx, "GetVersionListing", err)
	}
	since, err := optionalInt(req, "since")
	if err != nil {
		return nil, s.fail(ctx, "GetVersionListing", err)
	}
	listing, version, err := s.versions.VersionListing(ctx, lib, since)
	if err != nil {
		return nil, s.fail(ctx, "GetVersionListing", err)
	}
	return s.versioned(ctx, version, map[string]*structpb.Value{
		"versions": structpb.NewStructValue(versionMap(listing)),
	}), nil
}

// GetUserGroupVersions spans several libraries, so it sets no version header.
func (s *GRPCServer) GetUserGroupVersions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := intField(req, "user_id")
	if err != nil {
		return nil, s.fail(ctx, "GetUserGroupVersions", err)
	}
	versions, err := s.versions.UserGroupVersions(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "GetUserGroupVersions", err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"versions": structpb.NewStructValue(groupVersionMap(versions)),
	}}, nil
}

func (s *GRPCServer) GetDeleted(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lib, err := libraryField(req)
	if err != nil {
		return nil, s.fail(ctx, "GetDeleted", err)
	}
	since, err := optionalInt(req, "since")
	if err != nil {
		return nil, s.fail(ctx, "GetDeleted", err)
	}
	refs, version, err := s.versions.DeletedSince(ctx, lib, since)
	if err != nil {
		return nil, s.fail(ctx, "GetDeleted", err)
	}
	return s.versioned(ctx, version, map[string]*structpb.Value{
		"deleted": structpb.NewListValue(refList(refs)),
	}), nil
}

func (s *GRPCServer) IsGroupVisible(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	groupID, err := intField(req, "group_id")
	if err != nil {
		return nil, s.fail(ctx, "IsGroupVisible", err)
	}
	visible, err := s.versions.IsGroupVisible(ctx, groupID)
	if err != nil {
		return nil, s.fail(ctx, "IsGroupVisible", err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"visible": structpb.NewBoolValue(visible),
	}}, nil
}

func (s *GRPCServer) SearchGroups(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	q, _, err := optionalString(req, "q")
	if err != nil {
		return nil, s.fail(ctx, "SearchGroups", err)
	}
	found, err := s.versions.SearchGroups(ctx, q)
	if err != nil {
		return nil, s.fail(ctx, "SearchGroups", err)
	}
	groups := make([]*structpb.Value, 0, len(found))
	for _, e := range found {
		groups = append(groups, structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"id":   structpb.NewNumberValue(float64(e.GroupID)),
			"name": structpb.NewStringValue(e.Name),
			"type": structpb.NewStringValue(string(e.Type)),
		}}))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"groups": structpb.NewListValue(&structpb.ListValue{Values: groups}),
	}}, nil
}
