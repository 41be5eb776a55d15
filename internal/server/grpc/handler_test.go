package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/libsync/internal/common"
	"github.com/dmitrijs2005/libsync/internal/server/models"
	"github.com/dmitrijs2005/libsync/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ---- fakes ----

type fakeLibraries struct {
	Libraries

	version int64
	err     error

	gotOwner  int64
	gotType   models.LibraryType
	gotParams *services.GroupParams
	gotPatch  models.GroupPatch
	gotCS     models.ChangeSet
	gotIfUnm  int64
	gotRole   models.Role
	gotKey    string
}

func (f *fakeLibraries) CreateLibrary(ctx context.Context, ownerID int64, typ models.LibraryType, params *services.GroupParams) (models.LibraryID, int64, error) {
	f.gotOwner, f.gotType, f.gotParams = ownerID, typ, params
	if typ == models.LibraryGroup {
		return models.GroupLibrary(7), f.version, f.err
	}
	return models.UserLibrary(ownerID), f.version, f.err
}

func (f *fakeLibraries) UpdateGroup(ctx context.Context, groupID int64, patch models.GroupPatch, ifUnmodifiedSince int64) (int64, error) {
	f.gotPatch, f.gotIfUnm = patch, ifUnmodifiedSince
	return f.version, f.err
}

func (f *fakeLibraries) AddMember(ctx context.Context, groupID, userID int64, role models.Role) (int64, error) {
	f.gotRole = role
	return f.version, f.err
}

func (f *fakeLibraries) CreateItem(ctx context.Context, lib models.LibraryID, itemType, key string) (string, int64, error) {
	f.gotKey = key
	if key == "" {
		key = "ABCD2345"
	}
	return key, f.version, f.err
}

func (f *fakeLibraries) ApplyMutation(ctx context.Context, lib models.LibraryID, cs models.ChangeSet, ifUnmodifiedSince int64) (int64, error) {
	f.gotCS, f.gotIfUnm = cs, ifUnmodifiedSince
	return f.version, f.err
}

type fakeVersions struct {
	Versions

	version  int64
	listing  map[string]int64
	deleted  []models.EntityRef
	groups   map[int64]int64
	group    *models.Group
	visible  bool
	found    []models.SearchEntry
	err      error
	gotSince int64
}

func (f *fakeVersions) LibraryVersion(ctx context.Context, lib models.LibraryID) (int64, error) {
	return f.version, f.err
}

func (f *fakeVersions) VersionListing(ctx context.Context, lib models.LibraryID, since int64) (map[string]int64, int64, error) {
	f.gotSince = since
	return f.listing, f.version, f.err
}

func (f *fakeVersions) DeletedSince(ctx context.Context, lib models.LibraryID, since int64) ([]models.EntityRef, int64, error) {
	f.gotSince = since
	return f.deleted, f.version, f.err
}

func (f *fakeVersions) UserGroupVersions(ctx context.Context, userID int64) (map[int64]int64, error) {
	return f.groups, f.err
}

func (f *fakeVersions) Group(ctx context.Context, groupID int64) (*models.Group, error) {
	return f.group, f.err
}

func (f *fakeVersions) IsGroupVisible(ctx context.Context, groupID int64) (bool, error) {
	return f.visible, f.err
}

func (f *fakeVersions) SearchGroups(ctx context.Context, query string) ([]models.SearchEntry, error) {
	return f.found, f.err
}

// ---- helpers ----

func newServer(l Libraries, v Versions) *GRPCServer {
	return &GRPCServer{
		address:   "127.0.0.1:0",
		libraries: l,
		versions:  v,
		logger:    nopLogger{},
	}
}

func request(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("NewStruct error: %v", err)
	}
	return s
}

func versionOf(t *testing.T, resp *structpb.Struct) int64 {
	t.Helper()
	v, ok := resp.GetFields()["version"]
	if !ok {
		t.Fatalf("response has no version: %v", resp)
	}
	return int64(v.GetNumberValue())
}

// ---- tests ----

func TestCreateLibrary_User(t *testing.T) {
	l := &fakeLibraries{version: 1}
	s := newServer(l, &fakeVersions{})

	resp, err := s.CreateLibrary(context.Background(), request(t, map[string]any{"owner_id": 5, "type": "user"}))
	if err != nil {
		t.Fatalf("CreateLibrary error: %v", err)
	}
	if got := resp.GetFields()["library"].GetStringValue(); got != "u5" {
		t.Fatalf("unexpected library: %q", got)
	}
	if versionOf(t, resp) != 1 {
		t.Fatalf("unexpected version: %v", resp)
	}
	if l.gotParams != nil {
		t.Fatalf("user library must not carry group params: %+v", l.gotParams)
	}
}

func TestCreateLibrary_GroupParams(t *testing.T) {
	l := &fakeLibraries{version: 2}
	s := newServer(l, &fakeVersions{})

	_, err := s.CreateLibrary(context.Background(), request(t, map[string]any{
		"owner_id":        5,
		"type":            "group",
		"name":            "Readers",
		"group_type":      "PublicOpen",
		"library_editing": "admins",
	}))
	if err != nil {
		t.Fatalf("CreateLibrary error: %v", err)
	}
	if l.gotParams == nil || l.gotParams.Name != "Readers" || l.gotParams.Type != models.GroupPublicOpen {
		t.Fatalf("unexpected params: %+v", l.gotParams)
	}
	if l.gotParams.LibraryEditing != "admins" || l.gotParams.LibraryReading != "" {
		t.Fatalf("unexpected settings: %+v", l.gotParams)
	}
}

func TestCreateLibrary_BadRequest(t *testing.T) {
	s := newServer(&fakeLibraries{}, &fakeVersions{})

	cases := []map[string]any{
		{"type": "user"},
		{"owner_id": "5", "type": "user"},
		{"owner_id": 1.5, "type": "user"},
		{"owner_id": -1, "type": "user"},
		{"owner_id": 5},
		{"owner_id": 5, "type": "group"},
	}
	for i, c := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := s.CreateLibrary(context.Background(), request(t, c))
			if status.Code(err) != codes.InvalidArgument {
				t.Fatalf("want InvalidArgument, got %v (err=%v)", status.Code(err), err)
			}
		})
	}
}

func TestHandlers_ErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		want codes.Code
	}{
		{common.ErrorValidation, codes.InvalidArgument},
		{common.ErrorNotFound, codes.NotFound},
		{common.ErrVersionConflict, codes.FailedPrecondition},
		{common.ErrStaleVersion, codes.FailedPrecondition},
		{common.ErrLockTimeout, codes.Unavailable},
		{common.ErrStorageUnavailable, codes.Unavailable},
		{context.Canceled, codes.Canceled},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{errors.New("boom"), codes.Internal},
	}
	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("%w: u1: %w", common.ErrMutationFailed, c.err)
			s := newServer(&fakeLibraries{err: wrapped}, &fakeVersions{err: c.err})

			_, err := s.DeleteItem(context.Background(), request(t, map[string]any{"library": "u1", "key": "ABCD2345"}))
			if status.Code(err) != c.want {
				t.Fatalf("DeleteItem: want %v, got %v", c.want, status.Code(err))
			}
			_, err = s.GetLibraryVersion(context.Background(), request(t, map[string]any{"library": "u1"}))
			if status.Code(err) != c.want {
				t.Fatalf("GetLibraryVersion: want %v, got %v", c.want, status.Code(err))
			}
		})
	}
}

func (f *fakeLibraries) DeleteItem(ctx context.Context, lib models.LibraryID, key string) (int64, error) {
	return f.version, f.err
}

func TestInternalError_DoesNotLeakText(t *testing.T) {
	s := newServer(&fakeLibraries{}, &fakeVersions{err: errors.New("password=hunter2")})
	_, err := s.GetLibraryVersion(context.Background(), request(t, map[string]any{"library": "u1"}))
	if status.Convert(err).Message() != "internal error" {
		t.Fatalf("unexpected message: %q", status.Convert(err).Message())
	}
}

func TestUpdateGroup_PatchAndCondition(t *testing.T) {
	l := &fakeLibraries{version: 9}
	s := newServer(l, &fakeVersions{})

	resp, err := s.UpdateGroup(context.Background(), request(t, map[string]any{
		"group_id":                    3,
		"name":                        "Renamed",
		"group_type":                  "Private",
		"if_unmodified_since_version": 8,
	}))
	if err != nil {
		t.Fatalf("UpdateGroup error: %v", err)
	}
	if versionOf(t, resp) != 9 {
		t.Fatalf("unexpected version: %v", resp)
	}
	if l.gotPatch.Name == nil || *l.gotPatch.Name != "Renamed" {
		t.Fatalf("name not patched: %+v", l.gotPatch)
	}
	if l.gotPatch.Type == nil || *l.gotPatch.Type != models.GroupPrivate {
		t.Fatalf("type not patched: %+v", l.gotPatch)
	}
	if l.gotPatch.Description != nil || l.gotPatch.URL != nil {
		t.Fatalf("unset fields must stay nil: %+v", l.gotPatch)
	}
	if l.gotIfUnm != 8 {
		t.Fatalf("unexpected condition: %d", l.gotIfUnm)
	}
}

func TestAddMember_DefaultsToMember(t *testing.T) {
	l := &fakeLibraries{version: 4}
	s := newServer(l, &fakeVersions{})

	if _, err := s.AddMember(context.Background(), request(t, map[string]any{"group_id": 1, "user_id": 2})); err != nil {
		t.Fatalf("AddMember error: %v", err)
	}
	if l.gotRole != models.RoleMember {
		t.Fatalf("unexpected role: %q", l.gotRole)
	}
}

func TestCreateItem_ReturnsKey(t *testing.T) {
	l := &fakeLibraries{version: 6}
	s := newServer(l, &fakeVersions{})

	resp, err := s.CreateItem(context.Background(), request(t, map[string]any{"library": "g7", "item_type": "book"}))
	if err != nil {
		t.Fatalf("CreateItem error: %v", err)
	}
	if l.gotKey != "" {
		t.Fatalf("key should be left to the service, got %q", l.gotKey)
	}
	if resp.GetFields()["key"].GetStringValue() != "ABCD2345" || versionOf(t, resp) != 6 {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestApplyMutation_ParsesEntities(t *testing.T) {
	l := &fakeLibraries{version: 12}
	s := newServer(l, &fakeVersions{})

	_, err := s.ApplyMutation(context.Background(), request(t, map[string]any{
		"library": "u1",
		"updated": []any{"item:AAAA2222", "item:BBBB3333"},
		"deleted": []any{"item:AAAA2222"},
	}))
	if err != nil {
		t.Fatalf("ApplyMutation error: %v", err)
	}
	changes := l.gotCS.Changes()
	if len(changes) != 2 {
		t.Fatalf("unexpected changes: %+v", changes)
	}
	if changes[0].Entity != models.ItemEntity("AAAA2222") || !changes[0].Deleted {
		t.Fatalf("delete must win for a repeated entity: %+v", changes[0])
	}
	if changes[1].Entity != models.ItemEntity("BBBB3333") || changes[1].Deleted {
		t.Fatalf("unexpected second change: %+v", changes[1])
	}
}

func TestApplyMutation_BadEntity(t *testing.T) {
	s := newServer(&fakeLibraries{}, &fakeVersions{})

	for _, updated := range []any{"nope", []any{1}, []any{"bogus"}} {
		_, err := s.ApplyMutation(context.Background(), request(t, map[string]any{"library": "u1", "updated": updated}))
		if status.Code(err) != codes.InvalidArgument {
			t.Fatalf("%v: want InvalidArgument, got %v", updated, status.Code(err))
		}
	}
}

func TestGetVersionListing_OK(t *testing.T) {
	v := &fakeVersions{version: 5, listing: map[string]int64{"item:AAAA2222": 3, "item:BBBB3333": 5}}
	s := newServer(&fakeLibraries{}, v)

	resp, err := s.GetVersionListing(context.Background(), request(t, map[string]any{"library": "u1", "since": 2}))
	if err != nil {
		t.Fatalf("GetVersionListing error: %v", err)
	}
	if v.gotSince != 2 {
		t.Fatalf("since not passed: %d", v.gotSince)
	}
	listing := resp.GetFields()["versions"].GetStructValue().GetFields()
	if len(listing) != 2 || listing["item:BBBB3333"].GetNumberValue() != 5 {
		t.Fatalf("unexpected listing: %v", listing)
	}
	if versionOf(t, resp) != 5 {
		t.Fatalf("unexpected version: %v", resp)
	}
}

func TestGetDeleted_OK(t *testing.T) {
	v := &fakeVersions{version: 8, deleted: []models.EntityRef{models.ItemEntity("AAAA2222")}}
	s := newServer(&fakeLibraries{}, v)

	resp, err := s.GetDeleted(context.Background(), request(t, map[string]any{"library": "g3"}))
	if err != nil {
		t.Fatalf("GetDeleted error: %v", err)
	}
	list := resp.GetFields()["deleted"].GetListValue().GetValues()
	if len(list) != 1 || list[0].GetStringValue() != "item:AAAA2222" {
		t.Fatalf("unexpected tombstones: %v", list)
	}
}

func TestGetUserGroupVersions_OK(t *testing.T) {
	v := &fakeVersions{groups: map[int64]int64{3: 10, 4: 2}}
	s := newServer(&fakeLibraries{}, v)

	resp, err := s.GetUserGroupVersions(context.Background(), request(t, map[string]any{"user_id": 1}))
	if err != nil {
		t.Fatalf("GetUserGroupVersions error: %v", err)
	}
	got := resp.GetFields()["versions"].GetStructValue().GetFields()
	if got["3"].GetNumberValue() != 10 || got["4"].GetNumberValue() != 2 {
		t.Fatalf("unexpected versions: %v", got)
	}
	if _, ok := resp.GetFields()["version"]; ok {
		t.Fatalf("multi-library response must not carry a version: %v", resp)
	}
}

func TestGetGroup_OK(t *testing.T) {
	g := &models.Group{
		ID: 3, OwnerID: 1, Name: "Readers", Type: models.GroupPublicClosed, Version: 11,
		Members: []models.Member{{UserID: 2, Role: models.RoleMember}, {UserID: 1, Role: models.RoleOwner}},
	}
	s := newServer(&fakeLibraries{}, &fakeVersions{group: g})

	resp, err := s.GetGroup(context.Background(), request(t, map[string]any{"group_id": 3}))
	if err != nil {
		t.Fatalf("GetGroup error: %v", err)
	}
	group := resp.GetFields()["group"].GetStructValue().GetFields()
	if group["name"].GetStringValue() != "Readers" || group["version"].GetNumberValue() != 11 {
		t.Fatalf("unexpected group: %v", group)
	}
	members := group["members"].GetListValue().GetValues()
	if len(members) != 2 || members[0].GetStructValue().GetFields()["role"].GetStringValue() != "owner" {
		t.Fatalf("members must be ordered by user id: %v", members)
	}
	if g.Members[0].UserID != 2 {
		t.Fatalf("group members were reordered in place: %v", g.Members)
	}
	if versionOf(t, resp) != 11 {
		t.Fatalf("unexpected version: %v", resp)
	}
}

func TestIsGroupVisible_AndSearch(t *testing.T) {
	v := &fakeVersions{
		visible: true,
		found:   []models.SearchEntry{{GroupID: 3, Name: "Readers", Type: models.GroupPublicOpen, Populated: true}},
	}
	s := newServer(&fakeLibraries{}, v)

	resp, err := s.IsGroupVisible(context.Background(), request(t, map[string]any{"group_id": 3}))
	if err != nil {
		t.Fatalf("IsGroupVisible error: %v", err)
	}
	if !resp.GetFields()["visible"].GetBoolValue() {
		t.Fatalf("expected visible: %v", resp)
	}

	resp, err = s.SearchGroups(context.Background(), request(t, map[string]any{"q": "read"}))
	if err != nil {
		t.Fatalf("SearchGroups error: %v", err)
	}
	groups := resp.GetFields()["groups"].GetListValue().GetValues()
	if len(groups) != 1 || groups[0].GetStructValue().GetFields()["id"].GetNumberValue() != 3 {
		t.Fatalf("unexpected groups: %v", groups)
	}
}
