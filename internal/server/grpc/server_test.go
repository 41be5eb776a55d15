package grpc

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/dmitrijs2005/libsync/internal/logging"
	pb "github.com/dmitrijs2005/libsync/internal/proto"
	"github.com/dmitrijs2005/libsync/internal/server/metrics"
	"github.com/dmitrijs2005/libsync/internal/server/repositories/memory"
	"github.com/dmitrijs2005/libsync/internal/server/services"
	"github.com/dmitrijs2005/libsync/internal/server/versions"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", nopLogger{}, &fakeLibraries{}, &fakeVersions{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", nopLogger{}, &fakeLibraries{}, &fakeVersions{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

// dialService starts the service on an in-memory listener backed by the
// memory store and returns a client for it.
func dialService(t *testing.T) pb.LibraryServiceClient {
	t.Helper()

	store := memory.NewStore()
	clock := versions.NewClock(time.Second)
	coord := services.NewCoordinator(store, clock, metrics.New(), logging.Nop{})
	s := NewGRPCServer("bufconn", nopLogger{}, services.NewLibraryService(store, coord, logging.Nop{}), services.NewView(store))

	lis := bufconn.Listen(1 << 20)
	srv := s.NewServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufconn",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return pb.NewLibraryServiceClient(conn)
}

type rpc func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

func call(t *testing.T, method rpc, fields map[string]any) (*structpb.Struct, metadata.MD) {
	t.Helper()
	var md metadata.MD
	resp, err := method(context.Background(), request(t, fields), grpc.Header(&md))
	if err != nil {
		t.Fatalf("call error: %v", err)
	}
	return resp, md
}

func headerVersion(t *testing.T, md metadata.MD) int64 {
	t.Helper()
	values := md.Get(LastModifiedVersionHeader)
	if len(values) != 1 {
		t.Fatalf("missing %s header: %v", LastModifiedVersionHeader, md)
	}
	v, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		t.Fatalf("bad version header %q: %v", values[0], err)
	}
	return v
}

func TestService_RoundTrip(t *testing.T) {
	c := dialService(t)

	resp, md := call(t, c.CreateLibrary, map[string]any{
		"owner_id": 1, "type": "group", "name": "Readers", "group_type": "PublicOpen",
	})
	lib := resp.GetFields()["library"].GetStringValue()
	created := headerVersion(t, md)
	if versionOf(t, resp) != created {
		t.Fatalf("body and header disagree: %v vs %d", resp, created)
	}
	if len(md.Get(RequestIDHeader)) != 1 {
		t.Fatalf("missing request id header: %v", md)
	}

	resp, md = call(t, c.CreateItem, map[string]any{"library": lib, "item_type": "book"})
	key := resp.GetFields()["key"].GetStringValue()
	itemVersion := headerVersion(t, md)
	if itemVersion <= created {
		t.Fatalf("version did not advance: %d -> %d", created, itemVersion)
	}

	resp, md = call(t, c.GetVersionListing, map[string]any{"library": lib, "since": created})
	if headerVersion(t, md) != itemVersion {
		t.Fatalf("listing version %d, want %d", headerVersion(t, md), itemVersion)
	}
	listing := resp.GetFields()["versions"].GetStructValue().GetFields()
	if listing["item:"+key].GetNumberValue() != float64(itemVersion) {
		t.Fatalf("item not listed at %d: %v", itemVersion, listing)
	}

	groupID := lib[1:]
	resp, md = call(t, c.GetGroupVersion, map[string]any{"group_id": mustAtoi(t, groupID)})
	if headerVersion(t, md) != itemVersion || versionOf(t, resp) != itemVersion {
		t.Fatalf("group version %v, want %d", resp, itemVersion)
	}

	resp, _ = call(t, c.IsGroupVisible, map[string]any{"group_id": mustAtoi(t, groupID)})
	if !resp.GetFields()["visible"].GetBoolValue() {
		t.Fatalf("populated public group should be visible: %v", resp)
	}

	_, err := c.UpdateGroup(context.Background(), request(t, map[string]any{
		"group_id": mustAtoi(t, groupID), "name": "Late", "if_unmodified_since_version": created,
	}))
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("want FailedPrecondition, got %v (err=%v)", status.Code(err), err)
	}
}

func TestService_UnknownLibrary(t *testing.T) {
	c := dialService(t)

	_, err := c.GetLibraryVersion(context.Background(), request(t, map[string]any{"library": "u404"}))
	if status.Code(err) != codes.NotFound {
		t.Fatalf("want NotFound, got %v (err=%v)", status.Code(err), err)
	}
}

func TestService_ImplementsEveryMethod(t *testing.T) {
	s := NewGRPCServer("bufconn", nopLogger{}, &fakeLibraries{}, &fakeVersions{})
	info, ok := s.NewServer().GetServiceInfo()["libsync.v1.LibraryService"]
	if !ok {
		t.Fatal("LibraryService is not registered")
	}
	if len(info.Methods) != len(pb.LibraryService_ServiceDesc.Methods) {
		t.Fatalf("registered %d methods, want %d", len(info.Methods), len(pb.LibraryService_ServiceDesc.Methods))
	}

	c := dialService(t)
	methods := map[string]rpc{
		"CreateLibrary":        c.CreateLibrary,
		"DeleteLibrary":        c.DeleteLibrary,
		"UpdateGroup":          c.UpdateGroup,
		"AddMember":            c.AddMember,
		"RemoveMember":         c.RemoveMember,
		"CreateItem":           c.CreateItem,
		"DeleteItem":           c.DeleteItem,
		"ApplyMutation":        c.ApplyMutation,
		"GetLibraryVersion":    c.GetLibraryVersion,
		"GetGroup":             c.GetGroup,
		"GetGroupVersion":      c.GetGroupVersion,
		"GetVersionListing":    c.GetVersionListing,
		"GetUserGroupVersions": c.GetUserGroupVersions,
		"GetDeleted":           c.GetDeleted,
		"IsGroupVisible":       c.IsGroupVisible,
		"SearchGroups":         c.SearchGroups,
	}
	for _, m := range info.Methods {
		method, ok := methods[m.Name]
		if !ok {
			t.Errorf("no client method for %s", m.Name)
			continue
		}
		_, err := method(context.Background(), &structpb.Struct{})
		if status.Code(err) == codes.Unimplemented {
			t.Errorf("%s is not implemented", m.Name)
		}
	}
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	if err != nil {
		t.Fatalf("Atoi(%q): %v", s, err)
	}
	return n
}
