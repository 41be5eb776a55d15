package grpc

import (
	"context"
	"errors"
	"testing"

	pb "github.com/dmitrijs2005/libsync/internal/proto"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestInterceptor_KeepsIncomingRequestID(t *testing.T) {
	s := newServer(&fakeLibraries{}, &fakeVersions{})

	md := metadata.New(map[string]string{RequestIDHeader: "req-1"})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: pb.LibraryService_GetLibraryVersion_FullMethodName}

	var got string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got = RequestID(ctx)
		return "ok", nil
	}

	resp, err := s.requestInterceptor(ctx, nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if got != "req-1" {
		t.Fatalf("request id not propagated: %q", got)
	}
}

func TestInterceptor_GeneratesRequestID(t *testing.T) {
	s := newServer(&fakeLibraries{}, &fakeVersions{})
	info := &grpc.UnaryServerInfo{FullMethod: pb.LibraryService_GetLibraryVersion_FullMethodName}

	var got string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		got = RequestID(ctx)
		return nil, nil
	}

	if _, err := s.requestInterceptor(context.Background(), nil, info, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected a generated uuid, got %q", got)
	}
}

func TestInterceptor_PassesHandlerError(t *testing.T) {
	s := newServer(&fakeLibraries{}, &fakeVersions{})
	info := &grpc.UnaryServerInfo{FullMethod: pb.LibraryService_DeleteItem_FullMethodName}

	want := status.Error(codes.NotFound, "not found")
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, want
	}

	_, err := s.requestInterceptor(context.Background(), nil, info, h)
	if !errors.Is(err, want) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequestID_EmptyWithoutInterceptor(t *testing.T) {
	if id := RequestID(context.Background()); id != "" {
		t.Fatalf("unexpected id: %q", id)
	}
}
