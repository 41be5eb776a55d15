// Package grpc exposes the library service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/libsync/internal/logging"
	pb "github.com/dmitrijs2005/libsync/internal/proto"
	"github.com/dmitrijs2005/libsync/internal/server/models"
	"github.com/dmitrijs2005/libsync/internal/server/services"
	"google.golang.org/grpc"
)

// Libraries is the write side used by the handlers.
type Libraries interface {
	CreateLibrary(ctx context.Context, ownerID int64, typ models.LibraryType, params *services.GroupParams) (models.LibraryID, int64, error)
	DeleteLibrary(ctx context.Context, lib models.LibraryID) (int64, error)
	UpdateGroup(ctx context.Context, groupID int64, patch models.GroupPatch, ifUnmodifiedSince int64) (int64, error)
	AddMember(ctx context.Context, groupID, userID int64, role models.Role) (int64, error)
	RemoveMember(ctx context.Context, groupID, userID int64) (int64, error)
	CreateItem(ctx context.Context, lib models.LibraryID, itemType, key string) (string, int64, error)
	DeleteItem(ctx context.Context, lib models.LibraryID, key string) (int64, error)
	ApplyMutation(ctx context.Context, lib models.LibraryID, cs models.ChangeSet, ifUnmodifiedSince int64) (int64, error)
}

// Versions is the read side used by the handlers.
type Versions interface {
	LibraryVersion(ctx context.Context, lib models.LibraryID) (int64, error)
	GroupVersion(ctx context.Context, groupID int64) (int64, error)
	VersionListing(ctx context.Context, lib models.LibraryID, since int64) (map[string]int64, int64, error)
	UserGroupVersions(ctx context.Context, userID int64) (map[int64]int64, error)
	DeletedSince(ctx context.Context, lib models.LibraryID, since int64) ([]models.EntityRef, int64, error)
	IsGroupVisible(ctx context.Context, groupID int64) (bool, error)
	SearchGroups(ctx context.Context, query string) ([]models.SearchEntry, error)
	Group(ctx context.Context, groupID int64) (*models.Group, error)
}

type GRPCServer struct {
	pb.UnimplementedLibraryServiceServer
	address   string
	libraries Libraries
	versions  Versions
	logger    logging.Logger
}

var _ pb.LibraryServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, libs Libraries, vs Versions) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		libraries: libs,
		versions:  vs,
	}
}

// Register attaches the service to srv.
func (s *GRPCServer) Register(srv *grpc.Server) {
	pb.RegisterLibraryServiceServer(srv, s)
}

// NewServer builds a grpc.Server with the request interceptor installed.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.requestInterceptor))
	srv := grpc.NewServer(opts...)
	s.Register(srv)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
