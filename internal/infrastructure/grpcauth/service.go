package grpcauth

import (
	"context"
	"expvar"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/luxor-app/luxor-auth/internal/domain/entity"
)

// UserServiceServer is the server side of the user service. Only
// AuthenticateUser is served.
type UserServiceServer interface {
	AuthenticateUser(ctx context.Context, req *AuthenticateUserRequest) (*AuthenticateUserResponse, error)
}

// RegisterUserServiceServer registers srv on s.
func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&userServiceDesc, srv)
}

var userServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AuthenticateUser", Handler: authenticateUserHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "user/user.proto",
}

func authenticateUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AuthenticateUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UserServiceServer).AuthenticateUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AuthenticateUserMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(UserServiceServer).AuthenticateUser(ctx, req.(*AuthenticateUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// LoginService produces the AuthResult for a credential pair. Rejected
// credentials are reported in the StandardResponse, not as an error.
type LoginService interface {
	Login(ctx context.Context, email, password string) (*entity.AuthResult, error)
}

// authStats is published at /debug/vars by the development server.
var authStats = expvar.NewMap("authenticate_user")

// Server adapts a LoginService to UserServiceServer.
type Server struct {
	Svc    LoginService
	Logger *logrus.Logger
}

func NewServer(svc LoginService, logger *logrus.Logger) *Server {
	return &Server{Svc: svc, Logger: logger}
}

func (s *Server) AuthenticateUser(ctx context.Context, req *AuthenticateUserRequest) (*AuthenticateUserResponse, error) {
	authStats.Add("requests", 1)
	res, err := s.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		authStats.Add("errors", 1)
		if s.Logger != nil {
			s.Logger.WithError(err).Error("authenticate user failed")
		}
		return nil, status.Error(codes.Internal, "authentication service failure")
	}
	if res == nil || !res.Response.Success {
		authStats.Add("rejected", 1)
	}
	return FromDomain(res), nil
}

var _ UserServiceServer = (*Server)(nil)
