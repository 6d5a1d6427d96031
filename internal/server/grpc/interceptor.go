package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophinbox/internal/common"
	"github.com/dmitrijs2005/gophinbox/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// accessTokenMetadata is the metadata key carrying "Bearer <token>".
const accessTokenMetadata = "authorization"

// publicMethods are reachable without a session.
var publicMethods = map[string]bool{
	healthpb.Health_Check_FullMethodName: true,
	healthpb.Health_Watch_FullMethodName: true,
	healthpb.Health_List_FullMethodName:  true,
}

// IdentityFromContext returns the identity attached by the token interceptor.
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*models.Identity)
	return id, ok
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(accessTokenMetadata)
		if len(values) > 0 {
			scheme, token, found := strings.Cut(values[0], " ")
			if found && strings.EqualFold(scheme, common.BearerScheme) {
				accessToken = strings.TrimSpace(token)
			}
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	id, err := s.auth.Authenticate(ctx, accessToken)
	if err != nil {
		if errors.Is(err, common.ErrorInternal) {
			return nil, status.Error(codes.Internal, "internal error")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid or expired session")
	}

	return handler(context.WithValue(ctx, identityKey, id), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Debug(ctx, "grpc request",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)

	return resp, err
}
