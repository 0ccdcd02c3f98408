package grpc

import (
	"errors"

	"github.com/dmitrijs2005/drawgallery/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var codeByError = []struct {
	err  error
	code codes.Code
}{
	{common.ErrorUnauthorized, codes.Unauthenticated},
	{common.ErrorInvalidCredentials, codes.Unauthenticated},
	{common.ErrorMissingCredentials, codes.InvalidArgument},
	{common.ErrorInvalidArgument, codes.InvalidArgument},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrorForbidden, codes.PermissionDenied},
	{common.ErrorAlreadyExists, codes.AlreadyExists},
}

// toStatus maps a service error to a gRPC status. Unknown errors become
// Internal with a generic message.
func toStatus(err error) error {
	for _, e := range codeByError {
		if errors.Is(err, e.err) {
			return status.Error(e.code, e.err.Error())
		}
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
