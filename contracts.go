package adminctl

import (
	"context"

	"github.com/tgstore/adminctl/internal/api"
	"github.com/tgstore/adminctl/internal/progress"
)

type mediaTransport interface {
	UploadMedia(ctx context.Context, req api.UploadRequest, onProgress progress.Func) error
}
