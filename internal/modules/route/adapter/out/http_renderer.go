package out

import (
	"context"

	"crux/internal/modules/route/domain"
	routeout "crux/internal/modules/route/port/out"
	"crux/internal/platform/httpapi"
)

const generatePath = "/boulder/generate"

type HTTPRenderer struct {
	client *httpapi.Client
}

func NewHTTPRenderer(client *httpapi.Client) routeout.Renderer {
	return &HTTPRenderer{client: client}
}

func (r *HTTPRenderer) Render(ctx context.Context, jpeg []byte) ([]byte, error) {
	return r.client.UploadMultipart(ctx, generatePath, jpeg, domain.UploadFilename, domain.UploadMIMEType)
}
