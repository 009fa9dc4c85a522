package out

import (
	"context"
	"net/http"
	"net/url"

	"crux/internal/contract"
	"crux/internal/modules/session/domain"
	sessionout "crux/internal/modules/session/port/out"
	"crux/internal/platform/httpapi"
)

type HTTPSessionAPI struct {
	client *httpapi.Client
}

func NewHTTPSessionAPI(client *httpapi.Client) sessionout.SessionAPI {
	return &HTTPSessionAPI{client: client}
}

func todayPath(userID, suffix string) string {
	return "/api/users/" + url.PathEscape(userID) + "/sessions/today" + suffix
}

func (a *HTTPSessionAPI) Start(ctx context.Context, userID string) (domain.Snapshot, error) {
	return a.call(ctx, http.MethodPost, todayPath(userID, "/start"), nil)
}

func (a *HTTPSessionAPI) End(ctx context.Context, userID string) (domain.Snapshot, error) {
	return a.call(ctx, http.MethodPost, todayPath(userID, "/end"), nil)
}

func (a *HTTPSessionAPI) Get(ctx context.Context, userID string) (domain.Snapshot, error) {
	return a.call(ctx, http.MethodGet, todayPath(userID, ""), nil)
}

func (a *HTTPSessionAPI) LogClimb(ctx context.Context, userID string, event domain.ClimbEvent) (domain.Snapshot, error) {
	return a.call(ctx, http.MethodPost, todayPath(userID, "/climbs"), event.Contract())
}

func (a *HTTPSessionAPI) call(ctx context.Context, method, path string, body any) (domain.Snapshot, error) {
	resp, err := httpapi.Do[contract.TodaySessionResponse](ctx, a.client, method, path, body)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.SnapshotFromContract(resp), nil
}
