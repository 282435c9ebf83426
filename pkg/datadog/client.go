package datadog

import (
	"context"
	"net/http"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
)

// client is the slice of the DataDog API the handlers need. The wrapper
// around the real SDK client satisfies it, and so does MockClient in tests.
type client interface {
	withAuth(ctx context.Context) context.Context
	Validate(ctx context.Context) (datadogV1.AuthenticationValidationResponse, *http.Response, error)
	ListMonitors(ctx context.Context, o ...datadogV1.ListMonitorsOptionalParameters) ([]datadogV1.Monitor, *http.Response, error)
	GetMonitor(ctx context.Context, monitorId int64, o ...datadogV1.GetMonitorOptionalParameters) (datadogV1.Monitor, *http.Response, error)
	ListDashboards(ctx context.Context, o ...datadogV1.ListDashboardsOptionalParameters) (datadogV1.DashboardSummary, *http.Response, error)
	GetDashboard(ctx context.Context, dashboardId string) (datadogV1.Dashboard, *http.Response, error)
	ListSLOs(ctx context.Context, o ...datadogV1.ListSLOsOptionalParameters) (datadogV1.SLOListResponse, *http.Response, error)
	GetSLO(ctx context.Context, sloId string, o ...datadogV1.GetSLOOptionalParameters) (datadogV1.SLOResponse, *http.Response, error)
}

type wrapper struct {
	client *datadog.APIClient
	apiKey string
	appKey string
}

// withAuth derives a request context carrying the DataDog API credentials.
func (w wrapper) withAuth(ctx context.Context) context.Context {
	authCtx := datadog.NewDefaultContext(ctx)
	return context.WithValue(authCtx, datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: w.apiKey},
		"appKeyAuth": {Key: w.appKey},
	})
}

func (w wrapper) Validate(ctx context.Context) (datadogV1.AuthenticationValidationResponse, *http.Response, error) {
	authApi := datadogV1.NewAuthenticationApi(w.client)
	return authApi.Validate(ctx)
}

func (w wrapper) ListMonitors(ctx context.Context, o ...datadogV1.ListMonitorsOptionalParameters) ([]datadogV1.Monitor, *http.Response, error) {
	monitorsApi := datadogV1.NewMonitorsApi(w.client)
	return monitorsApi.ListMonitors(ctx, o...)
}

func (w wrapper) GetMonitor(ctx context.Context, monitorId int64, o ...datadogV1.GetMonitorOptionalParameters) (datadogV1.Monitor, *http.Response, error) {
	monitorsApi := datadogV1.NewMonitorsApi(w.client)
	return monitorsApi.GetMonitor(ctx, monitorId, o...)
}

func (w wrapper) ListDashboards(ctx context.Context, o ...datadogV1.ListDashboardsOptionalParameters) (datadogV1.DashboardSummary, *http.Response, error) {
	dashboardApi := datadogV1.NewDashboardsApi(w.client)
	return dashboardApi.ListDashboards(ctx, o...)
}

func (w wrapper) GetDashboard(ctx context.Context, dashboardId string) (datadogV1.Dashboard, *http.Response, error) {
	dashboardApi := datadogV1.NewDashboardsApi(w.client)
	return dashboardApi.GetDashboard(ctx, dashboardId)
}

func (w wrapper) ListSLOs(ctx context.Context, o ...datadogV1.ListSLOsOptionalParameters) (datadogV1.SLOListResponse, *http.Response, error) {
	sloApi := datadogV1.NewServiceLevelObjectivesApi(w.client)
	return sloApi.ListSLOs(ctx, o...)
}

func (w wrapper) GetSLO(ctx context.Context, sloId string, o ...datadogV1.GetSLOOptionalParameters) (datadogV1.SLOResponse, *http.Response, error) {
	sloApi := datadogV1.NewServiceLevelObjectivesApi(w.client)
	return sloApi.GetSLO(ctx, sloId)
}
