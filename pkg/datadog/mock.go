package datadog

import (
	"context"
	"net/http"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV1"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) withAuth(ctx context.Context) context.Context {
	return ctx
}

func (m *MockClient) Validate(ctx context.Context) (datadogV1.AuthenticationValidationResponse, *http.Response, error) {
	args := m.Called(ctx)
	validation, _ := args.Get(0).(datadogV1.AuthenticationValidationResponse)
	resp, _ := args.Get(1).(*http.Response)
	return validation, resp, args.Error(2)
}

func (m *MockClient) ListMonitors(ctx context.Context, _ ...datadogV1.ListMonitorsOptionalParameters) ([]datadogV1.Monitor, *http.Response, error) {
	args := m.Called(ctx)
	monitors, _ := args.Get(0).([]datadogV1.Monitor)
	resp, _ := args.Get(1).(*http.Response)
	return monitors, resp, args.Error(2)
}

func (m *MockClient) GetMonitor(ctx context.Context, monitorId int64, _ ...datadogV1.GetMonitorOptionalParameters) (datadogV1.Monitor, *http.Response, error) {
	args := m.Called(ctx, monitorId)
	monitor, _ := args.Get(0).(datadogV1.Monitor)
	resp, _ := args.Get(1).(*http.Response)
	return monitor, resp, args.Error(2)
}

func (m *MockClient) ListDashboards(ctx context.Context, _ ...datadogV1.ListDashboardsOptionalParameters) (datadogV1.DashboardSummary, *http.Response, error) {
	args := m.Called(ctx)
	summary, _ := args.Get(0).(datadogV1.DashboardSummary)
	resp, _ := args.Get(1).(*http.Response)
	return summary, resp, args.Error(2)
}

func (m *MockClient) GetDashboard(ctx context.Context, dashboardId string) (datadogV1.Dashboard, *http.Response, error) {
	args := m.Called(ctx, dashboardId)
	dashboard, _ := args.Get(0).(datadogV1.Dashboard)
	resp, _ := args.Get(1).(*http.Response)
	return dashboard, resp, args.Error(2)
}

func (m *MockClient) ListSLOs(ctx context.Context, _ ...datadogV1.ListSLOsOptionalParameters) (datadogV1.SLOListResponse, *http.Response, error) {
	args := m.Called(ctx)
	slos, _ := args.Get(0).(datadogV1.SLOListResponse)
	resp, _ := args.Get(1).(*http.Response)
	return slos, resp, args.Error(2)
}

func (m *MockClient) GetSLO(ctx context.Context, sloId string, _ ...datadogV1.GetSLOOptionalParameters) (datadogV1.SLOResponse, *http.Response, error) {
	args := m.Called(ctx, sloId)
	slo, _ := args.Get(0).(datadogV1.SLOResponse)
	resp, _ := args.Get(1).(*http.Response)
	return slo, resp, args.Error(2)
}
