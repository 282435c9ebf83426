// Package datadog checks app.datadoghq.com links through the DataDog API.
// Monitors, dashboards and SLOs are resolved to the real resource; everything
// else (and every link when no API keys are configured) comes back as an
// unverified warning rather than a hard failure.
package datadog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"go.uber.org/zap"

	"linkcheck/pkg/errs"
	"linkcheck/pkg/regex"
)

type LinkProcessor struct {
	client  client
	hasKeys bool
	routes  map[string]ddHandler
	logger  *zap.Logger
}

type ddResource struct {
	Link      string
	Type      string
	ID        string
	Action    string
	Query     url.Values
	Fragments string
	Path      []string
}

// listActions are the UI pages that sit where a resource id would.
var listActions = map[string]struct{}{
	"manage": {}, // /monitors/manage, /slo/manage
	"lists":  {}, // /dashboard/lists
}

func New(apiKey, appKey string, logger *zap.Logger) *LinkProcessor {
	configuration := datadog.NewConfiguration()
	proc := &LinkProcessor{
		client: wrapper{
			client: datadog.NewAPIClient(configuration),
			apiKey: apiKey,
			appKey: appKey,
		},
		hasKeys: apiKey != "" && appKey != "",
		routes:  make(map[string]ddHandler),
		logger:  logger,
	}
	return proc.registerDefaultHandlers()
}

func (proc *LinkProcessor) registerDefaultHandlers() *LinkProcessor {
	return proc.
		Route("", handleConnection).
		Route("monitors", handleMonitors).
		Route("dashboard", handleDashboards).
		Route("slo", handleSLOs)
}

// Route binds a url type (the first path segment) to a handler.
func (proc *LinkProcessor) Route(resourceType string, handler ddHandler) *LinkProcessor {
	proc.routes[resourceType] = handler
	return proc
}

func (proc *LinkProcessor) Process(ctx context.Context, link string, _ string) error {
	proc.logger.Debug("validating DataDog url", zap.String("url", link))

	if !proc.hasKeys {
		return errs.NewUnverified(link, "DD_API_KEY/DD_APP_KEY are not set")
	}

	resource, err := parseDataDogURL(link)
	if err != nil {
		return err
	}

	handler, exists := proc.routes[resource.Type]
	if !exists {
		return errs.NewUnverified(link, fmt.Sprintf("unsupported DataDog page type '%s'", resource.Type))
	}
	return handler(proc.client.withAuth(ctx), proc.client, *resource)
}

func parseDataDogURL(link string) (*ddResource, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	pathSegments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(pathSegments) == 1 && pathSegments[0] == "" {
		pathSegments = []string{}
	}

	resource := &ddResource{
		Link:      link,
		Path:      pathSegments,
		Query:     u.Query(),
		Fragments: u.Fragment,
	}

	if len(pathSegments) > 0 {
		resource.Type = pathSegments[0]
	}
	if len(pathSegments) > 1 {
		if _, list := listActions[pathSegments[1]]; list && len(pathSegments) == 2 {
			resource.Action = pathSegments[1]
		} else {
			resource.ID = pathSegments[1]
		}
	}
	if len(pathSegments) > 2 {
		resource.Action = pathSegments[2]
	}

	return resource, nil
}

func (proc *LinkProcessor) ExtractLinks(line string) []string {
	parts := regex.DataDog.FindAllString(line, -1)
	if len(parts) == 0 {
		return nil
	}

	urls := make([]string, 0, len(parts))
	for _, raw := range parts {
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			continue // skip malformed
		}
		if strings.ContainsAny(raw, "[]{}()") {
			continue // seems it is the templated url
		}

		urls = append(urls, raw)
	}

	return urls
}
