package datadog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"linkcheck/pkg/errs"
)

type ddHandler func(
	ctx context.Context,
	c client,
	resource ddResource,
) error

func handleConnection(ctx context.Context, c client, resource ddResource) error {
	validation, resp, err := c.Validate(ctx)
	if err != nil {
		return ddErr(resource, resp, fmt.Errorf("DataDog API connection failed: %w", err))
	}
	if !validation.GetValid() {
		return errs.NewUnverified(resource.Link, "invalid DataDog credentials")
	}
	return nil
}

func handleMonitors(ctx context.Context, c client, resource ddResource) error {
	if resource.ID == "" {
		_, resp, err := c.ListMonitors(ctx)
		return ddErr(resource, resp, err)
	}
	monitorId, err := strconv.ParseInt(resource.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid monitor id: '%s'", resource.ID)
	}

	_, resp, err := c.GetMonitor(ctx, monitorId)
	return ddErr(resource, resp, err)
}

func handleDashboards(ctx context.Context, c client, resource ddResource) error {
	if resource.ID == "" {
		_, resp, err := c.ListDashboards(ctx)
		return ddErr(resource, resp, err)
	}
	_, resp, err := c.GetDashboard(ctx, resource.ID)
	return ddErr(resource, resp, err)
}

// handleSLOs resolves /slo pages. The ids live in the "sp" query parameter,
// without one only the list endpoint is checked.
func handleSLOs(ctx context.Context, c client, resource ddResource) error {
	sp := resource.Query.Get("sp")
	if sp == "" {
		_, resp, err := c.ListSLOs(ctx)
		return ddErr(resource, resp, err)
	}

	var elements []sloSPElement
	if err := json.Unmarshal([]byte(sp), &elements); err != nil {
		return fmt.Errorf("can't parse slo panel state: %w", err)
	}
	for _, el := range elements {
		if el.P.ID == "" {
			continue
		}
		_, resp, err := c.GetSLO(ctx, el.P.ID)
		if err = ddErr(resource, resp, err); err != nil {
			return err
		}
	}
	return nil
}

// ddErr translates API failures into the shared sentinels, keyed off the
// HTTP status.
func ddErr(resource ddResource, resp *http.Response, err error) error {
	if err == nil {
		return nil
	}
	if resp == nil {
		return err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return errs.NewNotFound(resource.Link)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errs.NewUnverified(resource.Link, "requires auth")
	case resp.StatusCode == http.StatusTooManyRequests:
		return errs.NewUnverified(resource.Link, "rate limited")
	case resp.StatusCode >= http.StatusInternalServerError:
		return errs.NewUnverified(resource.Link, fmt.Sprintf("server returned %d", resp.StatusCode))
	}
	return err
}
