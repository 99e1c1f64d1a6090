package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/clusterview-dev/clusterview/internal/model"
)

// Login sends credentials to the authentication endpoint and returns the raw
// envelope. The session layer interprets it; a structured rejection is a
// normal envelope with success=false or a typed *Error carrying the backend
// message.
func (c *Client) Login(ctx context.Context, username, password string) (*model.Response, error) {
	return c.do(ctx, http.MethodPost, "/login", model.LoginRequest{
		Username: username,
		Password: password,
	})
}

// UserInfo fetches the profile of the authenticated user.
func (c *Client) UserInfo(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := c.get(ctx, "/user/info", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChangePassword updates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	envelope, err := c.do(ctx, http.MethodPost, "/user/change-password", map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	})
	if err != nil {
		return err
	}
	if !envelope.Success {
		return fmt.Errorf("request rejected: %s", messageOr(envelope.Message, "unknown error"))
	}
	return nil
}

// ListOptions selects one page of a list endpoint. Zero values use the
// server's defaults.
type ListOptions struct {
	Page     int
	PageSize int
}

func (o ListOptions) query() url.Values {
	values := url.Values{}
	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(o.PageSize))
	}
	return values
}

// ListClusters returns one page of clusters and the total count.
func (c *Client) ListClusters(ctx context.Context, opts ListOptions) ([]model.Cluster, int, error) {
	var clusters []model.Cluster
	total, err := c.getPage(ctx, "/clusters", opts.query(), &clusters)
	return clusters, total, err
}

// GetCluster returns a single cluster by id.
func (c *Client) GetCluster(ctx context.Context, id string) (*model.Cluster, error) {
	var cluster model.Cluster
	if err := c.get(ctx, "/clusters/"+url.PathEscape(id), &cluster); err != nil {
		return nil, err
	}
	return &cluster, nil
}

// ListHosts returns one page of managed hosts and the total count.
func (c *Client) ListHosts(ctx context.Context, opts ListOptions) ([]model.Host, int, error) {
	var hosts []model.Host
	total, err := c.getPage(ctx, "/hosts", opts.query(), &hosts)
	return hosts, total, err
}

// GetHost returns a single host by id.
func (c *Client) GetHost(ctx context.Context, id string) (*model.Host, error) {
	var host model.Host
	if err := c.get(ctx, "/hosts/"+url.PathEscape(id), &host); err != nil {
		return nil, err
	}
	return &host, nil
}

// ListServices returns one page of deployed services and the total count.
func (c *Client) ListServices(ctx context.Context, opts ListOptions) ([]model.Service, int, error) {
	var services []model.Service
	total, err := c.getPage(ctx, "/services", opts.query(), &services)
	return services, total, err
}

// GetService returns a single service by id.
func (c *Client) GetService(ctx context.Context, id string) (*model.Service, error) {
	var service model.Service
	if err := c.get(ctx, "/services/"+url.PathEscape(id), &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// Metrics returns recent metric samples, optionally filtered by host.
func (c *Client) Metrics(ctx context.Context, hostID string) ([]model.MetricRecord, error) {
	path := "/metrics"
	if hostID != "" {
		path += "?host_id=" + url.QueryEscape(hostID)
	}
	var records []model.MetricRecord
	err := c.get(ctx, path, &records)
	return records, err
}

// Alerts returns fired alerts.
func (c *Client) Alerts(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	err := c.get(ctx, "/alerts", &alerts)
	return alerts, err
}

// QueryLogs returns one page of collected log entries and the total count,
// optionally filtered by host.
func (c *Client) QueryLogs(ctx context.Context, hostID string, opts ListOptions) ([]model.LogEntry, int, error) {
	query := opts.query()
	if hostID != "" {
		query.Set("host_id", hostID)
	}
	var entries []model.LogEntry
	total, err := c.getPage(ctx, "/logs", query, &entries)
	return entries, total, err
}

// get performs a GET and decodes the envelope's data payload into out.
// Business-level rejections (success=false on a 2xx) surface as plain errors
// for the call site; they carry no global side effects.
func (c *Client) get(ctx context.Context, path string, out any) error {
	envelope, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if !envelope.Success {
		return fmt.Errorf("request rejected: %s", messageOr(envelope.Message, "unknown error"))
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// getPage performs a GET against a paged list endpoint and decodes the
// page's data payload into out, returning the total count across all pages.
func (c *Client) getPage(ctx context.Context, path string, query url.Values, out any) (int, error) {
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var envelope model.PageResponse
	if err := c.doInto(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return 0, err
	}
	if !envelope.Success {
		return 0, fmt.Errorf("request rejected: %s", messageOr(envelope.Message, "unknown error"))
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return 0, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return envelope.Total, nil
}
