package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"panelctl/internal/schema"
)

// Resource is a typed CRUD surface over one backend collection. The backend
// answers some writes with the bare record and others with a
// {"detail": ..., "data": {...}} envelope; decode tolerates both.
type Resource[T schema.Record] struct {
	client   *Client
	basePath string
}

// NewResource binds a record type to its collection path (no trailing
// slash).
func NewResource[T schema.Record](c *Client, basePath string) Resource[T] {
	return Resource[T]{client: c, basePath: basePath}
}

// List fetches the whole collection.
func (r Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, http.MethodGet, r.basePath+"/", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBy fetches the sub-collection scoped by key (e.g. branch mappings for
// one enterprise).
func (r Resource[T]) ListBy(ctx context.Context, key string) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, http.MethodGet, r.keyPath(key), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one record by key.
func (r Resource[T]) Get(ctx context.Context, key string) (T, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodGet, r.keyPath(key), nil, &raw, true); err != nil {
		var zero T
		return zero, err
	}
	return decodeRecord[T](raw)
}

// Create appends a new record.
func (r Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodPost, r.basePath+"/", rec, &raw, true); err != nil {
		var zero T
		return zero, err
	}
	return decodeRecord[T](raw)
}

// Update replaces the record stored under key (idempotent full-record PUT).
// key is the identity the record had when it was loaded, so key-like fields
// may be edited without losing the request target.
func (r Resource[T]) Update(ctx context.Context, key string, rec T) (T, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodPut, r.keyPath(key), rec, &raw, true); err != nil {
		var zero T
		return zero, err
	}
	return decodeRecord[T](raw)
}

func (r Resource[T]) keyPath(key string) string {
	return r.basePath + "/" + url.PathEscape(key)
}

// decodeRecord accepts either a bare record or the detail/data envelope.
func decodeRecord[T schema.Record](raw json.RawMessage) (T, error) {
	var envelope struct {
		Detail string          `json:"detail"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}

	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// Collection constructors, one per backend resource.

func Enterprises(c *Client) Resource[schema.EnterpriseSettings] {
	return NewResource[schema.EnterpriseSettings](c, "/enterprise/settings")
}

func Developers(c *Client) Resource[schema.DeveloperSettings] {
	return NewResource[schema.DeveloperSettings](c, "/developer/settings")
}

func DataFormats(c *Client) Resource[schema.DataFormat] {
	return NewResource[schema.DataFormat](c, "/data_formats")
}

func MappingBranches(c *Client) Resource[schema.MappingBranch] {
	return NewResource[schema.MappingBranch](c, "/mapping_branch")
}

func DropshipEnterprises(c *Client) Resource[schema.DropshipEnterprise] {
	return NewResource[schema.DropshipEnterprise](c, "/dropship/enterprises")
}
