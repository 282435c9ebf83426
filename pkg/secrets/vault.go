package secrets

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/vault-client-go"
	"go.uber.org/zap"

	"linkcheck/pkg/config"
)

type kvClient interface {
	Read(ctx context.Context, path string, options ...vault.RequestOption) (*vault.Response[map[string]interface{}], error)
}

type wrapper struct {
	client *vault.Client
}

func (w wrapper) Read(ctx context.Context, path string, options ...vault.RequestOption) (*vault.Response[map[string]interface{}], error) {
	return w.client.Read(ctx, path, options...)
}

// VaultSource resolves variables from the fields of a single Vault secret.
// The secret is read once, on the first lookup, and the fields are kept for
// the rest of the run.
type VaultSource struct {
	client kvClient
	path   string
	logger *zap.Logger

	once   sync.Once
	fields map[string]interface{}
}

// NewVault connects to the Vault at addr and binds lookups to the secret at
// path.
func NewVault(addr, token, path string, timeout time.Duration, logger *zap.Logger) (*VaultSource, error) {
	client, err := vault.New(
		vault.WithAddress(addr),
		vault.WithRequestTimeout(timeout),
	)
	if err != nil {
		return nil, err
	}
	if err := client.SetToken(token); err != nil {
		return nil, err
	}
	return &VaultSource{client: wrapper{client}, path: path, logger: logger}, nil
}

// Lookup returns the secret field called name. Implements config.Lookup, so
// a missing field or an unreachable Vault reads as an unset variable.
func (s *VaultSource) Lookup(name string) (string, bool) {
	s.once.Do(s.load)
	value, ok := s.fields[name]
	if !ok {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}

func (s *VaultSource) load() {
	resp, err := s.client.Read(context.Background(), s.path)
	if err != nil {
		s.logger.Warn("can't read secret from vault", zap.String("path", s.path), zap.Error(err))
		return
	}

	fields := resp.Data
	// KVv2 nests the fields under "data", KVv1 keeps them at the top
	if nested, ok := fields["data"].(map[string]interface{}); ok {
		fields = nested
	}
	s.fields = fields
}

var _ config.Lookup = (&VaultSource{}).Lookup
