package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cv-backend/internal/domain"
)

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"aws default", Config{Provider: ProviderAWS, Region: "eu-west-3"}, ""},
		{"wasabi by region", Config{Provider: ProviderWasabi, Region: "eu-central-1"}, "https://s3.eu-central-1.wasabisys.com"},
		{"wasabi unknown region", Config{Provider: ProviderWasabi, Region: "mars-1"}, "https://s3.wasabisys.com"},
		{"explicit without scheme", Config{Provider: ProviderMinIO, Endpoint: "minio.internal:9000"}, "https://minio.internal:9000"},
		{"explicit http", Config{Provider: ProviderMinIO, Endpoint: "http://localhost:9000"}, "http://localhost:9000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ResolveEndpoint())
		})
	}
}

func TestNew_IncompleteConfigIsDisabled(t *testing.T) {
	s, err := New(context.Background(), Config{Bucket: "cvs"})
	require.NoError(t, err)
	assert.False(t, s.Enabled())

	err = s.Put(context.Background(), "k", "text/plain", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)
	assert.ErrorIs(t, s.Ping(context.Background()), ErrDisabled)
}
