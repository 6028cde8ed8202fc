package s3_test

import (
	"path/filepath"
	"testing"

	"atoll/config"
	"atoll/infras/otel/mocks"
	"atoll/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestNewObjectName(t *testing.T) {
	name := s3.NewObjectName("Beach Villa.JPG")

	assert.Equal(t, ".jpg", filepath.Ext(name))
	assert.NotEqual(t, s3.NewObjectName("Beach Villa.JPG"), name)
	assert.Empty(t, filepath.Ext(s3.NewObjectName("README")))
}

func TestObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "atoll"
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"
	cfg.External.S3.Region = "auto"

	svc := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name      string
		directory string
		url       string
		expected  string
	}{
		{name: "public domain", directory: "media", url: "https://cdn.example.com/media/a.png", expected: "a.png"},
		{name: "api endpoint", directory: "property", url: "https://s3.example.com/atoll/property/b.webp", expected: "b.webp"},
		{name: "other directory", directory: "media", url: "https://cdn.example.com/property/a.png", expected: ""},
		{name: "foreign url", directory: "media", url: "https://images.example.org/media/a.png", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.ObjectNameFromURL(tt.directory, tt.url))
		})
	}
}
