package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		endpoint   string
		useSSL     bool
		wantHost   string
		wantSecure bool
	}{
		{"localhost:9000", false, "localhost:9000", false},
		{"localhost:9000", true, "localhost:9000", true},
		{"http://minio:9000/", false, "minio:9000", false},
		{"https://s3.amazonaws.com", false, "s3.amazonaws.com", true},
		{"  ", false, "", false},
	}
	for _, tt := range tests {
		host, secure := splitEndpoint(tt.endpoint, tt.useSSL)
		assert.Equal(t, tt.wantHost, host, tt.endpoint)
		assert.Equal(t, tt.wantSecure, secure, tt.endpoint)
	}
}
