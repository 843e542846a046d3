package withdrawal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want SerialList
	}{
		{"Array", `["SN1","SN2"]`, SerialList{"SN1", "SN2"}},
		{"Text", `"SN1, SN2\nSN3"`, SerialList{"SN1", "SN2", "SN3"}},
		{"Null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SerialList
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad SerialList
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}
