package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info  struct{ Title string } `json:"info"`
		Host  string                 `json:"host"`
		Paths map[string]any         `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "Bodegas API", doc.Info.Title)
	assert.Equal(t, "localhost:8080", doc.Host)
	assert.Contains(t, doc.Paths, "/api/orders/{id}/picking-list")
	assert.Contains(t, doc.Paths, "/api/inventory")
}
