package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type operation struct {
	Tags     []string                   `json:"tags"`
	Summary  string                     `json:"summary"`
	Security []map[string][]string      `json:"security"`
	Resp     map[string]json.RawMessage `json:"responses"`
}

func readDoc(t *testing.T) map[string]map[string]operation {
	t.Helper()
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                          `json:"swagger"`
		Paths   map[string]map[string]operation `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	return doc.Paths
}

func TestDoc_MatchesHandlerAnnotations(t *testing.T) {
	paths := readDoc(t)

	signUp := paths["/users/sign-up"]["post"]
	assert.Equal(t, []string{"users"}, signUp.Tags)
	assert.Equal(t, "Sign up", signUp.Summary)
	assert.Empty(t, signUp.Security)

	admin := paths["/users/sign-up/admin"]["post"]
	assert.Equal(t, "Sign up an admin", admin.Summary)
	assert.NotEmpty(t, admin.Security)
	assert.Contains(t, admin.Resp, "403")

	assert.Equal(t, "Readiness check", paths["/health/ready"]["get"].Summary)
	assert.Contains(t, paths["/songs/{id}"], "put")
	assert.Contains(t, paths["/playlists/count"], "get")
}

func TestDoc_CoversEveryRoute(t *testing.T) {
	paths := readDoc(t)

	n := 0
	for _, ops := range paths {
		n += len(ops)
	}
	// 10 user, 7 song, 7 playlist and 2 health operations
	assert.Equal(t, 26, n)
}
