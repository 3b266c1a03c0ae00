package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMorphServer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"workshop.example.com:8000", "https://workshop.example.com:8000"},
		{"http://localhost:8000", "http://localhost:8000"},
		{"https://workshop.example.com/", "https://workshop.example.com"},
		{"workshop.example.com:8000///", "https://workshop.example.com:8000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MorphServer(tt.in), "input %q", tt.in)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := &Config{Version: "0.1.0", ServerURL: "workshop.example.com:8000", Insecure: true}
	require.NoError(t, cfg.WriteConfig(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, LoadConfig(path))
	loaded := GetConfig()
	require.NotNil(t, loaded)
	assert.Equal(t, "https://workshop.example.com:8000", loaded.GetServerURL())
	assert.True(t, loaded.Insecure)
}

func TestLoadConfigRequiresServer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 0.1.0\n"), 0600))

	err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server_url")
}

func TestLookupResource(t *testing.T) {
	info, err := lookupResource("customers")
	require.NoError(t, err)
	assert.Equal(t, "customers/", info.Path)

	info, err = lookupResource("vehicle")
	require.NoError(t, err)
	assert.Equal(t, "vehicle/", info.Path)

	info, err = lookupResource("Service-Requests")
	require.NoError(t, err)
	assert.Equal(t, "service_request/", info.Path)

	info, err = lookupResource("audit")
	require.NoError(t, err)
	assert.True(t, info.ReadOnly)

	_, err = lookupResource("widgets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Supported:")
}

func TestReadDefinitionFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "customer.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"first_name":"Ama"}`), 0644))
	body, err := readDefinitionFile(jsonPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"first_name":"Ama"}`, string(body))

	yamlPath := filepath.Join(dir, "customer.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("first_name: Ama\nsite: 2\n"), 0644))
	body, err = readDefinitionFile(yamlPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"first_name":"Ama","site":2}`, string(body))

	badPath := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(badPath, []byte(":\tnot yaml"), 0644))
	_, err = readDefinitionFile(badPath)
	require.Error(t, err)
}

func TestSetFieldTypes(t *testing.T) {
	body := []byte("{}")
	var err error

	body, err = setField(body, "phone", "0244000111")
	require.NoError(t, err)
	body, err = setField(body, "paid", "true")
	require.NoError(t, err)
	body, err = setField(body, "total_cost", "150.5")
	require.NoError(t, err)
	body, err = setField(body, "vehicle", "null")
	require.NoError(t, err)
	body, err = setField(body, "note", "42 Main St")
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"phone": "0244000111",
		"paid": true,
		"total_cost": 150.5,
		"vehicle": null,
		"note": "42 Main St"
	}`, string(body))
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID("0")
	require.Error(t, err)
	_, err = parseID("abc")
	require.Error(t, err)
	_, err = parseID("-3")
	require.Error(t, err)
}
