package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caerrors "github.com/miniconomy2025/ca/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "teams.yml")
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestLoadConfig(t *testing.T) {
	file := writeConfig(t, `
key_size: 4096
validity_days: 365
cert_dir: out/certs
dn:
  country: ZA
  province: Gauteng
  locality: Johannesburg
  organization: Miniconomy
teams:
  - name: alpha
    common_name: alpha.example.com
  - name: beta
    common_name: beta.example.com
`)

	cfg, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, 4096, cfg.KeySize)
	assert.Equal(t, 365, cfg.ValidityDays)
	assert.Equal(t, "out/certs", cfg.CertDir)
	assert.Nil(t, cfg.Extensions)

	wantTeams := []Team{
		{Name: "alpha", CommonName: "alpha.example.com"},
		{Name: "beta", CommonName: "beta.example.com"},
	}
	if diff := cmp.Diff(wantTeams, cfg.Teams); diff != "" {
		t.Errorf("teams mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	file := writeConfig(t, `
dn:
  country: ZA
  province: Gauteng
  locality: Johannesburg
  organization: Miniconomy
teams:
  - name: alpha
    common_name: alpha.example.com
`)

	cfg, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, DefaultKeySize, cfg.KeySize)
	assert.Equal(t, DefaultValidityDays, cfg.ValidityDays)
	assert.Equal(t, DefaultCertDir, cfg.CertDir)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no teams",
			content: "dn:\n  country: ZA\n",
		},
		{
			name: "duplicate team",
			content: `
teams:
  - name: alpha
    common_name: alpha.example.com
  - name: alpha
    common_name: alpha2.example.com
`,
		},
		{
			name: "missing common name",
			content: `
teams:
  - name: alpha
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, caerrors.ErrIncorrectInput)
		})
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
bogus_field: true
teams:
  - name: alpha
    common_name: alpha.example.com
`))
	assert.Error(t, err, "unknown fields must be rejected")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestResolveExtensions(t *testing.T) {
	dir := t.TempDir()

	extFile := filepath.Join(dir, "server.ext.yml")
	require.NoError(t, os.WriteFile(extFile, []byte(`
subject_alt_names:
  - "alpha-api.example.com"
  - "10.0.0.5"
extended_key_usages:
  - serverAuth
`), 0o644))

	cfgFile := filepath.Join(dir, "teams.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
extensions_file: `+extFile+`
teams:
  - name: alpha
    common_name: alpha.example.com
`), 0o644))

	cfg, err := LoadConfig(cfgFile)
	require.NoError(t, err)

	require.NotNil(t, cfg.Extensions)
	assert.Equal(t, []string{"alpha-api.example.com", "10.0.0.5"}, cfg.Extensions.SubjectAltNames)
	assert.Equal(t, []string{"serverAuth"}, cfg.Extensions.ExtendedKeyUsages)
}

func TestResolveExtensionsAbsentFile(t *testing.T) {
	// a configured but absent extensions file is not fatal
	file := writeConfig(t, `
extensions_file: does-not-exist.ext.yml
teams:
  - name: alpha
    common_name: alpha.example.com
`)

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Nil(t, cfg.Extensions)
}

func TestValidity(t *testing.T) {
	cfg := &Config{ValidityDays: 2}
	assert.Equal(t, 48.0, cfg.Validity().Hours())
}
