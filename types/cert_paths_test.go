package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/miniconomy2025/ca/cert"
)

func TestCertPaths(t *testing.T) {
	p := NewCertPaths("certs")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "root ca key",
			got:  p.RootCAKeyAbsFilename(),
			want: "certs/root-ca.key",
		},
		{
			name: "root ca cert",
			got:  p.RootCACertAbsFilename(),
			want: "certs/root-ca.crt",
		},
		{
			name: "client key",
			got:  p.TeamKeyAbsFilename("alpha", cert.RoleClient),
			want: "certs/provider-certs/alpha-client.key",
		},
		{
			name: "client csr",
			got:  p.TeamCSRAbsFilename("alpha", cert.RoleClient),
			want: "certs/provider-certs/alpha-client.csr",
		},
		{
			name: "client cert",
			got:  p.TeamCertAbsFilename("alpha", cert.RoleClient),
			want: "certs/provider-certs/alpha-client.crt",
		},
		{
			name: "server key",
			got:  p.TeamKeyAbsFilename("alpha", cert.RoleServer),
			want: "certs/server-certs/alpha-server.key",
		},
		{
			name: "server cert",
			got:  p.TeamCertAbsFilename("alpha", cert.RoleServer),
			want: "certs/server-certs/alpha-server.crt",
		},
		{
			name: "bundle",
			got:  p.BundleAbsFilename("alpha"),
			want: "certs/zips/alpha.zip",
		},
		{
			name: "bundle dir",
			got:  p.BundleDir(),
			want: "certs/zips",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("path mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCertPathsNoCollisions(t *testing.T) {
	p := NewCertPaths("certs")

	seen := map[string]string{}
	for _, team := range []string{"alpha", "beta"} {
		for _, role := range []cert.Role{cert.RoleClient, cert.RoleServer} {
			for _, path := range []string{
				p.TeamKeyAbsFilename(team, role),
				p.TeamCSRAbsFilename(team, role),
				p.TeamCertAbsFilename(team, role),
			} {
				if owner, ok := seen[path]; ok {
					t.Errorf("path %q produced for both %q and %q", path, owner, team)
				}
				seen[path] = team
			}
		}
	}
}
