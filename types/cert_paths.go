package types

import (
	"fmt"
	"path"

	"github.com/miniconomy2025/ca/cert"
)

const (
	// RootCAKeyFileName is the fixed name of the root CA private key under the base directory.
	RootCAKeyFileName = "root-ca.key"
	// RootCACertFileName is the fixed name of the root CA certificate under the base directory.
	RootCACertFileName = "root-ca.crt"

	// KeyFileSuffix is the suffix of private key files.
	KeyFileSuffix = ".key"
	// CertFileSuffix is the suffix of certificate files.
	CertFileSuffix = ".crt"
	// CSRFileSuffix is the suffix of certificate signing request files.
	CSRFileSuffix = ".csr"

	clientCertDirName = "provider-certs"
	serverCertDirName = "server-certs"
	bundleDirName     = "zips"
	bundleFileSuffix  = ".zip"
)

// CertPaths derives all certificate and bundle locations from the base directory.
// Per-team paths are namespaced by the team name, so no collisions are possible
// across teams.
type CertPaths struct {
	baseDir string
}

// NewCertPaths constructs a new CertPaths instance rooted at baseDir.
func NewCertPaths(baseDir string) *CertPaths {
	return &CertPaths{baseDir: baseDir}
}

// BaseDir returns the base certificate directory.
func (p *CertPaths) BaseDir() string {
	return p.baseDir
}

// RootCAKeyAbsFilename returns the path of the root CA private key.
func (p *CertPaths) RootCAKeyAbsFilename() string {
	return path.Join(p.baseDir, RootCAKeyFileName)
}

// RootCACertAbsFilename returns the path of the root CA certificate.
func (p *CertPaths) RootCACertAbsFilename() string {
	return path.Join(p.baseDir, RootCACertFileName)
}

// RoleDir returns the directory that contains the team artifacts for the given role.
func (p *CertPaths) RoleDir(role cert.Role) string {
	switch role {
	case cert.RoleServer:
		return path.Join(p.baseDir, serverCertDirName)
	default:
		return path.Join(p.baseDir, clientCertDirName)
	}
}

// TeamKeyAbsFilename returns the path of a team's private key for the given role.
func (p *CertPaths) TeamKeyAbsFilename(team string, role cert.Role) string {
	return path.Join(p.RoleDir(role), teamFilename(team, role, KeyFileSuffix))
}

// TeamCSRAbsFilename returns the path of a team's certificate signing request for the given role.
func (p *CertPaths) TeamCSRAbsFilename(team string, role cert.Role) string {
	return path.Join(p.RoleDir(role), teamFilename(team, role, CSRFileSuffix))
}

// TeamCertAbsFilename returns the path of a team's certificate for the given role.
func (p *CertPaths) TeamCertAbsFilename(team string, role cert.Role) string {
	return path.Join(p.RoleDir(role), teamFilename(team, role, CertFileSuffix))
}

// BundleDir returns the directory that takes the team bundles.
func (p *CertPaths) BundleDir() string {
	return path.Join(p.baseDir, bundleDirName)
}

// BundleAbsFilename returns the path of the bundle archive for the given team.
func (p *CertPaths) BundleAbsFilename(team string) string {
	return path.Join(p.BundleDir(), team+bundleFileSuffix)
}

func teamFilename(team string, role cert.Role, suffix string) string {
	return fmt.Sprintf("%s-%s%s", team, role, suffix)
}
