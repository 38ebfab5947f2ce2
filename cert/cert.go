package cert

// Cert is a wrapper struct for the Certificate Authority and the Certificate Storage.
type Cert struct {
	CertificateAuthority
	CertStorage
}

// Role is the purpose a team certificate is issued for.
type Role string

const (
	// RoleClient denotes a team's client certificate artifacts.
	RoleClient Role = "client"
	// RoleServer denotes a team's server certificate artifacts.
	RoleServer Role = "server"
)

// CertPaths maps (team, role, artifact kind) to filesystem locations.
type CertPaths interface {
	RootCAKeyAbsFilename() string
	RootCACertAbsFilename() string
	TeamKeyAbsFilename(team string, role Role) string
	TeamCSRAbsFilename(team string, role Role) string
	TeamCertAbsFilename(team string, role Role) string
	RoleDir(role Role) string
	BundleDir() string
	BundleAbsFilename(team string) string
	BaseDir() string
}

// CertStorage is an interface that wraps methods to load and store certificates.
type CertStorage interface {
	LoadRootCACert() (*Certificate, error)
	StoreRootCACert(cert *Certificate) error
	LoadTeamCert(team string, role Role) (*Certificate, error)
	StoreTeamCert(team string, role Role, cert *Certificate) error
}
