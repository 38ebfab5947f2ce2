package cert

import (
	"github.com/miniconomy2025/ca/utils"
)

// LocalDirCertStorage is a certificate storage that stores certificates in a local directory.
type LocalDirCertStorage struct {
	paths CertPaths
}

// NewLocalDirCertStorage inits a new LocalDirCertStorage.
func NewLocalDirCertStorage(paths CertPaths) *LocalDirCertStorage {
	return &LocalDirCertStorage{
		paths: paths,
	}
}

// LoadRootCACert loads the root CA certificate and key from disk.
func (c *LocalDirCertStorage) LoadRootCACert() (*Certificate, error) {
	return NewCertificateFromFile(c.paths.RootCACertAbsFilename(), c.paths.RootCAKeyAbsFilename(), "")
}

// LoadTeamCert loads a team certificate from disk for the given role.
func (c *LocalDirCertStorage) LoadTeamCert(team string, role Role) (*Certificate, error) {
	certFilename := c.paths.TeamCertAbsFilename(team, role)
	keyFilename := c.paths.TeamKeyAbsFilename(team, role)
	csrFilename := c.paths.TeamCSRAbsFilename(team, role)
	return NewCertificateFromFile(certFilename, keyFilename, csrFilename)
}

// StoreRootCACert stores the given root CA certificate and its key on disk.
func (c *LocalDirCertStorage) StoreRootCACert(cert *Certificate) error {
	// root CA cert and key live directly under the base directory
	err := utils.CreateDirectory(c.paths.BaseDir(), utils.PermissionsDirDefault)
	if err != nil {
		return err
	}

	return cert.Write(c.paths.RootCACertAbsFilename(), c.paths.RootCAKeyAbsFilename(), "")
}

// StoreTeamCert stores the given certificate in a file in the role directory.
func (c *LocalDirCertStorage) StoreTeamCert(team string, role Role, cert *Certificate) error {
	// create a folder for the role artifacts if it does not exist
	err := utils.CreateDirectory(c.paths.RoleDir(role), utils.PermissionsDirDefault)
	if err != nil {
		return err
	}

	// write cert files
	return cert.Write(c.paths.TeamCertAbsFilename(team, role),
		c.paths.TeamKeyAbsFilename(team, role), c.paths.TeamCSRAbsFilename(team, role))
}
