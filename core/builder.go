package core

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/miniconomy2025/ca/cert"
	caerrors "github.com/miniconomy2025/ca/errors"
	"github.com/miniconomy2025/ca/types"
	"github.com/miniconomy2025/ca/utils"
)

// BuildHierarchy establishes the root CA and issues the client and server
// certificates for every team in roster order. Any engine failure aborts the
// run immediately; partially generated files for the failing team remain on
// disk and are overwritten on the next run.
func (c *CertGen) BuildHierarchy() error {
	err := c.createDirectories()
	if err != nil {
		return err
	}

	err = c.establishRootCA()
	if err != nil {
		return err
	}

	for i, team := range c.Config.Teams {
		// the 1-based roster index serves as the serial number of both
		// the client and the server certificate of the team
		serial := int64(i + 1)

		log.Infof("----- generating %s certificates -----", team.Name)

		err = c.issueTeamCert(team, cert.RoleClient, serial, nil)
		if err != nil {
			return err
		}

		err = c.issueTeamCert(team, cert.RoleServer, serial, c.Config.Extensions)
		if err != nil {
			return err
		}
	}

	log.Info("all certificates generated successfully")

	return nil
}

// establishRootCA creates the root CA once. An existing root CA key on disk is
// never regenerated, preserving trust continuity for previously issued certs.
func (c *CertGen) establishRootCA() error {
	if utils.FileExists(c.Paths.RootCAKeyAbsFilename()) {
		log.Infof("reusing existing root CA at %s", c.Paths.RootCACertAbsFilename())

		rootCert, err := c.cert.LoadRootCACert()
		if err != nil {
			return err
		}

		return c.cert.SetRootCertificate(rootCert)
	}

	log.Info("creating root CA")

	rootCert, err := c.cert.GenerateRootCert(&cert.CACSRInput{
		CommonName:       types.RootCAName,
		Country:          c.Config.DN.Country,
		Province:         c.Config.DN.Province,
		Locality:         c.Config.DN.Locality,
		Organization:     c.Config.DN.Organization,
		OrganizationUnit: types.RootCAName,
		KeySize:          c.Config.KeySize,
		Expiry:           c.Config.Validity(),
	})
	if err != nil {
		return err
	}

	return c.cert.StoreRootCACert(rootCert)
}

// issueTeamCert generates a fresh key pair and CSR for the team and signs the
// CSR with the root CA. The extensions spec is applied when not nil.
func (c *CertGen) issueTeamCert(team types.Team, role cert.Role, serial int64, ext *types.ExtensionsSpec) error {
	teamCert, err := c.cert.GenerateKeyAndCSR(&cert.CSRInput{
		CommonName:       team.CommonName,
		Country:          c.Config.DN.Country,
		Province:         c.Config.DN.Province,
		Locality:         c.Config.DN.Locality,
		Organization:     c.Config.DN.Organization,
		OrganizationUnit: team.Name,
		KeySize:          c.Config.KeySize,
	})
	if err != nil {
		return err
	}

	signInput := &cert.SignInput{
		CSR:    teamCert.Csr,
		Serial: serial,
		Expiry: c.Config.Validity(),
	}
	if ext != nil {
		signInput.Hosts = ext.SubjectAltNames
		signInput.ExtKeyUsages = ext.ExtendedKeyUsages
	}

	teamCert.Cert, err = c.cert.SignCSR(signInput)
	if err != nil {
		return err
	}

	log.Debugf("signed %s %s certificate with serial %d", team.Name, role, serial)

	return c.cert.StoreTeamCert(team.Name, role, teamCert)
}

func (c *CertGen) createDirectories() error {
	for _, dir := range []string{
		c.Paths.BaseDir(),
		c.Paths.RoleDir(cert.RoleClient),
		c.Paths.RoleDir(cert.RoleServer),
	} {
		err := utils.CreateDirectory(dir, utils.PermissionsDirDefault)
		if err != nil {
			return fmt.Errorf("%w: %v", caerrors.ErrFilesystem, err)
		}
	}

	return nil
}
