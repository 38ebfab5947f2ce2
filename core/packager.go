package core

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/miniconomy2025/ca/cert"
	caerrors "github.com/miniconomy2025/ca/errors"
	"github.com/miniconomy2025/ca/types"
	"github.com/miniconomy2025/ca/utils"
)

var readmeTemplate = template.Must(template.New("readme").Parse(`# mTLS Deployment Certificate Package

This archive contains all credentials and verification files required to run your mTLS-enabled service:

- ` + "`{{ .Name }}-client.key`" + ` :: Your private client key
- ` + "`{{ .Name }}-client.crt`" + ` :: Your signed client certificate
- ` + "`{{ .Name }}-server.key`" + ` :: Your private server key
- ` + "`{{ .Name }}-server.crt`" + ` :: Your signed server certificate
- ` + "`root-ca.crt`" + ` :: Shared root CA for validating other teams' certificates
`))

const readmeFileName = "README.txt"

// PackageBundles assembles one archive per team with the team's keys and
// certificates, the shared root CA certificate and a generated README.
// Packaging runs only after all certificates exist; the first failure aborts
// the remaining teams and leaves the partial archive on disk.
func (c *CertGen) PackageBundles() error {
	err := utils.CreateDirectory(c.Paths.BundleDir(), utils.PermissionsDirDefault)
	if err != nil {
		return fmt.Errorf("%w: %v", caerrors.ErrFilesystem, err)
	}

	for _, team := range c.Config.Teams {
		err = c.packageTeamBundle(team)
		if err != nil {
			return err
		}
	}

	log.Infof("all team bundles packaged under %s", c.Paths.BundleDir())

	return nil
}

func (c *CertGen) packageTeamBundle(team types.Team) error {
	bundlePath := c.Paths.BundleAbsFilename(team.Name)

	f, err := os.Create(bundlePath)
	if err != nil {
		return fmt.Errorf("%w: %v", caerrors.ErrPackaging, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	entries := []struct {
		src     string
		arcname string
	}{
		{c.Paths.TeamKeyAbsFilename(team.Name, cert.RoleClient), team.Name + "-client" + types.KeyFileSuffix},
		{c.Paths.TeamCertAbsFilename(team.Name, cert.RoleClient), team.Name + "-client" + types.CertFileSuffix},
		{c.Paths.TeamKeyAbsFilename(team.Name, cert.RoleServer), team.Name + "-server" + types.KeyFileSuffix},
		{c.Paths.TeamCertAbsFilename(team.Name, cert.RoleServer), team.Name + "-server" + types.CertFileSuffix},
		{c.Paths.RootCACertAbsFilename(), types.RootCACertFileName},
	}

	for _, e := range entries {
		err = addBundleEntry(zw, e.src, e.arcname)
		if err != nil {
			return fmt.Errorf("%w: bundle %s: %v", caerrors.ErrPackaging, team.Name, err)
		}
	}

	err = addBundleReadme(zw, team)
	if err != nil {
		return fmt.Errorf("%w: bundle %s: %v", caerrors.ErrPackaging, team.Name, err)
	}

	err = zw.Close()
	if err != nil {
		return fmt.Errorf("%w: bundle %s: %v", caerrors.ErrPackaging, team.Name, err)
	}

	fi, err := os.Stat(bundlePath)
	if err != nil {
		return fmt.Errorf("%w: %v", caerrors.ErrPackaging, err)
	}

	log.Infof("created bundle %s (%s)", bundlePath, humanize.Bytes(uint64(fi.Size())))

	return nil
}

func addBundleEntry(zw *zip.Writer, src, arcname string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.Create(arcname)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, in)

	return err
}

func addBundleReadme(zw *zip.Writer, team types.Team) error {
	buf := new(bytes.Buffer)

	err := readmeTemplate.Execute(buf, team)
	if err != nil {
		return err
	}

	w, err := zw.Create(readmeFileName)
	if err != nil {
		return err
	}

	_, err = w.Write(buf.Bytes())

	return err
}
