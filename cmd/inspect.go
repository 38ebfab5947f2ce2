package cmd

import (
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/miniconomy2025/ca/cert"
	"github.com/miniconomy2025/ca/types"
	"github.com/miniconomy2025/ca/utils"
)

var inspectFormat string

func init() {
	RootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "table", "output format. One of [table, json]")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "inspect issued team certificates and bundles",
	RunE:  inspectFn,
}

type certDetails struct {
	Team       string `json:"team"`
	Role       string `json:"role"`
	Serial     string `json:"serial"`
	CommonName string `json:"common_name"`
	NotAfter   string `json:"not_after"`
	Bundle     string `json:"bundle,omitempty"`
}

func inspectFn(_ *cobra.Command, _ []string) error {
	if inspectFormat != "table" && inspectFormat != "json" {
		return fmt.Errorf("output format %q is not supported, use one of [table, json]", inspectFormat)
	}

	cfg, err := types.LoadConfig(configFile)
	if err != nil {
		return err
	}

	paths := types.NewCertPaths(cfg.CertDir)

	if !utils.FileExists(paths.RootCACertAbsFilename()) {
		return fmt.Errorf("no root CA certificate found at %s, run generate first", paths.RootCACertAbsFilename())
	}

	var details []certDetails
	for _, team := range cfg.Teams {
		for _, role := range []cert.Role{cert.RoleClient, cert.RoleServer} {
			d, err := teamCertDetails(paths, team, role)
			if err != nil {
				log.Debugf("skipping %s %s certificate: %v", team.Name, role, err)
				continue
			}
			details = append(details, *d)
		}
	}

	if inspectFormat == "json" {
		b, err := json.MarshalIndent(details, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal certificate details: %v", err)
		}
		fmt.Println(string(b))
		return nil
	}

	printCertTable(details)

	return nil
}

func teamCertDetails(paths *types.CertPaths, team types.Team, role cert.Role) (*certDetails, error) {
	b, err := os.ReadFile(paths.TeamCertAbsFilename(team.Name, role))
	if err != nil {
		return nil, err
	}

	pb, _ := pem.Decode(b)
	if pb == nil {
		return nil, fmt.Errorf("no PEM block found")
	}

	parsed, err := x509.ParseCertificate(pb.Bytes)
	if err != nil {
		return nil, err
	}

	d := &certDetails{
		Team:       team.Name,
		Role:       string(role),
		Serial:     parsed.SerialNumber.String(),
		CommonName: parsed.Subject.CommonName,
		NotAfter:   parsed.NotAfter.Format("2006-01-02"),
	}

	// the bundle is per team, report it on the client row only
	if role == cert.RoleClient {
		if fi, err := os.Stat(paths.BundleAbsFilename(team.Name)); err == nil {
			d.Bundle = fmt.Sprintf("%s (%s)", paths.BundleAbsFilename(team.Name), humanize.Bytes(uint64(fi.Size())))
		}
	}

	return d, nil
}

func printCertTable(details []certDetails) {
	tabData := make([][]string, 0, len(details))
	for _, d := range details {
		tabData = append(tabData, []string{d.Team, d.Role, d.Serial, d.CommonName, d.NotAfter, d.Bundle})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Team", "Role", "Serial", "Common Name", "Not After", "Bundle"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAutoMergeCellsByColumnIndex([]int{0})
	table.AppendBulk(tabData)
	table.Render()
}
