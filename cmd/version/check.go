package version

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gover "github.com/hashicorp/go-version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// checkCmd defines a version check command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if a new version is available",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		latest, err := getLatestVersion(ctx)
		if err != nil {
			log.Debugf("error occurred during latest version fetch: %v", err)
			fmt.Println("Could not determine the latest release version")
			return nil
		}

		current, err := gover.NewVersion(Version)
		if err != nil {
			// development builds carry no comparable version
			fmt.Printf("The latest available release is %s\n", latest)
			return nil
		}

		if latest.GreaterThan(current) {
			fmt.Printf("A newer version (%s) is available, see %s/releases\n", latest, repoUrl)
		} else {
			fmt.Println("You are on the latest version")
		}

		return nil
	},
}

// getLatestVersion fetches the latest release version from the GitHub
// releases redirect.
func getLatestVersion(ctx context.Context) (*gover.Version, error) {
	client := &http.Client{
		// don't follow redirects
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fmt.Sprintf("%s/releases/latest", repoUrl), nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	loc := resp.Header.Get("Location")
	split := strings.Split(loc, "releases/tag/")
	if len(split) != 2 {
		return nil, fmt.Errorf("can't parse version from redirect %q", loc)
	}

	return gover.NewVersion(split[1])
}
