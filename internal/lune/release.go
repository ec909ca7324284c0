package lune

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/juju/errors"

	"github.com/rblx2rojo/rblx2rojo/internal/model"
)

// Release feed constants
const (
	LatestReleaseURL  = "https://api.github.com/repos/lune-org/lune/releases/latest"
	GitHubAcceptValue = "application/vnd.github+json"
	UserAgent         = "rblx2rojo"

	// maxReleaseBody caps how much of the API response is read
	maxReleaseBody = 4 << 20
)

// ReleaseSource returns the most recent runtime release.
type ReleaseSource interface {
	Latest(ctx context.Context) (*model.Release, error)
}

// ReleaseClient queries the GitHub latest-release endpoint
type ReleaseClient struct {
	url    string
	client *http.Client
}

// NewReleaseClient creates a client for url. An empty url uses the Lune
// repository and a nil client uses http.DefaultClient.
func NewReleaseClient(url string, client *http.Client) *ReleaseClient {
	if url == "" {
		url = LatestReleaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &ReleaseClient{url: url, client: client}
}

// URL returns the endpoint the client queries
func (c *ReleaseClient) URL() string {
	return c.url
}

// Latest fetches and decodes the latest release
func (c *ReleaseClient) Latest(ctx context.Context) (*model.Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, errors.Annotate(err, "building release request")
	}
	req.Header.Set("Accept", GitHubAcceptValue)
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Annotate(err, "querying latest Lune release")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxReleaseBody))
		return nil, errors.Errorf("querying latest Lune release: unexpected status %s", resp.Status)
	}

	var release model.Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReleaseBody)).Decode(&release); err != nil {
		return nil, errors.Annotate(err, "decoding latest Lune release")
	}
	if release.Version() == "" {
		return nil, errors.NotValidf("release without tag name")
	}

	return &release, nil
}

// ResolveAsset picks the asset for target out of release
func ResolveAsset(release *model.Release, target Target) (model.Asset, error) {
	name, err := AssetName(target, release.Version())
	if err != nil {
		return model.Asset{}, err
	}
	return release.FindAsset(name)
}
