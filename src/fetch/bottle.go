package fetch

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"matrun/src"
)

// Homebrew serves bottles as OCI blobs from ghcr.io. Anonymous pulls
// use the fixed token below (base64 of a single "A").
const (
	DefaultBottleRegistry = "https://ghcr.io/v2/homebrew/core"
	bottleToken           = "QQ=="
	bottleMediaType       = "application/vnd.oci.image.layer.v1.tar+gzip"
)

// bottleVersions pins the package builds the installer is known to
// work with.
var bottleVersions = map[string]string{
	"openssl": "3.4.1",
}

// bottleDigests addresses each bottle build by package, version,
// architecture and macOS major version.
var bottleDigests = map[string]map[string]map[src.Arch]map[int]string{
	"openssl": {
		"3.4.1": {
			src.Maca64: {
				15: "b20c7d9b63e7b320cba173c11710dee9888c77175a841031d7a245bb37355b98",
				14: "cdc22c278167801e3876a4560eac469cfa7f86c6958537d84d21bda3caf6972c",
				13: "51383da8b5d48f24b1d7a7f218cce1e309b6e299ae2dc5cfce5d69ff90c6e629",
			},
			src.Maci64: {
				15: "e8a8957f282b27371283b8c7a17e743c1c4e4e242ea7ee68bbe23f883da4948f",
				14: "36a85e5161befce49de6e03c5f710987bd5778a321151e011999e766249e6447",
				13: "523d64d10d1d44d6e39df3ced3539e2526357eab8573d2de41d4e116d7c629c8",
			},
		},
	},
}

// Bottle describes one Homebrew bottle fetch. Only Package is
// required; Version and Digest default to the pinned tables, Variant
// is the registry path suffix for versioned formulas ("3" yields
// openssl/3), and Registry exists so tests can point the fetch at a
// local server.
type Bottle struct {
	Package  string
	Variant  string
	Version  string
	Digest   string
	Registry string
}

// BottleVersion returns the pinned build version for a package, or ""
// when the package is unknown.
func BottleVersion(pkg string) string {
	return bottleVersions[pkg]
}

// PickDigest chooses the bottle digest published for a macOS major
// version. When the exact major has no published build it falls back
// to the nearest one below, or the nearest above if none exists
// below.
func PickDigest(pkg, version string, arch src.Arch, macMajor int) (string, error) {
	digests := bottleDigests[pkg][version][arch]
	if len(digests) == 0 {
		return "", fmt.Errorf("no %s %s bottle digests for %s", pkg, version, arch)
	}
	if d, ok := digests[macMajor]; ok {
		return d, nil
	}
	below, above := -1, -1
	for major := range digests {
		if major < macMajor && major > below {
			below = major
		}
		if major > macMajor && (above == -1 || major < above) {
			above = major
		}
	}
	if below != -1 {
		return digests[below], nil
	}
	return digests[above], nil
}

// DownloadBottle fetches a Homebrew bottle blob into out (a directory
// or a file path) and returns the final path. The blob endpoint wants
// the anonymous bearer token and the OCI layer media type; without
// the Accept header the registry answers with a manifest instead of
// the tarball.
func DownloadBottle(b Bottle, arch src.Arch, macMajor int, out string, retries int) (string, error) {
	version := b.Version
	if version == "" {
		version = bottleVersions[b.Package]
		if version == "" {
			return "", fmt.Errorf("no pinned version for package %q", b.Package)
		}
	}

	digest := b.Digest
	if digest == "" {
		var err error
		digest, err = PickDigest(b.Package, version, arch, macMajor)
		if err != nil {
			return "", err
		}
	}

	registry := b.Registry
	if registry == "" {
		registry = DefaultBottleRegistry
	}
	pkgPath := b.Package
	if b.Variant != "" {
		pkgPath += "/" + b.Variant
	}
	rawurl := fmt.Sprintf("%s/%s/blobs/sha256:%s", registry, pkgPath, digest)

	if info, err := os.Stat(out); err == nil && info.IsDir() {
		out = filepath.Join(out, fmt.Sprintf("%s-%s.bottle.tar.gz", b.Package, version))
	}

	req, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	req.Header.Set("Authorization", "Bearer "+bottleToken)
	req.Header.Set("Accept", bottleMediaType)

	return download(req, out, retries)
}
