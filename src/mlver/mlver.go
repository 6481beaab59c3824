// Package mlver converts between the two MATLAB version naming
// schemes: release names like "R2023b" and dot versions like "9.13".
// Starting with R2023b the schemes coincide (23.2 is R2023b); older
// releases go through a fixed table. Everything here is pure string
// work, no I/O.
package mlver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnresolvedVersion reports a version string that matches none of
// the accepted forms.
var ErrUnresolvedVersion = errors.New("unresolved version")

// Aliases resolved by the locator against an installation prefix or
// the live catalog. Parse tags them, it does not resolve them.
const (
	Latest          = "latest"
	LatestInstalled = "latest_installed"
)

// Kind discriminates the accepted version input forms.
type Kind int

const (
	KindRelease Kind = iota
	KindDotVersion
	KindAlias
)

// Version is the result of parsing a user-supplied version string.
// Release is set for both the release and dot-version kinds, so most
// callers never look at the input form again.
type Version struct {
	Kind    Kind
	Release string
	Alias   string
}

// letters maps a half-year index to its release letter, 1-based:
// 1 is "a", 2 is "b". MathWorks ships two releases a year, so only
// the first two are ever seen in the wild.
const letters = "abcdefghijklmnopqrstuvwxy"

var releaseForm = regexp.MustCompile(`^[Rr]20\d{2}[ab](SP\d+)?$`)

// versionToRelease maps pre-unification dot versions to release
// names, newest first. R2023b and later never appear here because
// their dot version is the release ("23.2" === "R2023b").
var versionToRelease = []struct {
	Dot     string
	Release string
}{
	{"9.14", "R2023a"},
	{"9.13", "R2022b"},
	{"9.12", "R2022a"},
	{"9.11", "R2021b"},
	{"9.10", "R2021a"},
	{"9.9", "R2020b"},
	{"9.8", "R2020a"},
	{"9.7", "R2019b"},
	{"9.6", "R2019a"},
	{"9.5", "R2018b"},
	{"9.4", "R2018a"},
	{"9.3", "R2017b"},
	{"9.2", "R2017a"},
	{"9.1", "R2016b"},
	{"9.0.1", "R2016a"},
	{"9.0", "R2015b"},
	{"8.5.1", "R2015aSP1"},
	{"8.5", "R2015a"},
	{"8.4", "R2014b"},
	{"8.3", "R2014a"},
	{"8.2", "R2013b"},
	{"8.1", "R2013a"},
	{"8.0", "R2012b"},
	{"7.17", "R2012a"},
}

// Parse classifies a version string as a release name, a dot version
// or an alias, in one validating pass. Dot versions are converted to
// their release eagerly so callers only ever re-parse aliases.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty version", ErrUnresolvedVersion)
	}
	if low := strings.ToLower(s); low == Latest || low == LatestInstalled {
		return Version{Kind: KindAlias, Alias: low}, nil
	}
	if releaseForm.MatchString(s) {
		return Version{Kind: KindRelease, Release: normalizeRelease(s)}, nil
	}
	rel, err := dotToRelease(s)
	if err != nil {
		return Version{}, err
	}
	return Version{Kind: KindDotVersion, Release: rel}, nil
}

// ToRelease converts a release name or dot version to the canonical
// release name. Aliases are rejected here: resolving them needs the
// filesystem or the network, which belongs to the locator.
func ToRelease(s string) (string, error) {
	v, err := Parse(s)
	if err != nil {
		return "", err
	}
	if v.Kind == KindAlias {
		return "", fmt.Errorf("%w: alias %q must be resolved first", ErrUnresolvedVersion, v.Alias)
	}
	return v.Release, nil
}

// ToDotVersion converts a release name to its dot version. Inputs
// already present in the conversion table, in either column, map to
// the table's dot version; that is what keeps service-pack releases
// like R2015aSP1 on their own bucket. Non release-shaped input is
// assumed to already be a dot version and returned unchanged.
func ToDotVersion(s string) (string, error) {
	for _, e := range versionToRelease {
		if s == e.Dot || s == e.Release {
			return e.Dot, nil
		}
	}
	if !releaseForm.MatchString(s) {
		return s, nil
	}
	rel := normalizeRelease(s)
	idx := strings.IndexByte(letters, rel[5])
	if idx < 0 {
		return "", fmt.Errorf("%w: release letter %q", ErrUnresolvedVersion, rel[5])
	}
	return fmt.Sprintf("%s.%d", rel[3:5], idx+1), nil
}

// Compare orders two release names. Within the R20xx era the
// year+letter(+service pack) scheme sorts lexically, which covers
// every release the catalog knows about.
func Compare(a, b string) int {
	return strings.Compare(a, b)
}

// IsRelease reports whether s is a well-formed release name.
func IsRelease(s string) bool {
	return releaseForm.MatchString(s)
}

func normalizeRelease(s string) string {
	return "R" + s[1:]
}

// dotToRelease applies the table, then the unified scheme: the minor
// number is a 1-based half-year index ("23.2" is the second release
// of 2023, R2023b). Trailing segments beyond major.minor are ignored
// when the full string missed the table.
func dotToRelease(s string) (string, error) {
	for _, e := range versionToRelease {
		if e.Dot == s {
			return e.Release, nil
		}
	}
	year, rest, ok := strings.Cut(s, ".")
	if !ok {
		return "", fmt.Errorf("%w: %q is not a release, dot version or alias", ErrUnresolvedVersion, s)
	}
	half, _, _ := strings.Cut(rest, ".")
	if _, err := strconv.Atoi(year); err != nil {
		return "", fmt.Errorf("%w: %q has a non-numeric year", ErrUnresolvedVersion, s)
	}
	h, err := strconv.Atoi(half)
	if err != nil {
		return "", fmt.Errorf("%w: %q has a non-numeric half-year index", ErrUnresolvedVersion, s)
	}
	if h < 1 || h > len(letters) {
		return "", fmt.Errorf("%w: half-year index %d out of range", ErrUnresolvedVersion, h)
	}
	return "R20" + year + string(letters[h-1]), nil
}
