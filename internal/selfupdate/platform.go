package selfupdate

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform is an operating system and CPU architecture pair in GOOS/GOARCH
// spelling.
type Platform struct {
	OS   string
	Arch string
}

// CurrentPlatform returns the platform this binary was built for.
func CurrentPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// Release archives spell platforms the way goreleaser's defaults do.
var (
	releaseOS = map[string]string{
		"darwin":  "Darwin",
		"linux":   "Linux",
		"windows": "Windows",
	}
	releaseArch = map[string]string{
		"amd64": "x86_64",
		"arm64": "arm64",
		"386":   "i386",
	}
)

func (p Platform) archiveExt() string {
	if p.OS == "windows" {
		return "zip"
	}
	return "tar.gz"
}

// executable is the file name of binary inside the archive.
func (p Platform) executable(binary string) string {
	if p.OS == "windows" {
		return binary + ".exe"
	}
	return binary
}

// AssetName renders the source's asset template for p. macOS ships a single
// universal archive, so its arch is always "all".
func (s Source) AssetName(p Platform) (string, error) {
	osName, ok := releaseOS[p.OS]
	if !ok {
		return "", fmt.Errorf("no releases for operating system %q", p.OS)
	}
	arch := "all"
	if p.OS != "darwin" {
		if arch, ok = releaseArch[p.Arch]; !ok {
			return "", fmt.Errorf("no %s releases for architecture %q", osName, p.Arch)
		}
	}

	r := strings.NewReplacer(
		"{binary}", s.Binary,
		"{os}", osName,
		"{arch}", arch,
		"{ext}", p.archiveExt(),
	)
	return r.Replace(s.AssetTemplate), nil
}
