package selfupdate

import (
	"context"
	"fmt"
)

// Stage names a step of Update, in the order they run.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// Progress is reported once per stage.
type Progress struct {
	Stage   Stage
	Message string
}

// Update installs release tag over the running binary, or the newest release
// when tag is empty. It returns the tag installed.
func (c *Checker) Update(ctx context.Context, current, tag string, progress func(Progress)) (string, error) {
	if current == DevVersion {
		return "", ErrDevBuild
	}
	if progress == nil {
		progress = func(Progress) {}
	}

	if tag == "" {
		progress(Progress{Stage: StageResolve, Message: fmt.Sprintf("Looking up the latest %s release...", c.src.Repo)})
		res, err := c.Check(ctx, current)
		if err != nil {
			return "", err
		}
		if !res.UpdateAvailable {
			return "", ErrAlreadyLatest
		}
		tag = res.Latest.Tag
	}

	asset, err := c.src.AssetName(c.platform)
	if err != nil {
		return "", err
	}

	progress(Progress{Stage: StageDownload, Message: fmt.Sprintf("Downloading %s %s...", asset, tag)})
	archive, err := c.fetch(ctx, c.downloadURL(tag, asset))
	if err != nil {
		return "", fmt.Errorf("download %s: %w", asset, err)
	}
	listing, err := c.fetch(ctx, c.downloadURL(tag, "checksums.txt"))
	if err != nil {
		return "", fmt.Errorf("download checksums: %w", err)
	}

	progress(Progress{Stage: StageVerify, Message: "Verifying checksum..."})
	want, err := checksumFor(listing, asset)
	if err != nil {
		return "", err
	}
	if err := verify(archive, want); err != nil {
		return "", err
	}
	binary, err := unpack(archive, asset, c.platform.executable(c.src.Binary))
	if err != nil {
		return "", fmt.Errorf("unpack %s: %w", asset, err)
	}

	progress(Progress{Stage: StageInstall, Message: "Installing..."})
	target, err := c.execPath()
	if err != nil {
		return "", fmt.Errorf("locate running binary: %w", err)
	}
	if err := install(target, binary); err != nil {
		return "", err
	}

	progress(Progress{Stage: StageDone, Message: fmt.Sprintf("Updated to %s", tag)})
	return tag, nil
}
