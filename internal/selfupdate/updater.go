package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrDevBuild is returned for builds without a release version.
	ErrDevBuild = errors.New("cannot update a development build")
	// ErrAlreadyLatest means the running build matches the newest release.
	ErrAlreadyLatest = errors.New("already running the latest version")
	// ErrChecksum means a downloaded archive or the installed file did not
	// match its published digest.
	ErrChecksum = errors.New("checksum verification failed")
)

// checksumsAsset is the goreleaser digest manifest published with each release.
const checksumsAsset = "checksums.txt"

// Stage names one step of an update.
type Stage string

const (
	StageResolve  Stage = "resolve"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageExtract  Stage = "extract"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateInput selects the release to install. An empty TargetVersion means
// the latest release, which must be newer than CurrentVersion.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported once per stage.
type UpdateProgress struct {
	Stage   Stage
	Message string
}

// Update downloads the release archive for this platform, checks it against
// the release's checksum manifest and swaps it in for the running executable.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if progress == nil {
		progress = func(UpdateProgress) {}
	}
	if !semverish(input.CurrentVersion) {
		return ErrDevBuild
	}

	progress(UpdateProgress{Stage: StageResolve, Message: "Looking up release..."})
	rel, err := c.target(ctx, input)
	if err != nil {
		return err
	}

	name, err := c.platform.assetName()
	if err != nil {
		return err
	}
	archiveAsset, ok := rel.asset(name)
	if !ok {
		return fmt.Errorf("release %s has no %s asset", rel.TagName, name)
	}
	sumsAsset, ok := rel.asset(checksumsAsset)
	if !ok {
		return fmt.Errorf("release %s has no %s", rel.TagName, checksumsAsset)
	}

	progress(UpdateProgress{Stage: StageDownload, Message: fmt.Sprintf("Downloading %s...", name)})
	archive, err := c.get(ctx, archiveAsset.URL, "application/octet-stream")
	if err != nil {
		return fmt.Errorf("download %s: %w", name, err)
	}

	progress(UpdateProgress{Stage: StageVerify, Message: "Verifying checksum..."})
	manifest, err := c.get(ctx, sumsAsset.URL, "")
	if err != nil {
		return fmt.Errorf("download %s: %w", checksumsAsset, err)
	}
	want, err := lookupDigest(manifest, name)
	if err != nil {
		return err
	}
	if got := sha256.Sum256(archive); !bytes.Equal(got[:], want) {
		return fmt.Errorf("%w: %s", ErrChecksum, name)
	}

	progress(UpdateProgress{Stage: StageExtract, Message: "Unpacking..."})
	binary, err := c.platform.unpack(archive)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", name, err)
	}

	progress(UpdateProgress{Stage: StageInstall, Message: "Installing..."})
	exe, err := c.execPath()
	if err != nil {
		return fmt.Errorf("locate running executable: %w", err)
	}
	if err := install(exe, binary); err != nil {
		return err
	}

	progress(UpdateProgress{Stage: StageDone, Message: fmt.Sprintf("alevel is now %s", rel.TagName)})
	return nil
}

// target resolves which release Update should install.
func (c *Checker) target(ctx context.Context, input *UpdateInput) (*release, error) {
	if input.TargetVersion != "" {
		return c.release(ctx, canonicalVersion(input.TargetVersion))
	}

	rel, err := c.release(ctx, "")
	if err != nil {
		return nil, err
	}
	res, err := compareRelease(input.CurrentVersion, rel)
	if err != nil {
		return nil, err
	}
	if !res.UpdateAvailable {
		return nil, ErrAlreadyLatest
	}
	return rel, nil
}

// platform is the GOOS/GOARCH pair a release asset is chosen for.
type platform struct {
	goos   string
	goarch string
}

// releaseArch maps GOARCH onto the names used in archive file names.
var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// assetName follows the goreleaser naming: darwin ships one universal
// archive, windows ships zips.
func (p platform) assetName() (string, error) {
	switch p.goos {
	case "darwin":
		return BinaryName + "_Darwin_all.tar.gz", nil
	case "linux", "windows":
	default:
		return "", fmt.Errorf("unsupported operating system: %s", p.goos)
	}

	arch, ok := releaseArch[p.goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", p.goarch)
	}
	if p.goos == "windows" {
		return fmt.Sprintf("%s_Windows_%s.zip", BinaryName, arch), nil
	}
	return fmt.Sprintf("%s_Linux_%s.tar.gz", BinaryName, arch), nil
}

func (p platform) binaryName() string {
	if p.goos == "windows" {
		return BinaryName + ".exe"
	}
	return BinaryName
}

// unpack pulls the executable out of a release archive. Entries are matched
// on their base name so archives with a top-level directory still work.
func (p platform) unpack(archive []byte) ([]byte, error) {
	want := p.binaryName()
	if p.goos == "windows" {
		return fromZip(archive, want)
	}
	return fromTarGz(archive, want)
}

func fromTarGz(archive []byte, want string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, err
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not found in archive", want)
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == want {
			return io.ReadAll(tr)
		}
	}
}

func fromZip(archive []byte, want string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || path.Base(f.Name) != want {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		return data, err
	}
	return nil, fmt.Errorf("%s not found in archive", want)
}

// lookupDigest finds name in a sha256sum-style manifest. Both the text
// ("hash  name") and binary ("hash *name") forms are accepted.
func lookupDigest(manifest []byte, name string) ([]byte, error) {
	sc := bufio.NewScanner(bytes.NewReader(manifest))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 || strings.TrimPrefix(fields[1], "*") != name {
			continue
		}
		sum, err := hex.DecodeString(fields[0])
		if err != nil || len(sum) != sha256.Size {
			return nil, fmt.Errorf("malformed digest for %s", name)
		}
		return sum, nil
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("no digest for %s in %s", name, checksumsAsset)
}

// install writes binary next to exe and renames it into place, so a failed
// write never leaves a truncated executable behind. The file is read back
// and hashed before the rename.
func install(exe string, binary []byte) error {
	mode := os.FileMode(0o755)
	if info, err := os.Stat(exe); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(exe), "."+filepath.Base(exe)+".new-*")
	if err != nil {
		return fmt.Errorf("stage update: %w", err)
	}
	staged := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(staged)
		}
	}()

	if _, err := tmp.Write(binary); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("stage update: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stage update: %w", err)
	}
	if err := os.Chmod(staged, mode); err != nil {
		return fmt.Errorf("stage update: %w", err)
	}

	written, err := os.ReadFile(staged)
	if err != nil {
		return fmt.Errorf("stage update: %w", err)
	}
	if sha256.Sum256(written) != sha256.Sum256(binary) {
		return fmt.Errorf("%w: staged file differs from download", ErrChecksum)
	}

	if err := os.Rename(staged, exe); err != nil {
		return fmt.Errorf("replace %s: %w", exe, err)
	}
	committed = true
	return nil
}
