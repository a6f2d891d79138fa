package verify

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// pkgInfo is the subset of .PKGINFO fields a verification compares.
type pkgInfo struct {
	Name    string
	Version string
	Arch    string
}

// readPkgInfo extracts and parses the .PKGINFO member of a package
// archive, picking the decompressor from the filename suffix.
func readPkgInfo(path string) (pkgInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return pkgInfo{}, err
	}
	defer f.Close()

	var tarReader *tar.Reader

	switch {
	case strings.HasSuffix(path, ".pkg.tar.zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return pkgInfo{}, err
		}
		defer zr.Close()
		tarReader = tar.NewReader(zr)
	case strings.HasSuffix(path, ".pkg.tar.xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			return pkgInfo{}, err
		}
		tarReader = tar.NewReader(xr)
	case strings.HasSuffix(path, ".pkg.tar.gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return pkgInfo{}, err
		}
		defer gr.Close()
		tarReader = tar.NewReader(gr)
	case strings.HasSuffix(path, ".pkg.tar"):
		tarReader = tar.NewReader(f)
	default:
		return pkgInfo{}, fmt.Errorf("unsupported archive format: %s", filepath.Base(path))
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pkgInfo{}, err
		}

		if header.Name == ".PKGINFO" {
			data, err := io.ReadAll(tarReader)
			if err != nil {
				return pkgInfo{}, err
			}
			return parsePkgInfo(data)
		}
	}

	return pkgInfo{}, fmt.Errorf(".PKGINFO not found in archive")
}

// parsePkgInfo reads the "key = value" lines of a .PKGINFO file.
func parsePkgInfo(data []byte) (pkgInfo, error) {
	var info pkgInfo

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "pkgname":
			info.Name = value
		case "pkgver":
			info.Version = value
		case "arch":
			info.Arch = value
		}
	}
	if err := scanner.Err(); err != nil {
		return pkgInfo{}, err
	}

	if info.Name == "" || info.Version == "" {
		return pkgInfo{}, fmt.Errorf(".PKGINFO is missing pkgname or pkgver")
	}
	return info, nil
}
