// Package codec implements the VitaBoy character-data file formats: the
// text and binary character record (skeletons, suits, skills), the mesh
// record, the delta-compressed keyframe stream, and the minimal bitmap
// reader used to turn skin textures into pixel buffers.
package codec

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Locator knows how to search disk based locations for VitaBoy asset
// files. It uses a convention for locating file types in directories
// where the defaults can be overridden or added to using Dir.
type Locator interface {
	Dir(ext, dir string) Locator // Map a file extension to a directory.
	Dispose()                    // Properly terminate asset loading.

	// GetResource allows applications to include and find custom resources.
	//   name: specific resource identifier, like a file or full file path.
	GetResource(name string) (file io.ReadCloser, err error)
}

// NewLocator returns the default asset locator. The default Locator looks
// directly to disk for development builds and for a zip file for
// production builds. The default asset locator expects all locations are
// directories relative to the application location.
// The default Locator maps the following file extensions to directories:
//
//	CF, CFB : "characters" (text and binary character files)
//	CFM, CFMB : "meshes" (text and binary mesh files)
//	CFP     : "animations" (compressed keyframe streams)
//	BMP     : "images"
func NewLocator() Locator { return newLocator() }

// ===========================================================================
// locator implements Locator.

// locator resolves a resource name to a directory-qualified path and reads
// it either from an attached zip archive (production) or directly off
// disk (development, where no archive is ever found). When a zip archive
// is attached, its entries are indexed once by name so GetResource can
// look each request up directly instead of rescanning the archive's file
// list every call.
type locator struct {
	index map[string]*zip.File // archive entries by path, nil if unzipped.
	zip   *zip.ReadCloser
	dirs  map[string]string // extension -> directory.
}

func newLocator() *locator {
	l := &locator{
		dirs: map[string]string{
			"CF":   "characters",
			"CFB":  "characters",
			"CFM":  "meshes",
			"CFMB": "meshes",
			"CFP":  "animations",
			"BMP":  "images",
		},
	}
	if archive := openPackagedAssets(); archive != nil {
		l.zip = archive
		l.index = make(map[string]*zip.File, len(archive.File))
		for _, f := range archive.File {
			l.index[f.Name] = f
		}
	}
	return l
}

// openPackagedAssets probes the conventional locations a VitaBoy asset
// archive may have been bundled at alongside the running executable: an
// OSX app bundle's Resources folder, a zip appended directly to a Windows
// exe, or a Windows store package's Assets folder. Returns nil if none of
// those locations holds a readable zip (a debug build reading loose files
// from disk).
func openPackagedAssets() *zip.ReadCloser {
	exe := os.Args[0]
	if archive, err := zip.OpenReader(path.Join(path.Dir(exe), "../Resources/assets.zip")); err == nil {
		return archive // OSX packaged application.
	}
	if archive, err := zip.OpenReader(exe); err == nil {
		return archive // windows exe with zip appended.
	}
	// Windows store apps run from an installed, read-only location; use
	// the absolute executable directory rather than a relative path.
	exeDir, err := filepath.Abs(filepath.Dir(exe))
	if err != nil {
		return nil
	}
	if archive, err := zip.OpenReader(path.Join(exeDir, "Assets/assets.zip")); err == nil {
		return archive
	}
	return nil
}

// GetResource locates the named resource. This is expected to be used
// either in production where the resources have been included with the
// application, or development where the resources are on disk in the
// local directory.
//
// The caller is responsible for closing the returned file.
func (l *locator) GetResource(name string) (file io.ReadCloser, err error) {
	filePath := strings.TrimSpace(path.Join(l.dirFor(name), name))
	if l.index != nil {
		entry, found := l.index[filePath]
		if !found {
			return nil, fmt.Errorf("codec: %s not found in packaged assets", filePath)
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("codec: opening packaged resource %s: %w", filePath, err)
		}
		return rc, nil
	}
	return os.Open(filePath)
}

func (l *locator) dirFor(name string) string {
	ext := ""
	if sep := strings.LastIndexAny(name, "."); sep != -1 {
		ext = strings.ToUpper(name[sep+1:])
	}
	return l.dirs[ext]
}

// Dir maps a file extension to a directory. Having a convention means
// that only the file name needs to be specified.
func (l *locator) Dir(ext, dir string) Locator {
	l.dirs[strings.ToUpper(ext)] = dir
	return l
}

// Dispose properly terminates the loader. This is only needed when the
// loader has been reading resources from a zip file.
func (l *locator) Dispose() {
	if l.zip != nil {
		l.zip.Close()
	}
}
