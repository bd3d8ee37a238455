package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vitamoo/vitaboy/math/lin"
)

// Loader fetches VitaBoy asset files by name and parses them, hiding
// whether a given file is text or binary behind its extension.
type Loader interface {
	CharacterFile(name string) (*CharacterFile, error)
	Mesh(name string) (*MeshDescription, error)
	Keyframes(name string, numTranslations, numRotations int) ([]*lin.V3, []*lin.Q, error)
	Bitmap(name string) (*Bitmap, error)
	Dispose()
}

// NewLoader returns a Loader backed by the default Locator.
func NewLoader() Loader { return &loader{locator: newLocator()} }

type loader struct{ locator *locator }

func (l *loader) Dispose() { l.locator.Dispose() }

func (l *loader) readAll(name string) ([]byte, error) {
	f, err := l.locator.GetResource(name)
	if err != nil {
		return nil, fmt.Errorf("codec: opening %s: %w", name, err)
	}
	defer f.Close()
	buf, err := io.ReadAll(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("codec: reading %s: %w", name, err)
	}
	return buf, nil
}

// CharacterFile loads a .cf (text) or .cfb (binary) character file.
func (l *loader) CharacterFile(name string) (*CharacterFile, error) {
	buf, err := l.readAll(name)
	if err != nil {
		return nil, err
	}
	if isBinaryExt(name, ".cfb") {
		cf, err := ParseCharacterBinary(buf)
		if err != nil {
			return nil, fmt.Errorf("codec: parsing %s: %w", name, err)
		}
		return cf, nil
	}
	return ParseCharacterText(string(buf)), nil
}

// Mesh loads a .cfm (text) or .cfmb (binary) mesh file.
func (l *loader) Mesh(name string) (*MeshDescription, error) {
	buf, err := l.readAll(name)
	if err != nil {
		return nil, err
	}
	if isBinaryExt(name, ".cfmb") {
		m, err := ParseMeshBinary(buf)
		if err != nil {
			return nil, fmt.Errorf("codec: parsing %s: %w", name, err)
		}
		return m, nil
	}
	return ParseMeshText(string(buf)), nil
}

// Keyframes loads a .cfp compressed keyframe stream.
func (l *loader) Keyframes(name string, numTranslations, numRotations int) ([]*lin.V3, []*lin.Q, error) {
	buf, err := l.readAll(name)
	if err != nil {
		return nil, nil, err
	}
	translations, rotations, err := ParseKeyframes(buf, numTranslations, numRotations)
	if err != nil {
		return nil, nil, fmt.Errorf("codec: parsing %s: %w", name, err)
	}
	return translations, rotations, nil
}

// Bitmap loads a .bmp skin texture.
func (l *loader) Bitmap(name string) (*Bitmap, error) {
	buf, err := l.readAll(name)
	if err != nil {
		return nil, err
	}
	bmp, err := DecodeBMP(buf)
	if err != nil {
		return nil, fmt.Errorf("codec: decoding %s: %w", name, err)
	}
	return bmp, nil
}

func isBinaryExt(name, ext string) bool {
	n := len(name)
	e := len(ext)
	return n >= e && name[n-e:] == ext
}
