package project

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// PackageID is the NuGet package supplying the package creation targets.
	PackageID = "Packaging.Targets"

	// PropsFilename is the shared build configuration file applied to every
	// project below the directory that contains it.
	PropsFilename = "Directory.Build.props"

	// propsFileMode is used when creating the shared build configuration file.
	propsFileMode os.FileMode = 0o644
)

// errNoProjectElement indicates the props file has no closing Project tag
// to insert the dependency declaration before.
var errNoProjectElement = errors.New("no closing </Project> element")

// referenceTemplate is the ItemGroup appended when the dependency is missing.
const referenceTemplate = `  <ItemGroup>
    <PackageReference Include=%q Version=%q PrivateAssets="All" />
  </ItemGroup>
`

// EnsurePackageReference makes sure the props file at path declares a
// PackageReference to packageID, creating the file when absent and
// appending the declaration when missing. Existing unrelated content is
// left untouched, so re-running is a no-op. It reports whether the file
// was modified.
func EnsurePackageReference(path, packageID, pinVersion string) (bool, error) {
	reference := fmt.Sprintf(referenceTemplate, packageID, pinVersion)

	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		document := "<Project>\n" + reference + "</Project>\n"
		if err := os.WriteFile(path, []byte(document), propsFileMode); err != nil {
			return false, fmt.Errorf("write %s: %w", path, err)
		}

		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	declared, err := hasPackageReference(contents, packageID)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}

	if declared {
		return false, nil
	}

	updated, err := insertBeforeClosingProject(contents, reference)
	if err != nil {
		return false, fmt.Errorf("update %s: %w", path, err)
	}

	if err := os.WriteFile(path, updated, propsFileMode); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	return true, nil
}

// hasPackageReference walks the XML token stream looking for a
// PackageReference element whose Include attribute names packageID.
func hasPackageReference(contents []byte, packageID string) (bool, error) {
	decoder := xml.NewDecoder(bytes.NewReader(contents))

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return false, nil
		} else if err != nil {
			return false, err
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "PackageReference" {
			continue
		}

		for _, attr := range start.Attr {
			if attr.Name.Local == "Include" && strings.EqualFold(attr.Value, packageID) {
				return true, nil
			}
		}
	}
}

// insertBeforeClosingProject splices the reference in front of the last
// closing Project tag. Textual insertion keeps PropertyGroups, comments
// and formatting the user already has in the file intact.
func insertBeforeClosingProject(contents []byte, reference string) ([]byte, error) {
	index := bytes.LastIndex(contents, []byte("</Project>"))
	if index < 0 {
		return nil, errNoProjectElement
	}

	var buffer bytes.Buffer

	buffer.Write(contents[:index])
	buffer.WriteString(reference)
	buffer.Write(contents[index:])

	return buffer.Bytes(), nil
}
