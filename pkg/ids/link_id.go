package ids

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/metadir/pkg/errors"
)

// linkIDLen is the length of a hex-encoded MD5 digest
const linkIDLen = md5.Size * 2

// LinkID identifies the link for one project directory
type LinkID string

// LinkIDFromPath computes the link ID for an absolute project directory.
// The same path string always yields the same ID.
func LinkIDFromPath(projectDir string) (LinkID, error) {
	if !filepath.IsAbs(projectDir) || !utf8.ValidString(projectDir) {
		return "", errors.Newf(errors.ErrCouldNotComputeHash,
			"could not compute MD5 hash for path %s", projectDir).
			WithDetail("path", projectDir)
	}
	digest := md5.Sum([]byte(projectDir))
	return LinkID(hex.EncodeToString(digest[:])), nil
}

// ParseLinkID validates the textual form of a link ID
func ParseLinkID(s string) (LinkID, error) {
	if len(s) != linkIDLen {
		return "", invalidLinkID(s)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", invalidLinkID(s)
	}
	return LinkID(strings.ToLower(s)), nil
}

func invalidLinkID(s string) error {
	return errors.Newf(errors.ErrInvalidLinkID, "invalid link ID %s", s)
}

// String returns the hex form of the ID
func (id LinkID) String() string {
	return string(id)
}

// MarshalText implements encoding.TextMarshaler
func (id LinkID) MarshalText() ([]byte, error) {
	return []byte(id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *LinkID) UnmarshalText(text []byte) error {
	parsed, err := ParseLinkID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
