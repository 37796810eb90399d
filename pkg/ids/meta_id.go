package ids

import (
	"encoding/hex"

	"github.com/arthur-debert/metadir/pkg/errors"
	"github.com/google/uuid"
)

// MetaID identifies a metadirectory
type MetaID struct {
	u uuid.UUID
}

// NewMetaID generates a random meta ID. No uniqueness check is performed.
func NewMetaID() MetaID {
	return MetaID{u: uuid.New()}
}

// ParseMetaID validates the textual form of a meta ID. Any form accepted by
// uuid.Parse is allowed; String always returns the 32 character hex form.
func ParseMetaID(s string) (MetaID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return MetaID{}, errors.Wrapf(err, errors.ErrInvalidMetaID, "invalid meta ID %s", s)
	}
	return MetaID{u: u}, nil
}

// IsZero reports whether the ID is unset
func (id MetaID) IsZero() bool {
	return id.u == uuid.Nil
}

// String returns the ID as 32 lowercase hex characters
func (id MetaID) String() string {
	return hex.EncodeToString(id.u[:])
}

// MarshalText implements encoding.TextMarshaler
func (id MetaID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *MetaID) UnmarshalText(text []byte) error {
	parsed, err := ParseMetaID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
