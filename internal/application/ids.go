package application

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/bnema/page-push/internal/domain"
	"github.com/google/uuid"
)

const profileIDSuffixLen = 9

// newProfileID concatenates a base-36 millisecond timestamp with a random
// base-36 suffix taken from a v4 UUID.
func newProfileID(now time.Time) domain.ProfileID {
	random := uuid.New()
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(random[8:]), 36)
	if len(suffix) > profileIDSuffixLen {
		suffix = suffix[:profileIDSuffixLen]
	}

	return domain.ProfileID(strconv.FormatInt(now.UnixMilli(), 36) + suffix)
}
