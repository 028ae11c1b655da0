package launch

import (
	"crypto/md5"

	"github.com/google/uuid"
)

// DeriveOfflineIdentity computes the stable offline identity for a username:
// the MD5 of "OfflinePlayer:<username>" rendered in the canonical dashed
// 8-4-4-4-12 layout. The same username always yields the same identity, on
// every platform; there is no online authentication behind it.
func DeriveOfflineIdentity(username string) string {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		// FromBytes only fails on length != 16; an MD5 sum is always 16.
		panic(err)
	}
	return id.String()
}
