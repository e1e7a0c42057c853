/*
Package randx provides functions for generating cryptographically secure random identifiers.

It is primarily used to generate default guest nicknames for users who join without
choosing a name, and unique subscription identifiers for the frame relay.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// GuestPrefix is the prefix of generated guest nicknames.
	GuestPrefix = "guest_"

	// GuestRawLength is the fixed length of the Base62 part of a guest nickname.
	GuestRawLength = 6
)

// GuestNickname generates a random nickname with the GuestPrefix followed by
// GuestRawLength Base62 characters, using a cryptographically secure random
// number generator (crypto/rand).
func GuestNickname() (string, error) {
	result := make([]byte, GuestRawLength)

	for i := range GuestRawLength {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for nickname: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return GuestPrefix + string(result), nil
}

// SubscriptionID generates a standard UUID v4 string to serve as a unique
// identifier for a relay subscription.
func SubscriptionID() string {
	return uuid.New().String()
}

// IsValidGuestNickname checks if the given string is a generated guest nickname.
// Validity criteria include: the GuestPrefix, followed by exactly GuestRawLength
// characters from the Base62Chars set.
func IsValidGuestNickname(name string) bool {
	if !strings.HasPrefix(name, GuestPrefix) {
		return false
	}

	raw := name[len(GuestPrefix):]

	if len(raw) != GuestRawLength {
		return false
	}

	for _, char := range raw {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
