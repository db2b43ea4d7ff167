package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// MaskHotkey produces the stable masked display form of a hotkey: the raw key
// followed by "..." and a 6-hex-digit SHA-256 suffix. Display formatting only,
// not a security mechanism.
func MaskHotkey(hotkey string) string {
	if hotkey == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(hotkey))
	return hotkey + "..." + hex.EncodeToString(sum[:])[:6]
}
