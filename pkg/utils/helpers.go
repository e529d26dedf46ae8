package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// CalculateMD5 computes the MD5 hash of a byte slice.
func CalculateMD5(data []byte) string {
	hasher := md5.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// CalculateStringMD5 computes the MD5 hash of a string.
func CalculateStringMD5(s string) string {
	return CalculateMD5([]byte(s))
}
