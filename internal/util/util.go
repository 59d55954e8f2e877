package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// KST is the club's wall clock. Every synthesized timestamp uses it.
var KST = time.FixedZone("KST", 9*60*60)

func NowKST() string {
	return time.Now().In(KST).Format("2006-01-02 15:04:05")
}

func TodayKST() string {
	return time.Now().In(KST).Format("2006-01-02")
}

func HMACSHA256Hex(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}
