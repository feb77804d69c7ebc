package domain

import "strings"

// NotificationKeyPrefix namespaces expiry notifications from any future
// notification categories stored alongside them.
const NotificationKeyPrefix = "EXPIRED_"

// keySanitizer replaces characters that are illegal in ledger storage keys
var keySanitizer = strings.NewReplacer(".", "_", "/", "_", "#", "_")

// NotificationKey derives the ledger key for a document number.
// The derivation is deterministic: "A.1/2#3" always maps to
// "EXPIRED_A_1_2_3".
func NotificationKey(documentNumber string) string {
	return NotificationKeyPrefix + keySanitizer.Replace(documentNumber)
}
