package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// New returns a fresh random identifier for sections, items, and
// configurations created during an editing session. Identifiers are
// state-free: two sessions never need coordination to stay collision-free.
func New() string {
	return uuid.NewString()
}

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ConfigUUID derives a stable identifier for a seeded screen configuration.
func ConfigUUID(name string) uuid.UUID {
	return UUID("go-screens:config:" + strings.ToLower(strings.TrimSpace(name)))
}

// SectionUUID derives a stable identifier for a seeded section.
func SectionUUID(configName, key string) uuid.UUID {
	return UUID("go-screens:section:" + strings.ToLower(strings.TrimSpace(configName)) + ":" + strings.TrimSpace(key))
}

// ItemUUID derives a stable identifier for a seeded item.
func ItemUUID(configName, sectionKey, key string) uuid.UUID {
	return UUID("go-screens:item:" + strings.ToLower(strings.TrimSpace(configName)) + ":" + strings.TrimSpace(sectionKey) + ":" + strings.TrimSpace(key))
}
