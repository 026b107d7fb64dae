package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newEntityID builds ids like "order-1756721234567-3f9c2a1b": the readable
// millisecond timestamp the storefront already displays, plus a random suffix
// so two creates in the same clock tick can never collide.
func newEntityID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}

// newGatewayToken mirrors the PayDunya token shape.
func newGatewayToken() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("token_%d_%s", time.Now().UnixMilli(), suffix)
}
