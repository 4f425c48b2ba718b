package account

import (
	"fmt"
	"math/rand"
	"strings"
)

const nameCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GeneratePlayerName produces a display name like Player_GK_X7K2P9.
// The shared math/rand source is locked internally, so concurrent
// registrations may call this freely.
func GeneratePlayerName(position string) string {
	var sb strings.Builder
	sb.Grow(6)
	for i := 0; i < 6; i++ {
		sb.WriteByte(nameCharset[rand.Intn(len(nameCharset))])
	}
	return fmt.Sprintf("Player_%s_%s", position, sb.String())
}
