package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUIDString() string {
	return uuid.New().String()
}

// ==================== TICKET CODE ====================

// GenerateTicketCode returns a unique booking reference.
// Format: TKT-YYYYMMDD-XXXXXXXX
func GenerateTicketCode(now time.Time) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("TKT-%s-%s", now.Format("20060102"), random)
}
