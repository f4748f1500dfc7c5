package apicalllog

import (
	"context"
	"time"
)

// ApiCallLog is one audited API call. Write-only from this module's
// perspective: rows are produced for quota auditing and never read back.
type ApiCallLog struct {
	ID        uint
	UserID    uint
	Path      string
	CreatedAt time.Time
}

type ApiCallLogRepository interface {
	Create(ctx context.Context, entry *ApiCallLog) error
}
