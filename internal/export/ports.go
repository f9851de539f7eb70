// Package export defines the outbound port for durable transaction
// export and its concrete targets.
package export

import (
	"context"

	"stash/internal/core"
)

// TransactionAppender writes one committed transaction to an external
// destination and returns an opaque reference to the written record.
type TransactionAppender interface {
	Append(ctx context.Context, tx core.Transaction) (ref string, err error)
}
