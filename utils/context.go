package utils

import (
	"context"

	"code.cloudfoundry.org/lager/v3"

	"github.com/pivotal-cf/brokerclient/middlewares"
)

// DataForContext collects the values stored under the given context keys
// into lager data, so log sessions carry the correlation ID alongside their
// own fields.
func DataForContext(ctx context.Context, dataKeys ...middlewares.ContextKey) lager.Data {
	data := lager.Data{}
	for _, key := range dataKeys {
		if value := ctx.Value(key); value != nil {
			data[string(key)] = value
		}
	}

	return data
}
