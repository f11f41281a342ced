package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/jiffybox/internal/log"
)

func TestCtxWithValues(t *testing.T) {
	tests := map[string]struct {
		ctx       func() context.Context
		kv        log.Kv
		expValues log.Kv
	}{
		"Setting values on an empty context should store them.": {
			ctx:       context.Background,
			kv:        log.Kv{"box": 42},
			expValues: log.Kv{"box": 42},
		},

		"Setting values on a context with values should merge them.": {
			ctx: func() context.Context {
				return log.CtxWithValues(context.Background(), log.Kv{"box": 42, "op": "get"})
			},
			kv:        log.Kv{"op": "freeze"},
			expValues: log.Kv{"box": 42, "op": "freeze"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := log.CtxWithValues(test.ctx(), test.kv)
			assert.Equal(t, test.expValues, log.ValuesFromCtx(ctx))
		})
	}
}

func TestValuesFromCtxWithoutValues(t *testing.T) {
	assert.Equal(t, log.Kv{}, log.ValuesFromCtx(context.Background()))
}
