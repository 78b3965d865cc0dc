package solve

import (
	"context"

	"go.uber.org/zap"

	logpkg "github.com/achernar1030/polyroot/internal/logger"
)

func contextWithLogger(l *zap.Logger) context.Context {
	return logpkg.ContextWithLogger(context.Background(), l)
}
