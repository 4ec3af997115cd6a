package services

import (
	"io"
	"log/slog"

	"procurement-service/internal/mocks"

	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestEvents(pub *mocks.MockPublisher) *Events {
	return NewEvents(pub, discardLogger())
}
