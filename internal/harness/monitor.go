package harness

import (
	"log/slog"

	"github.com/randomizedcoder/boundedbuffer/internal/buffer"
	"github.com/randomizedcoder/boundedbuffer/internal/tick"
)

// monitor is the buffer Observer for a session. The buffer calls it under its
// lock, so its fields need no synchronization of their own; Run reads them
// only after every worker has returned.
type monitor struct {
	capacity int
	logger   *slog.Logger
	ticker   tick.Ticker

	ops        int64
	min, max   int
	violations int
}

func newMonitor(capacity int, logger *slog.Logger, ticker tick.Ticker) *monitor {
	if ticker == nil || logger == nil {
		ticker = tick.Never{}
	}
	return &monitor{
		capacity: capacity,
		logger:   logger,
		ticker:   ticker,
	}
}

func (m *monitor) observe(op buffer.Op, count int) {
	m.ops++
	m.min = min(m.min, count)
	m.max = max(m.max, count)

	if count < 0 || count > m.capacity {
		m.violations++
		if m.logger != nil {
			m.logger.Error("count out of bounds",
				slog.String("op", op.String()),
				slog.Int("count", count),
				slog.Int("capacity", m.capacity))
		}
	}

	if !m.ticker.Tick() {
		return
	}
	msg := "buffer status"
	switch count {
	case m.capacity:
		msg = "buffer full"
	case 0:
		msg = "buffer empty"
	}
	m.logger.Info(msg,
		slog.String("op", op.String()),
		slog.Int("count", count),
		slog.Int64("ops", m.ops))
}
