package probe

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Wait executes p every interval until it succeeds or ctx is done.
func Wait(ctx context.Context, name string, p Probe, interval time.Duration) error {
	log.WithFields(log.Fields{"kind": "probe", "name": name}).Info("waiting for probe readiness")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := p.Exec()
		if err == nil {
			log.WithFields(log.Fields{"kind": "probe", "name": name, "status": "ready"}).Info()
			return nil
		}
		log.WithFields(log.Fields{"kind": "probe", "name": name, "err": err}).Warn("not ready yet")

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
