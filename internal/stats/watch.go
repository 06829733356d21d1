package stats

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Watch recomputes the overview of scope every interval until ctx is done
// and hands each result to fn. The first refresh runs immediately. A failed
// refresh is logged and skipped so fn only ever sees good values.
func (a *Aggregator) Watch(ctx context.Context, scope string, interval time.Duration, logger *log.Logger, fn func(Overview)) error {
	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()

	_, err := s.Every(interval).Do(func() {
		ov, err := a.Overview(ctx, scope)
		if err != nil {
			if ctx.Err() == nil && logger != nil {
				logger.Printf("warning: refresh stats: %v", err)
			}
			return
		}
		fn(ov)
	})
	if err != nil {
		return fmt.Errorf("schedule stats refresh: %w", err)
	}

	s.StartAsync()
	<-ctx.Done()
	s.Stop()
	return nil
}
