package contextWaitGroup

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
)

// CWG runs goroutines under one context and waits for all of them. The
// context ends on Stop, on any of the given signals, or when the parent ends.
type CWG struct {
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	stop   context.CancelFunc
}

func New(parent context.Context, signals ...os.Signal) *CWG {
	c := &CWG{}
	c.ctx, c.cancel = context.WithCancel(parent)
	c.stop = func() {}
	if len(signals) > 0 {
		c.ctx, c.stop = signal.NotifyContext(c.ctx, signals...)
	}
	return c
}

func (c *CWG) Ctx() context.Context {
	return c.ctx
}

func (c *CWG) Go(f func(context.Context)) {
	c.wg.Go(func() {
		f(c.ctx)
	})
}

// Stop cancels the shared context without waiting.
func (c *CWG) Stop() {
	c.cancel()
}

// Wait blocks until every goroutine returned and releases the signal
// handlers. It returns nil when the run ended through Stop.
func (c *CWG) Wait() error {
	c.wg.Wait()
	err := c.ctx.Err()
	c.stop()
	c.cancel()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
