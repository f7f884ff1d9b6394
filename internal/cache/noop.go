package cache

import (
	"context"
	"time"
)

// Noop es un cache deshabilitado: todo Get es miss.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error)              { return nil, ErrNotFound }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, string) error                     { return nil }
func (Noop) Ping(context.Context) error                               { return nil }
func (Noop) Close() error                                             { return nil }
func (Noop) Kind() string                                             { return "none" }
