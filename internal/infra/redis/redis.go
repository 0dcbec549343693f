package redis

import (
	radix "github.com/mediocregopher/radix/v3"
)

// NewPool はRedis接続プールを作る。
func NewPool(addr string) (radix.Client, error) {
	pool, err := radix.NewPool("tcp", addr, 10)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
