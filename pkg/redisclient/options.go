package redisclient

import "time"

type Option func(c *RedisClient)

func ConnAttempts(attempts int) Option {
	return func(c *RedisClient) {
		c.connAttempts = attempts
	}
}

func ConnTimeout(timeout time.Duration) Option {
	return func(c *RedisClient) {
		c.connTimeout = timeout
	}
}
