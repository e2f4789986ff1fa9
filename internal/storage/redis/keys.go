package redis

import "fmt"

// redisKey returns the namespaced Redis key for a logical storage key
func (s *Storage) redisKey(key string) string {
	if s.cfg.KeyPrefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", s.cfg.KeyPrefix, key)
}
