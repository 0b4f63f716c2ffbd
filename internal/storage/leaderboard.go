// Package storage keeps aggregate win statistics in Redis. Only
// stats survive a restart; game sessions themselves are never persisted.
package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/DaveMajstro/osadnici-z-katanu/internal/protocol"
)

const (
	winsKey  = "katan:leaderboard:wins"
	gamesKey = "katan:leaderboard:games"
)

// Leaderboard tracks wins and games played per display name.
type Leaderboard struct {
	redis *redis.Client
}

// NewLeaderboard creates a leaderboard over the given Redis client.
func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{redis: client}
}

// RecordGameResult bumps the games counter for every seat and the wins
// counter for the winner.
func (l *Leaderboard) RecordGameResult(ctx context.Context, winnerName string, seatNames []string) error {
	pipe := l.redis.Pipeline()
	for _, name := range seatNames {
		pipe.ZIncrBy(ctx, gamesKey, 1, name)
	}
	pipe.ZIncrBy(ctx, winsKey, 1, winnerName)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record game result: %w", err)
	}
	return nil
}

// Top returns up to limit entries ordered by wins, highest first.
func (l *Leaderboard) Top(ctx context.Context, limit int) ([]protocol.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	winners, err := l.redis.ZRevRangeWithScores(ctx, winsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	entries := make([]protocol.LeaderboardEntry, 0, len(winners))
	for _, z := range winners {
		name, _ := z.Member.(string)
		games, err := l.redis.ZScore(ctx, gamesKey, name).Result()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("read games for %s: %w", name, err)
		}
		entries = append(entries, protocol.LeaderboardEntry{
			Name:  name,
			Wins:  int(z.Score),
			Games: int(games),
		})
	}
	return entries, nil
}
