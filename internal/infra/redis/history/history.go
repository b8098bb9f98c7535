package infra_redis_history

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis"
	"github.com/keyduel/core/internal/model"
)

const historyLimit = 1000

type Driver struct {
	client *redis.Client
	key    string
}

func New(
	client *redis.Client,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) RecordMatch(_ context.Context, rec model.MatchRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if err := d.client.LPush(d.historyKey(), raw).Err(); err != nil {
		return err
	}
	if err := d.client.LTrim(d.historyKey(), 0, historyLimit-1).Err(); err != nil {
		return err
	}

	if rec.Draw || rec.Winner == "" {
		return nil
	}
	return d.client.ZIncrBy(d.winsKey(), 1, string(rec.Winner)).Err()
}

func (d *Driver) Top(_ context.Context, n int) ([]model.Standing, error) {
	if n <= 0 {
		return nil, nil
	}

	entries, err := d.client.ZRevRangeWithScores(d.winsKey(), 0, int64(n-1)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	standings := make([]model.Standing, 0, len(entries))
	for _, e := range entries {
		member, _ := e.Member.(string)
		standings = append(standings, model.Standing{
			PlayerID: model.PlayerID(member),
			Wins:     int(e.Score),
		})
	}
	return standings, nil
}

func (d *Driver) historyKey() string {
	return d.key + ":matches"
}

func (d *Driver) winsKey() string {
	return d.key + ":wins"
}
