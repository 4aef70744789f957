package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"formtrail/internal/submission/models"
	"formtrail/pkg/platform/sentinel"
)

const (
	fieldGmail     = "gmail"
	fieldTitle     = "title"
	fieldTimestamp = "timestamp"
)

// RedisStore keeps each submission in its own hash and indexes ids in a set.
// Keys: <prefix>:ids (set), <prefix>:<id> (hash).
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis constructs a Redis-backed submission store under the given key prefix.
func NewRedis(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) idsKey() string {
	return s.prefix + ":ids"
}

func (s *RedisStore) recordKey(id string) string {
	return s.prefix + ":" + id
}

// Insert writes the hash and the index entry in one MULTI/EXEC so a reader
// never sees an indexed id without its record.
func (s *RedisStore) Insert(ctx context.Context, submission models.Submission) error {
	id := submission.ID.String()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.recordKey(id),
			fieldGmail, submission.Identity.String(),
			fieldTitle, submission.FormLabel.String(),
			fieldTimestamp, models.FormatTimestamp(submission.SubmittedAt),
		)
		pipe.SAdd(ctx, s.idsKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]models.Submission, error) {
	ids, err := s.client.SMembers(ctx, s.idsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list submission ids: %w", err)
	}
	if len(ids) == 0 {
		return []models.Submission{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.recordKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}

	out := make([]models.Submission, 0, len(ids))
	for i, cmd := range cmds {
		sub, err := decodeRedisRecord(ids[i], cmd.Val())
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

func decodeRedisRecord(id string, fields map[string]string) (models.Submission, error) {
	if len(fields) == 0 {
		return models.Submission{}, fmt.Errorf("submission %s indexed but missing: %w", id, sentinel.ErrPartialRead)
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return models.Submission{}, fmt.Errorf("submission id %q: %w", id, sentinel.ErrPartialRead)
	}
	ts, err := time.Parse(time.RFC3339Nano, fields[fieldTimestamp])
	if err != nil {
		return models.Submission{}, fmt.Errorf("submission %s timestamp: %w", id, sentinel.ErrPartialRead)
	}
	return models.Submission{
		ID:          parsedID,
		Identity:    models.ResolvedIdentity(fields[fieldGmail]),
		FormLabel:   models.KnownLabel(fields[fieldTitle]),
		SubmittedAt: models.CanonicalTime(ts),
	}, nil
}

func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
