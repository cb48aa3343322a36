package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/St1cky1/task-calendar/internal/entity"
	"github.com/redis/go-redis/v9"
)

const DefaultCachePrefix = "calendar:"

// CachedCalendarRepository - cache-aside поверх другого ICalendarRepository.
// Ошибки Redis не ломают чтение и запись: они логируются, а запрос уходит в базу.
type CachedCalendarRepository struct {
	next   ICalendarRepository
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

var _ ICalendarRepository = (*CachedCalendarRepository)(nil)

func NewCachedCalendarRepository(next ICalendarRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedCalendarRepository {
	return &CachedCalendarRepository{
		next:   next,
		client: client,
		prefix: DefaultCachePrefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedCalendarRepository) key(name string) string {
	return r.prefix + name
}

func (r *CachedCalendarRepository) Load(ctx context.Context, name string) (entity.TaskCalendar, error) {
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	switch {
	case err == nil:
		var cal entity.TaskCalendar
		if err := json.Unmarshal(data, &cal); err == nil {
			return cal, nil
		}
		r.logger.Warn("битый календарь в кэше", "calendar", name)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("ошибка чтения кэша", "calendar", name, "error", err)
	}

	cal, err := r.next.Load(ctx, name)
	if err != nil {
		return entity.TaskCalendar{}, err
	}
	r.put(ctx, name, cal)
	return cal, nil
}

func (r *CachedCalendarRepository) Save(ctx context.Context, name string, cal entity.TaskCalendar) error {
	if err := r.next.Save(ctx, name, cal); err != nil {
		// в кэше может остаться версия новее базы
		r.drop(ctx, name)
		return err
	}
	r.put(ctx, name, cal)
	return nil
}

func (r *CachedCalendarRepository) Create(ctx context.Context, name string) (entity.TaskCalendar, error) {
	cal, err := r.next.Create(ctx, name)
	if err != nil {
		return entity.TaskCalendar{}, err
	}
	r.put(ctx, name, cal)
	return cal, nil
}

func (r *CachedCalendarRepository) Exists(ctx context.Context, name string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(name)).Result()
	if err == nil && n > 0 {
		return true, nil
	}
	return r.next.Exists(ctx, name)
}

func (r *CachedCalendarRepository) put(ctx context.Context, name string, cal entity.TaskCalendar) {
	data, err := json.Marshal(cal)
	if err != nil {
		r.logger.Warn("не удалось сериализовать календарь для кэша", "calendar", name, "error", err)
		return
	}
	if err := r.client.Set(ctx, r.key(name), data, r.ttl).Err(); err != nil {
		r.logger.Warn("ошибка записи в кэш", "calendar", name, "error", fmt.Errorf("cache set: %w", err))
	}
}

func (r *CachedCalendarRepository) drop(ctx context.Context, name string) {
	if err := r.client.Del(ctx, r.key(name)).Err(); err != nil {
		r.logger.Warn("ошибка удаления из кэша", "calendar", name, "error", err)
	}
}
