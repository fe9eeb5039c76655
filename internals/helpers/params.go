package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ParseUUIDParam reads a path param as a UUID (400 when malformed).
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// ParseUUIDQuery reads an optional query filter. ok is false when absent.
func ParseUUIDQuery(c *fiber.Ctx, name string) (id uuid.UUID, ok bool, err error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return uuid.Nil, false, nil
	}
	id, err = uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, FieldErrors{name: {"must be a valid id"}}
	}
	return id, true, nil
}

// ParseUUIDList reads a comma separated list such as ?studentIds=a,b,c.
func ParseUUIDList(c *fiber.Ctx, name string) ([]uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, FieldErrors{name: {"must be a comma separated list of ids"}}
		}
		out = append(out, id)
	}
	return out, nil
}

// WhereIDIn filters column by an id set. On Postgres the set is bound as a
// single uuid[] (= ANY) so the statement shape does not vary with its size.
func WhereIDIn(column string, ids []uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db.Where("1 = 0")
		}
		if db.Dialector.Name() == "postgres" {
			return db.Where(column+" = ANY(?::uuid[])", pq.Array(uuidStrings(ids)))
		}
		return db.Where(column+" IN ?", ids)
	}
}

// WhereIDNotIn is the complement of WhereIDIn; an empty set matches everything.
func WhereIDNotIn(column string, ids []uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db
		}
		if db.Dialector.Name() == "postgres" {
			return db.Where("NOT ("+column+" = ANY(?::uuid[]))", pq.Array(uuidStrings(ids)))
		}
		return db.Where(column+" NOT IN ?", ids)
	}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// UniqueUUIDs drops duplicates and nil ids, keeping first-seen order.
func UniqueUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
