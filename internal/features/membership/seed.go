package membership

import (
	"context"
	"fmt"
	"time"

	"go-erp/internal/features/role"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The upserts below back the demo seeder. The engine itself never writes.

func (s *MongoStore) UpsertCompany(ctx context.Context, c *Company) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := s.Companies.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert company %d: %w", c.ID, err)
	}
	return nil
}

func (s *MongoStore) UpsertRole(ctx context.Context, r *role.Role) error {
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	_, err := s.Roles.ReplaceOne(ctx, bson.M{"_id": r.ID}, r, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert role %d: %w", r.ID, err)
	}
	return nil
}

func (s *MongoStore) UpsertMembership(ctx context.Context, m *Membership) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := s.CompanyUsers.ReplaceOne(ctx, bson.M{"_id": m.ID}, m, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert membership %d: %w", m.ID, err)
	}
	return nil
}
