package membership

import (
	"context"
	"errors"
	"fmt"

	"go-erp/internal/database"
	"go-erp/internal/features/role"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store reads memberships, companies and roles. Lookups that find nothing
// return a nil value and a nil error.
type Store interface {
	FindAssignment(ctx context.Context, userID, companyID int64) (*Assignment, error)
	CompanyExists(ctx context.Context, companyID int64) (bool, error)
	ListCompanies(ctx context.Context, userID int64) ([]CompanyMembership, error)
	ListRoles(ctx context.Context, companyID int64) ([]role.Role, error)
	FindRole(ctx context.Context, companyID, roleID int64) (*role.Role, error)
}

type MongoStore struct {
	Companies    *mongo.Collection
	CompanyUsers *mongo.Collection
	Roles        *mongo.Collection
}

func NewMongoStore(mongodb *database.MongodbDB) *MongoStore {
	return &MongoStore{
		Companies:    mongodb.DB.Collection("companies"),
		CompanyUsers: mongodb.DB.Collection("company_users"),
		Roles:        mongodb.DB.Collection("roles"),
	}
}

// EnsureIndexes creates the unique active-membership index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.CompanyUsers.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "company_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"is_active": true}).
				SetName("uniq_active_membership"),
		},
		{
			Keys: bson.D{{Key: "company_id", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create company_users indexes: %w", err)
	}

	_, err = s.Roles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "name", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create roles index: %w", err)
	}
	return nil
}

func (s *MongoStore) FindAssignment(ctx context.Context, userID, companyID int64) (*Assignment, error) {
	var m Membership
	err := s.CompanyUsers.FindOne(ctx, bson.M{
		"user_id":    userID,
		"company_id": companyID,
		"is_active":  true,
	}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}

	r, err := s.FindRole(ctx, companyID, m.RoleID)
	if err != nil {
		return nil, err
	}
	return &Assignment{Membership: m, Role: r}, nil
}

func (s *MongoStore) CompanyExists(ctx context.Context, companyID int64) (bool, error) {
	count, err := s.Companies.CountDocuments(ctx, bson.M{"_id": companyID, "deleted_at": nil}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count companies: %w", err)
	}
	return count > 0, nil
}

func (s *MongoStore) ListCompanies(ctx context.Context, userID int64) ([]CompanyMembership, error) {
	cursor, err := s.CompanyUsers.Find(ctx, bson.M{"user_id": userID, "is_active": true})
	if err != nil {
		return nil, fmt.Errorf("find memberships: %w", err)
	}
	var memberships []Membership
	if err := cursor.All(ctx, &memberships); err != nil {
		return nil, fmt.Errorf("decode memberships: %w", err)
	}
	if len(memberships) == 0 {
		return []CompanyMembership{}, nil
	}

	ids := make([]int64, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.CompanyID)
	}
	cursor, err = s.Companies.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}, "deleted_at": nil},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find companies: %w", err)
	}
	var companies []Company
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}

	roleByCompany := make(map[int64]int64, len(memberships))
	for _, m := range memberships {
		roleByCompany[m.CompanyID] = m.RoleID
	}
	out := make([]CompanyMembership, 0, len(companies))
	for _, c := range companies {
		out = append(out, CompanyMembership{
			CompanyID:   c.ID,
			CompanyName: c.Name,
			RoleID:      roleByCompany[c.ID],
			IsOwner:     c.OwnerUserID == userID,
		})
	}
	return out, nil
}

func (s *MongoStore) ListRoles(ctx context.Context, companyID int64) ([]role.Role, error) {
	cursor, err := s.Roles.Find(ctx, bson.M{"company_id": companyID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	roles := []role.Role{}
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return roles, nil
}

func (s *MongoStore) FindRole(ctx context.Context, companyID, roleID int64) (*role.Role, error) {
	var r role.Role
	err := s.Roles.FindOne(ctx, bson.M{"_id": roleID, "company_id": companyID}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &r, nil
}
