// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureCampaigns(ctx, db); err != nil {
		problems = append(problems, "campaigns: "+err.Error())
	}
	if err := ensureDonations(ctx, db); err != nil {
		problems = append(problems, "donations: "+err.Error())
	}
	if err := ensureActivities(ctx, db); err != nil {
		problems = append(problems, "activities: "+err.Error())
	}
	if err := ensureParticipations(ctx, db); err != nil {
		problems = append(problems, "participations: "+err.Error())
	}
	if err := ensureOAuthStates(ctx, db); err != nil {
		problems = append(problems, "oauth_states: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// external_id is the identity-resolution key.
			Keys:    bson.D{{Key: "external_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("external_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_lookup"),
		},
	})
	return err
}

func ensureCampaigns(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("campaigns").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("active_recent"),
		},
	})
	return err
}

func ensureDonations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("donations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "campaign_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("campaign_recent"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_recent"),
		},
	})
	return err
}

func ensureActivities(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("activities").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("active_upcoming"),
		},
	})
	return err
}

func ensureParticipations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("participations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// One participation document per (user, activity); the
			// cancelled/registered distinction lives in the status field.
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "activity_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_activity_unique"),
		},
		{
			Keys:    bson.D{{Key: "activity_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("activity_recent"),
		},
	})
	return err
}

func ensureOAuthStates(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("oauth_states").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("state_unique"),
		},
		{
			// TTL cleanup for abandoned logins.
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("state_ttl"),
		},
	})
	return err
}
