package reportqueries

import (
	"context"

	"github.com/dalemusser/heartfund/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// AdminSummary is the site-wide dashboard rollup.
type AdminSummary struct {
	CampaignsCount      int64 `json:"campaigns_count"`
	ActivitiesCount     int64 `json:"activities_count"`
	DonationsCount      int64 `json:"donations_count"`
	AmountRaised        int64 `json:"amount_raised"`
	ParticipationsCount int64 `json:"participations_count"`
}

// BuildAdminSummary computes the admin dashboard counters. The five
// queries are independent and run concurrently.
func BuildAdminSummary(ctx context.Context, db *mongo.Database) (AdminSummary, error) {
	var s AdminSummary

	g, gctx := errgroup.WithContext(ctx)

	count := func(coll string, filter bson.M, dst *int64) func() error {
		return func() error {
			n, err := db.Collection(coll).CountDocuments(gctx, filter)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		}
	}

	g.Go(count("campaigns", bson.M{}, &s.CampaignsCount))
	g.Go(count("activities", bson.M{}, &s.ActivitiesCount))
	g.Go(count("donations", bson.M{}, &s.DonationsCount))
	g.Go(count("participations", bson.M{"status": bson.M{"$ne": models.StatusCancelled}}, &s.ParticipationsCount))
	g.Go(func() error {
		total, err := sumAmounts(gctx, db, bson.M{})
		if err != nil {
			return err
		}
		s.AmountRaised = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return AdminSummary{}, err
	}
	return s, nil
}

// UserDonationRow is a donation annotated with its campaign's name.
type UserDonationRow struct {
	Donation     models.Donation `json:"donation"`
	CampaignName string          `json:"campaign_name"`
}

// UserParticipationRow is a participation annotated with its activity.
type UserParticipationRow struct {
	Participation models.Participation `json:"participation"`
	ActivityTitle string               `json:"activity_title"`
}

// UserSummary is one user's profile dashboard: their giving totals and
// their full histories, with referenced campaigns and activities
// resolved by name.
type UserSummary struct {
	DonationsCount      int64                  `json:"donations_count"`
	AmountDonated       int64                  `json:"amount_donated"`
	ParticipationsCount int64                  `json:"participations_count"`
	Donations           []UserDonationRow      `json:"donations"`
	Participations      []UserParticipationRow `json:"participations"`
}

// BuildUserSummary computes one user's dashboard. Cancelled
// participations still appear in the history list but are excluded from
// the active count.
func BuildUserSummary(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (UserSummary, error) {
	var s UserSummary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := sumAmounts(gctx, db, bson.M{"user_id": userID})
		if err != nil {
			return err
		}
		s.AmountDonated = total
		return nil
	})

	g.Go(func() error {
		n, err := db.Collection("participations").CountDocuments(gctx, bson.M{
			"user_id": userID,
			"status":  bson.M{"$ne": models.StatusCancelled},
		})
		if err != nil {
			return err
		}
		s.ParticipationsCount = n
		return nil
	})

	g.Go(func() error {
		rows, err := userDonations(gctx, db, userID)
		if err != nil {
			return err
		}
		s.Donations = rows
		s.DonationsCount = int64(len(rows))
		return nil
	})

	g.Go(func() error {
		rows, err := userParticipations(gctx, db, userID)
		if err != nil {
			return err
		}
		s.Participations = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return UserSummary{}, err
	}
	return s, nil
}

func userDonations(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]UserDonationRow, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"user_id": userID}},
		{"$sort": bson.M{"created_at": -1}},
		{"$lookup": bson.M{
			"from":         "campaigns",
			"localField":   "campaign_id",
			"foreignField": "_id",
			"as":           "campaign",
		}},
		{"$unwind": bson.M{"path": "$campaign", "preserveNullAndEmptyArrays": true}},
	}

	cur, err := db.Collection("donations").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []UserDonationRow{}
	for cur.Next(ctx) {
		var raw struct {
			models.Donation `bson:",inline"`
			Campaign        *models.Campaign `bson:"campaign"`
		}
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}

		row := UserDonationRow{Donation: raw.Donation, CampaignName: DeletedPlaceholder}
		if raw.Campaign != nil {
			row.CampaignName = raw.Campaign.Name
		}
		rows = append(rows, row)
	}
	return rows, cur.Err()
}

func userParticipations(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) ([]UserParticipationRow, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"user_id": userID}},
		{"$sort": bson.M{"created_at": -1}},
		{"$lookup": bson.M{
			"from":         "activities",
			"localField":   "activity_id",
			"foreignField": "_id",
			"as":           "activity",
		}},
		{"$unwind": bson.M{"path": "$activity", "preserveNullAndEmptyArrays": true}},
	}

	cur, err := db.Collection("participations").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []UserParticipationRow{}
	for cur.Next(ctx) {
		var raw struct {
			models.Participation `bson:",inline"`
			Activity             *models.Activity `bson:"activity"`
		}
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}

		row := UserParticipationRow{Participation: raw.Participation, ActivityTitle: DeletedPlaceholder}
		if raw.Activity != nil {
			row.ActivityTitle = raw.Activity.Title
		}
		rows = append(rows, row)
	}
	return rows, cur.Err()
}
