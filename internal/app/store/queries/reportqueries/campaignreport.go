// Package reportqueries provides read-only aggregate queries for reports
// and dashboards. Nothing here mutates state; every result is recomputed
// per request. Rows that reference a deleted campaign, activity, or user
// resolve to a placeholder instead of failing the aggregation.
package reportqueries

import (
	"context"

	"github.com/dalemusser/heartfund/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// DeletedPlaceholder is rendered for references whose target no longer
// exists (participation/donation rows are not cascade-deleted).
const DeletedPlaceholder = "(deleted)"

// DonationRow is a donation with its attributed user resolved.
type DonationRow struct {
	Donation models.Donation `json:"donation"`
	UserName string          `json:"user_name"`
	Email    string          `json:"email,omitempty"`
}

// CampaignReport aggregates a single campaign's funding figures.
type CampaignReport struct {
	DonationsCount    int64         `json:"donations_count"`
	TotalAmountRaised int64         `json:"total_amount_raised"`
	Donations         []DonationRow `json:"donations"`
}

// BuildCampaignReport returns the donation count, the total raised, and
// the full donation list (newest first, with attributed users) for one
// campaign. The three independent queries run concurrently and are joined
// before returning.
func BuildCampaignReport(ctx context.Context, db *mongo.Database, campaignID primitive.ObjectID) (CampaignReport, error) {
	var report CampaignReport

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := db.Collection("donations").CountDocuments(gctx, bson.M{"campaign_id": campaignID})
		if err != nil {
			return err
		}
		report.DonationsCount = n
		return nil
	})

	g.Go(func() error {
		total, err := sumAmounts(gctx, db, bson.M{"campaign_id": campaignID})
		if err != nil {
			return err
		}
		report.TotalAmountRaised = total
		return nil
	})

	g.Go(func() error {
		rows, err := donationsWithUsers(gctx, db, bson.M{"campaign_id": campaignID}, 0)
		if err != nil {
			return err
		}
		report.Donations = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return CampaignReport{}, err
	}
	return report, nil
}

// sumAmounts runs a $group/$sum over the donations matching filter.
func sumAmounts(ctx context.Context, db *mongo.Database, filter bson.M) (int64, error) {
	pipeline := []bson.M{
		{"$match": filter},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	}

	cur, err := db.Collection("donations").Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Total int64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		return row.Total, nil
	}
	return 0, cur.Err()
}

// donationsWithUsers joins donations with their users, newest first.
// Donations whose user was deleted keep a placeholder name.
func donationsWithUsers(ctx context.Context, db *mongo.Database, filter bson.M, limit int64) ([]DonationRow, error) {
	pipeline := []bson.M{
		{"$match": filter},
		{"$sort": bson.M{"created_at": -1}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.M{"$limit": limit})
	}
	pipeline = append(pipeline,
		bson.M{"$lookup": bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}},
		bson.M{"$unwind": bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}},
	)

	cur, err := db.Collection("donations").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []DonationRow{}
	for cur.Next(ctx) {
		var raw struct {
			models.Donation `bson:",inline"`
			User            *models.User `bson:"user"`
		}
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}

		row := DonationRow{Donation: raw.Donation, UserName: DeletedPlaceholder}
		if raw.User != nil {
			row.UserName = raw.User.UserName
			row.Email = raw.User.Email
		}
		rows = append(rows, row)
	}
	return rows, cur.Err()
}
