package reportqueries

import (
	"context"

	"github.com/dalemusser/heartfund/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// ParticipantRow is a participation with its user resolved.
type ParticipantRow struct {
	Participation models.Participation `json:"participation"`
	UserName      string               `json:"user_name"`
	Email         string               `json:"email,omitempty"`
}

// ActivityReport aggregates a single activity's participation figures.
// The count covers every participation record, cancelled ones included,
// so organizers can see churn as well as turnout.
type ActivityReport struct {
	ParticipantsCount int64            `json:"participants_count"`
	Participants      []ParticipantRow `json:"participants"`
}

// BuildActivityReport returns the participation count and the full
// participant list (newest first, with users) for one activity.
func BuildActivityReport(ctx context.Context, db *mongo.Database, activityID primitive.ObjectID) (ActivityReport, error) {
	var report ActivityReport

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := db.Collection("participations").CountDocuments(gctx, bson.M{"activity_id": activityID})
		if err != nil {
			return err
		}
		report.ParticipantsCount = n
		return nil
	})

	g.Go(func() error {
		rows, err := participantsWithUsers(gctx, db, bson.M{"activity_id": activityID}, 0)
		if err != nil {
			return err
		}
		report.Participants = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return ActivityReport{}, err
	}
	return report, nil
}

func participantsWithUsers(ctx context.Context, db *mongo.Database, filter bson.M, limit int64) ([]ParticipantRow, error) {
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

	cur, err := db.Collection("participations").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	rows := []ParticipantRow{}
	for cur.Next(ctx) {
		var raw struct {
			models.Participation `bson:",inline"`
			User                 *models.User `bson:"user"`
		}
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}

		row := ParticipantRow{Participation: raw.Participation, UserName: DeletedPlaceholder}
		if raw.User != nil {
			row.UserName = raw.User.UserName
			row.Email = raw.User.Email
		}
		rows = append(rows, row)
	}
	return rows, cur.Err()
}

// RecentParticipants returns the newest non-cancelled participations
// for an activity, with users resolved, for the public participants
// strip on the activity page.
func RecentParticipants(ctx context.Context, db *mongo.Database, activityID primitive.ObjectID, limit int64) ([]ParticipantRow, error) {
	filter := bson.M{
		"activity_id": activityID,
		"status":      bson.M{"$ne": models.StatusCancelled},
	}
	return participantsWithUsers(ctx, db, filter, limit)
}

// UserParticipationCounts groups non-cancelled participations by user,
// for the admin volunteer leaderboard.
func UserParticipationCounts(ctx context.Context, db *mongo.Database) (map[primitive.ObjectID]int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": bson.M{"$ne": models.StatusCancelled}}},
		{"$group": bson.M{"_id": "$user_id", "count": bson.M{"$sum": 1}}},
	}

	cur, err := db.Collection("participations").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := map[primitive.ObjectID]int64{}
	for cur.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Count int64              `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cur.Err()
}
