package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"visitor-management/config"
	"visitor-management/models"
)

type visitRepository struct {
	collection *mongo.Collection
}

func NewVisitRepository(db *mongo.Database) VisitRepository {
	return &visitRepository{
		collection: db.Collection(config.VisitCollection),
	}
}

func (r *visitRepository) Create(ctx context.Context, visit *models.Visit) error {
	if visit.ID.IsZero() {
		visit.ID = primitive.NewObjectID()
	}
	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = time.Now()
	}
	visit.UpdatedAt = visit.CreatedAt

	if _, err := r.collection.InsertOne(ctx, visit); err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

func (r *visitRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Visit, error) {
	var visit models.Visit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find visit: %w", err)
	}
	return &visit, nil
}

func (r *visitRepository) FindRedeemable(ctx context.Context, passcode string, notBefore time.Time) (*models.Visit, error) {
	filter := bson.M{
		"passcode":   passcode,
		"status":     models.VisitApproved,
		"visit_date": bson.M{"$gte": notBefore},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "visit_date", Value: 1}})

	var visit models.Visit
	err := r.collection.FindOne(ctx, filter, opts).Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find visit by passcode: %w", err)
	}
	return &visit, nil
}

func (r *visitRepository) FindByVisitor(ctx context.Context, visitorID primitive.ObjectID) ([]models.Visit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "visit_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"visitor_id": visitorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find visits for visitor: %w", err)
	}
	defer cursor.Close(ctx)

	visits := []models.Visit{}
	if err = cursor.All(ctx, &visits); err != nil {
		return nil, fmt.Errorf("failed to decode visits: %w", err)
	}
	return visits, nil
}

func (r *visitRepository) List(ctx context.Context, filter models.VisitFilter) ([]models.VisitWithVisitor, error) {
	match := bson.M{}
	if filter.Status != "" {
		match["status"] = filter.Status
	}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		window := bson.M{}
		if !filter.From.IsZero() {
			window["$gte"] = filter.From
		}
		if !filter.To.IsZero() {
			window["$lte"] = filter.To
		}
		match["visit_date"] = window
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "visit_date", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "visitor_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "visitorDetails"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$visitorDetails"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "visitor_photo", Value: "$visitorDetails.photo"},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "visitorDetails", Value: 0}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate visits: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.VisitWithVisitor{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode visits: %w", err)
	}
	return results, nil
}

func (r *visitRepository) Transition(ctx context.Context, id primitive.ObjectID, t models.VisitTransition) (*models.Visit, error) {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": t.From},
	}
	update := bson.M{"$set": t.SetDocument()}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var visit models.Visit
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&visit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update visit status: %w", err)
	}
	return &visit, nil
}

func (r *visitRepository) Stats(ctx context.Context, dayStart, dayEnd time.Time) (*models.VisitStats, error) {
	stats := &models.VisitStats{
		ByStatus:               []models.StatusCount{},
		DepartmentDistribution: []models.DepartmentCount{},
	}

	var err error
	if stats.TotalVisits, err = r.collection.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, fmt.Errorf("failed to count visits: %w", err)
	}

	today := bson.M{"visit_date": bson.M{"$gte": dayStart, "$lte": dayEnd}}
	if stats.TodayVisits, err = r.collection.CountDocuments(ctx, today); err != nil {
		return nil, fmt.Errorf("failed to count today's visits: %w", err)
	}

	if err := r.aggregateInto(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}, &stats.ByStatus); err != nil {
		return nil, fmt.Errorf("failed to aggregate visits by status: %w", err)
	}

	for _, sc := range stats.ByStatus {
		switch sc.Status {
		case models.VisitCheckedIn:
			stats.CurrentlyCheckedIn = sc.Count
		case models.VisitPending:
			stats.PendingApprovals = sc.Count
		}
	}

	if err := r.aggregateInto(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "host.department", Value: bson.D{{Key: "$nin", Value: bson.A{"", nil}}}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$host.department"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}, &stats.DepartmentDistribution); err != nil {
		return nil, fmt.Errorf("failed to aggregate department distribution: %w", err)
	}

	return stats, nil
}

func (r *visitRepository) aggregateInto(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
