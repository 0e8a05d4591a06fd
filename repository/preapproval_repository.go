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

type preApprovalRepository struct {
	collection *mongo.Collection
}

func NewPreApprovalRepository(db *mongo.Database) PreApprovalRepository {
	return &preApprovalRepository{
		collection: db.Collection(config.PreApprovalCollection),
	}
}

func (r *preApprovalRepository) Create(ctx context.Context, p *models.PreApproval) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt

	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create pre-approval: %w", err)
	}
	return nil
}

func (r *preApprovalRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PreApproval, error) {
	var p models.PreApproval
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find pre-approval: %w", err)
	}
	return &p, nil
}

func (r *preApprovalRepository) FindActiveByPasscode(ctx context.Context, passcode string) ([]models.PreApproval, error) {
	filter := bson.M{"passcode": passcode, "status": models.PreApprovalActive}
	opts := options.Find().SetSort(bson.D{{Key: "valid_from", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *preApprovalRepository) List(ctx context.Context) ([]models.PreApproval, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *preApprovalRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.PreApproval, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find pre-approvals: %w", err)
	}
	defer cursor.Close(ctx)

	list := []models.PreApproval{}
	if err = cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode pre-approvals: %w", err)
	}
	return list, nil
}

func (r *preApprovalRepository) Transition(ctx context.Context, id primitive.ObjectID, t models.PreApprovalTransition) (*models.PreApproval, error) {
	set := bson.M{"status": t.To, "updated_at": t.At}
	update := bson.M{"$set": set}
	switch t.To {
	case models.PreApprovalUsed:
		set["used_at"] = t.At
		if t.UsedBy != nil {
			set["used_by"] = *t.UsedBy
		}
	case models.PreApprovalActive:
		// Reactivation undoes a redemption.
		update["$unset"] = bson.M{"used_at": "", "used_by": ""}
	}

	filter := bson.M{"_id": id, "status": t.From}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.PreApproval
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update pre-approval status: %w", err)
	}
	return &p, nil
}

func (r *preApprovalRepository) AttachVisit(ctx context.Context, id, visitID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"visit_id": visitID, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to link visit to pre-approval: %w", err)
	}
	return nil
}

func (r *preApprovalRepository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"status": models.PreApprovalActive, "valid_until": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{"status": models.PreApprovalExpired, "updated_at": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire pre-approvals: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *preApprovalRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": models.PreApprovalActive})
	if err != nil {
		return 0, fmt.Errorf("failed to count pre-approvals: %w", err)
	}
	return count, nil
}
