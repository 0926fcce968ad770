package repository

import (
	"context"
	"errors"
	"time"

	"gstinvoice/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sellerCollection = "seller_profile"

type MongoSellerRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoSellerRepo(db *mongo.Client, dbName string) *MongoSellerRepo {
	return &MongoSellerRepo{DB: db, DBName: dbName}
}

func (r *MongoSellerRepo) SaveSeller(ctx context.Context, seller *models.Seller) error {
	if seller.CreatedAt.IsZero() {
		seller.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.Database(r.DBName).Collection(sellerCollection).InsertOne(ctx, seller)
	return err
}

func (r *MongoSellerRepo) GetSeller(ctx context.Context) (*models.Seller, error) {
	var s models.Seller
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := r.DB.Database(r.DBName).Collection(sellerCollection).FindOne(ctx, bson.M{}, opts).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
