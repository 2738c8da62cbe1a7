package repository

import (
	"context"
	"errors"

	"github.com/lexcongreso/registration/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoDatabase           = "congress"
	mongoCustomerCollection = "customers"
)

type mongoCustomerRepository struct {
	client *mongo.Client
}

// EnsureMongoCustomerIndexes creates the unique email index, mongo has no migrations
func EnsureMongoCustomerIndexes(ctx context.Context, client *mongo.Client) error {
	_, err := client.Database(mongoDatabase).Collection(mongoCustomerCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// NewMongoCustomerRepository builds customer repository on top of mongodb
func NewMongoCustomerRepository(client *mongo.Client) CustomerRepository {
	return &mongoCustomerRepository{client: client}
}

func (r *mongoCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoCustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	if _, err := r.collection().InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *mongoCustomerRepository) UpdateLead(ctx context.Context, c *model.Customer) (bool, error) {
	filter := bson.M{"_id": c.ID, "status": model.StatusLead}
	update := bson.M{"$set": bson.M{
		"first_name":           c.FirstName,
		"last_name":            c.LastName,
		"mobile_phone":         c.MobilePhone,
		"customer_category_fk": c.CustomerCategoryFK,
		"rfc":                  c.RFC,
	}}

	res, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoCustomerRepository) findOne(ctx context.Context, filter bson.M) (*model.Customer, error) {
	var c model.Customer
	if err := r.collection().FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoCustomerRepository) collection() *mongo.Collection {
	return r.client.Database(mongoDatabase).Collection(mongoCustomerCollection)
}
