package services

import (
	"context"
	stderrors "errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"homehub/models"
	"homehub/utils/errors"
)

// UserRepository is the registered-user list behind the credential store.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	// Exists reports whether any user has the given email or username.
	Exists(ctx context.Context, email, username string) (bool, error)
	Insert(ctx context.Context, user models.User) (models.User, error)
	Count(ctx context.Context) (int64, error)
}

// MemoryUserRepository keeps users in registration order.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, errors.ErrNotFound
}

func (r *MemoryUserRepository) Exists(_ context.Context, email, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.existsLocked(email, username), nil
}

func (r *MemoryUserRepository) existsLocked(email, username string) bool {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true
		}
	}
	return false
}

// Insert re-checks uniqueness under the write lock so two racing signups
// cannot both succeed.
func (r *MemoryUserRepository) Insert(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsLocked(user.Email, user.Username) {
		return models.User{}, errors.ErrConflict
	}
	if user.ID == "" {
		user.ID = user.PublicID
	}
	r.users = append(r.users, user)
	return user, nil
}

func (r *MemoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// MongoUserRepository stores users in a Mongo collection with unique
// indexes on email and on username.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// ConnectMongo opens a client and pings it.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

func NewMongoUserRepository(ctx context.Context, collection *mongo.Collection) (*MongoUserRepository, error) {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return nil, err
	}
	return &MongoUserRepository{collection: collection}, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": bson.M{"$eq": email}}).Decode(&user)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, errors.ErrNotFound
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "DB_ERROR", "failed to load user", errors.ErrInternal.Status)
	}
	return user, nil
}

func (r *MongoUserRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email": bson.M{"$eq": email}},
		bson.M{"username": bson.M{"$eq": username}},
	}}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrap(err, "DB_ERROR", "failed to check user", errors.ErrInternal.Status)
	}
	return n > 0, nil
}

func (r *MongoUserRepository) Insert(ctx context.Context, user models.User) (models.User, error) {
	user.ID = ""
	result, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return models.User{}, errors.ErrConflict
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "DB_ERROR", "failed to create user in database", errors.ErrInternal.Status)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return user, nil
}

func (r *MongoUserRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
