package repository

import (
	"context"

	"bloglist/internal/database"
	"bloglist/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const mongoSystem = "mongodb"

type userDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	Name         string               `bson:"name"`
	PasswordHash string               `bson:"passwordHash"`
	Blogs        []primitive.ObjectID `bson:"blogs"`
}

func (d *userDocument) toModel() *models.User {
	user := &models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
	}
	for _, id := range d.Blogs {
		user.BlogRefs = append(user.BlogRefs, models.BlogRef{UserID: user.ID, BlogID: id.Hex()})
	}
	return user
}

func (d *userDocument) summary() *models.UserSummary {
	return &models.UserSummary{Username: d.Username, Name: d.Name, ID: d.ID.Hex()}
}

type blogDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	URL    string             `bson:"url"`
	Likes  int                `bson:"likes"`
	User   primitive.ObjectID `bson:"user"`
}

func (d *blogDocument) toModel() *models.Blog {
	return &models.Blog{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		URL:    d.URL,
		Likes:  d.Likes,
		UserID: d.User.Hex(),
	}
}

// NewMongoStore returns a Store backed by a MongoDB database.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Users:   NewMongoUserRepository(db),
		Blogs:   NewMongoBlogRepository(db),
		Backend: mongoSystem,
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	}
}

// parseObjectIDs converts hex ids, dropping malformed ones.
func parseObjectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func usersCollection(db *mongo.Database) *mongo.Collection {
	return db.Collection(database.UsersCollection)
}

func blogsCollection(db *mongo.Database) *mongo.Collection {
	return db.Collection(database.BlogsCollection)
}
