package repository

import (
	"context"
	"errors"

	"bloglist/internal/models"
	"bloglist/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoUserRepository struct {
	db *mongo.Database
}

// NewMongoUserRepository returns a MongoDB-backed UserRepository.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{db: db}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, mongoSystem, "users", "Create")
	defer func() { observability.EndSpan(span, err) }()

	doc := userDocument{
		ID:           primitive.NewObjectID(),
		Username:     user.Username,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Blogs:        []primitive.ObjectID{},
	}
	if _, err := usersCollection(r.db).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewValidationError(duplicateUsernameMessage)
		}
		return models.NewInternalError(err)
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := usersCollection(r.db).FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return doc.toModel(), nil
}

func (r *mongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *mongoUserRepository) AppendBlog(ctx context.Context, userID, blogID string) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, mongoSystem, "users", "AppendBlog")
	defer func() { observability.EndSpan(span, err) }()

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.NewNotFoundError("User", userID)
	}
	bid, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return models.NewInternalError(err)
	}

	res, err := usersCollection(r.db).UpdateByID(ctx, uid, bson.M{"$push": bson.M{"blogs": bid}})
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

func (r *mongoUserRepository) List(ctx context.Context) (result []models.UserWithBlogs, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, mongoSystem, "users", "List")
	defer func() { observability.EndSpan(span, err) }()

	cursor, err := usersCollection(r.db).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, models.NewInternalError(err)
	}

	var blogIDs []primitive.ObjectID
	for i := range docs {
		blogIDs = append(blogIDs, docs[i].Blogs...)
	}

	byID := make(map[string]models.BlogSummary, len(blogIDs))
	if len(blogIDs) > 0 {
		blogCursor, err := blogsCollection(r.db).Find(ctx, bson.M{"_id": bson.M{"$in": blogIDs}})
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		var blogs []blogDocument
		if err := blogCursor.All(ctx, &blogs); err != nil {
			return nil, models.NewInternalError(err)
		}
		for i := range blogs {
			byID[blogs[i].ID.Hex()] = blogs[i].toModel().Summary()
		}
	}

	result = make([]models.UserWithBlogs, 0, len(docs))
	for i := range docs {
		result = append(result, withBlogs(docs[i].toModel(), byID))
	}
	return result, nil
}
