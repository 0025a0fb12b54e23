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

type mongoBlogRepository struct {
	db *mongo.Database
}

// NewMongoBlogRepository returns a MongoDB-backed BlogRepository.
func NewMongoBlogRepository(db *mongo.Database) BlogRepository {
	return &mongoBlogRepository{db: db}
}

func (r *mongoBlogRepository) Create(ctx context.Context, blog *models.Blog) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, mongoSystem, "blogs", "Create")
	defer func() { observability.EndSpan(span, err) }()

	owner, err := primitive.ObjectIDFromHex(blog.UserID)
	if err != nil {
		return models.NewValidationError("invalid owner id")
	}

	doc := blogDocument{
		ID:     primitive.NewObjectID(),
		Title:  blog.Title,
		Author: blog.Author,
		URL:    blog.URL,
		Likes:  blog.Likes,
		User:   owner,
	}
	if _, err := blogsCollection(r.db).InsertOne(ctx, doc); err != nil {
		return models.NewInternalError(err)
	}
	blog.ID = doc.ID.Hex()
	return nil
}

// owners loads the owner projections for ids keyed by hex id.
func (r *mongoBlogRepository) owners(ctx context.Context, ids []primitive.ObjectID) (map[string]*models.UserSummary, error) {
	out := make(map[string]*models.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	projection := options.Find().SetProjection(bson.M{"username": 1, "name": 1})
	cursor, err := usersCollection(r.db).Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, projection)
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for i := range docs {
		out[docs[i].ID.Hex()] = docs[i].summary()
	}
	return out, nil
}

func (r *mongoBlogRepository) List(ctx context.Context) (result []models.BlogWithOwner, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, mongoSystem, "blogs", "List")
	defer func() { observability.EndSpan(span, err) }()

	cursor, err := blogsCollection(r.db).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	var docs []blogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, models.NewInternalError(err)
	}

	seen := make(map[primitive.ObjectID]bool)
	var ownerIDs []primitive.ObjectID
	for i := range docs {
		if !seen[docs[i].User] {
			seen[docs[i].User] = true
			ownerIDs = append(ownerIDs, docs[i].User)
		}
	}
	owners, err := r.owners(ctx, ownerIDs)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	result = make([]models.BlogWithOwner, 0, len(docs))
	for i := range docs {
		result = append(result, *docs[i].toModel().WithOwner(owners[docs[i].User.Hex()]))
	}
	return result, nil
}

func (r *mongoBlogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc blogDocument
	if err := blogsCollection(r.db).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return doc.toModel(), nil
}

func (r *mongoBlogRepository) UpdateLikes(ctx context.Context, id string, likes int) (result *models.BlogWithOwner, err error) {
	ctx, span := observability.StartRepositorySpan(ctx, mongoSystem, "blogs", "UpdateLikes")
	defer func() { observability.EndSpan(span, err) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc blogDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = blogsCollection(r.db).FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"likes": likes}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}

	owners, err := r.owners(ctx, []primitive.ObjectID{doc.User})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return doc.toModel().WithOwner(owners[doc.User.Hex()]), nil
}

func (r *mongoBlogRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, span := observability.StartRepositorySpan(ctx, mongoSystem, "blogs", "Delete")
	defer func() { observability.EndSpan(span, err) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := blogsCollection(r.db).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
