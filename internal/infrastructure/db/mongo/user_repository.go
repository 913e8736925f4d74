package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
)

const (
	collectionUsers  = "users"
	uniqueEmailIndex = "uniqueEmail"
)

// UserRepository implements ports.UserRepository. The password hash lives in
// a credentials sub-document of the user so sign-up is a single insert.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

var _ ports.UserRepository = (*UserRepository)(nil)

type credentialsDoc struct {
	PasswordHash string `bson:"password_hash"`
}

type userDoc struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty"`
	Name                     domain.Name        `bson:"name"`
	PhotoPath                string             `bson:"photo_path"`
	Age                      int                `bson:"age"`
	Email                    string             `bson:"email"`
	Role                     string             `bson:"role"`
	NumberOfSongsSubmitted   int                `bson:"number_of_songs_submitted"`
	NumberOfPlaylistsCreated int                `bson:"number_of_playlists_created"`
	FavoritePlaylists        []string           `bson:"favorite_playlists"`
	Credentials              *credentialsDoc    `bson:"credentials,omitempty"`
	CreatedAt                time.Time          `bson:"created_at"`
	UpdatedAt                time.Time          `bson:"updated_at"`
}

// withoutCredentials keeps the hash out of every read that returns a User.
var withoutCredentials = bson.D{{Key: "credentials", Value: 0}}

func newUserDoc(u *domain.User, passwordHash string) userDoc {
	doc := userDoc{
		Name:                     u.Name,
		PhotoPath:                u.PhotoPath,
		Age:                      u.Age,
		Email:                    u.Email,
		Role:                     u.Role,
		NumberOfSongsSubmitted:   u.NumberOfSongsSubmitted,
		NumberOfPlaylistsCreated: u.NumberOfPlaylistsCreated,
		FavoritePlaylists:        u.FavoritePlaylists,
		CreatedAt:                u.CreatedAt.UTC(),
		UpdatedAt:                u.UpdatedAt.UTC(),
	}
	if doc.FavoritePlaylists == nil {
		doc.FavoritePlaylists = []string{}
	}
	if passwordHash != "" {
		doc.Credentials = &credentialsDoc{PasswordHash: passwordHash}
	}
	return doc
}

func (d userDoc) toDomain() *domain.User {
	favorites := d.FavoritePlaylists
	if favorites == nil {
		favorites = []string{}
	}
	return &domain.User{
		ID:                       d.ID.Hex(),
		Name:                     d.Name,
		PhotoPath:                d.PhotoPath,
		Age:                      d.Age,
		Email:                    d.Email,
		Role:                     d.Role,
		NumberOfSongsSubmitted:   d.NumberOfSongsSubmitted,
		NumberOfPlaylistsCreated: d.NumberOfPlaylistsCreated,
		FavoritePlaylists:        favorites,
		CreatedAt:                d.CreatedAt,
		UpdatedAt:                d.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newUserDoc(user, passwordHash)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	err := r.col.FindOne(ctx, filter, options.FindOne().SetProjection(withoutCredentials)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindCredentials(ctx context.Context, userID string) (*domain.Credentials, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	opts := options.FindOne().SetProjection(bson.D{{Key: "credentials", Value: 1}})
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find credentials: %w", err)
	}
	if doc.Credentials == nil || doc.Credentials.PasswordHash == "" {
		return nil, domain.ErrCredentialsNotFound
	}

	return &domain.Credentials{UserID: userID, PasswordHash: doc.Credentials.PasswordHash}, nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Role != "" {
		query["role"] = filter.Role
	}

	opts := options.Find().
		SetProjection(withoutCredentials).
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64(filter.Skip))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": userPatchSet(patch, time.Now().UTC())})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// userPatchSet builds the $set document for a patch. Only non-nil fields are
// written; updated_at is always refreshed.
func userPatchSet(patch domain.UserPatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.PhotoPath != nil {
		set["photo_path"] = *patch.PhotoPath
	}
	if patch.Age != nil {
		set["age"] = *patch.Age
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.FavoritePlaylists != nil {
		set["favorite_playlists"] = patch.FavoritePlaylists
	}
	return set
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) IncrementCounters(ctx context.Context, id string, songs, playlists int) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{
			"number_of_songs_submitted":   songs,
			"number_of_playlists_created": playlists,
		},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("increment counters: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(uniqueEmailIndex),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
