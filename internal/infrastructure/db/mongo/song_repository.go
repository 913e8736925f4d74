package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/playlistify/music-api/internal/core/domain"
	"github.com/playlistify/music-api/internal/core/ports"
)

const collectionSongs = "songs"

type SongRepository struct {
	col *mongo.Collection
}

func NewSongRepository(db *mongo.Database) *SongRepository {
	return &SongRepository{col: db.Collection(collectionSongs)}
}

var _ ports.SongRepository = (*SongRepository)(nil)

type songDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Album       string             `bson:"album"`
	Genre       string             `bson:"genre"`
	YoutubeLink string             `bson:"youtube_link,omitempty"`
	SpotifyLink string             `bson:"spotify_link,omitempty"`
	Owner       string             `bson:"owner"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func newSongDoc(s *domain.Song) songDoc {
	return songDoc{
		Title:       s.Title,
		Album:       s.Album,
		Genre:       s.Genre,
		YoutubeLink: s.YoutubeLink,
		SpotifyLink: s.SpotifyLink,
		Owner:       s.Owner,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
}

func (d songDoc) toDomain() *domain.Song {
	return &domain.Song{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Album:       d.Album,
		Genre:       d.Genre,
		YoutubeLink: d.YoutubeLink,
		SpotifyLink: d.SpotifyLink,
		Owner:       d.Owner,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// songFilter translates list parameters into a query. Title matches a
// case-insensitive substring; the other fields match exactly.
func songFilter(f ports.ListSongsFilter) bson.M {
	query := bson.M{}
	if f.Owner != "" {
		query["owner"] = f.Owner
	}
	if f.Genre != "" {
		query["genre"] = f.Genre
	}
	if f.Album != "" {
		query["album"] = f.Album
	}
	if f.Title != "" {
		query["title"] = containsFold(f.Title)
	}
	return query
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func (r *SongRepository) Create(ctx context.Context, song *domain.Song) (*domain.Song, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newSongDoc(song)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert song: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *SongRepository) FindByID(ctx context.Context, id string) (*domain.Song, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrSongNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc songDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSongNotFound
		}
		return nil, fmt.Errorf("find song: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SongRepository) List(ctx context.Context, filter ports.ListSongsFilter) ([]*domain.Song, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64(filter.Skip))

	cur, err := r.col.Find(ctx, songFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []songDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode songs: %w", err)
	}

	songs := make([]*domain.Song, 0, len(docs))
	for _, d := range docs {
		songs = append(songs, d.toDomain())
	}
	return songs, nil
}

func (r *SongRepository) Count(ctx context.Context, filter ports.ListSongsFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, songFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count songs: %w", err)
	}
	return n, nil
}

func (r *SongRepository) Update(ctx context.Context, id string, patch domain.SongPatch, owner string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrSongNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": songPatchSet(patch, owner, time.Now().UTC())})
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

func songPatchSet(patch domain.SongPatch, owner string, now time.Time) bson.M {
	set := bson.M{"owner": owner, "updated_at": now}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Album != nil {
		set["album"] = *patch.Album
	}
	if patch.Genre != nil {
		set["genre"] = *patch.Genre
	}
	if patch.YoutubeLink != nil {
		set["youtube_link"] = *patch.YoutubeLink
	}
	if patch.SpotifyLink != nil {
		set["spotify_link"] = *patch.SpotifyLink
	}
	return set
}

func (r *SongRepository) Replace(ctx context.Context, song *domain.Song) error {
	oid, ok := objectID(song.ID)
	if !ok {
		return domain.ErrSongNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newSongDoc(song)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("replace song: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

func (r *SongRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrSongNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

// EnsureIndexes creates indexes backing the list filters.
func (r *SongRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "genre", Value: 1}}},
		{Keys: bson.D{{Key: "album", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
