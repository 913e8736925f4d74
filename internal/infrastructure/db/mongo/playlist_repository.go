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

const collectionPlaylists = "playlists"

type PlaylistRepository struct {
	col *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) *PlaylistRepository {
	return &PlaylistRepository{col: db.Collection(collectionPlaylists)}
}

var _ ports.PlaylistRepository = (*PlaylistRepository)(nil)

type playlistSongDoc struct {
	SongID string `bson:"song_id"`
	Title  string `bson:"title,omitempty"`
}

type playlistDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Tags       []string           `bson:"tags"`
	Songs      []playlistSongDoc  `bson:"songs"`
	Owner      string             `bson:"owner"`
	Attributes map[string]string  `bson:"attributes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func toSongDocs(songs []domain.PlaylistSong) []playlistSongDoc {
	out := make([]playlistSongDoc, 0, len(songs))
	for _, s := range songs {
		out = append(out, playlistSongDoc{SongID: s.SongID, Title: s.Title})
	}
	return out
}

func newPlaylistDoc(p *domain.Playlist) playlistDoc {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return playlistDoc{
		Name:       p.Name,
		Tags:       tags,
		Songs:      toSongDocs(p.Songs),
		Owner:      p.Owner,
		Attributes: p.Attributes,
		CreatedAt:  p.CreatedAt.UTC(),
		UpdatedAt:  p.UpdatedAt.UTC(),
	}
}

func (d playlistDoc) toDomain() *domain.Playlist {
	songs := make([]domain.PlaylistSong, 0, len(d.Songs))
	for _, s := range d.Songs {
		songs = append(songs, domain.PlaylistSong{SongID: s.SongID, Title: s.Title})
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Playlist{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Tags:       tags,
		Songs:      songs,
		Owner:      d.Owner,
		Attributes: d.Attributes,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// playlistFilter: tag matches any element of tags, name is a case-insensitive substring.
func playlistFilter(f ports.ListPlaylistsFilter) bson.M {
	query := bson.M{}
	if f.Owner != "" {
		query["owner"] = f.Owner
	}
	if f.Tag != "" {
		query["tags"] = f.Tag
	}
	if f.Name != "" {
		query["name"] = containsFold(f.Name)
	}
	return query
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newPlaylistDoc(playlist)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *PlaylistRepository) FindByID(ctx context.Context, id string) (*domain.Playlist, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPlaylistNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc playlistDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("find playlist: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PlaylistRepository) List(ctx context.Context, filter ports.ListPlaylistsFilter) ([]*domain.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64(filter.Skip))

	cur, err := r.col.Find(ctx, playlistFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer cur.Close(ctx)

	var docs []playlistDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode playlists: %w", err)
	}

	playlists := make([]*domain.Playlist, 0, len(docs))
	for _, d := range docs {
		playlists = append(playlists, d.toDomain())
	}
	return playlists, nil
}

func (r *PlaylistRepository) Count(ctx context.Context, filter ports.ListPlaylistsFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, playlistFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count playlists: %w", err)
	}
	return n, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, id string, patch domain.PlaylistPatch, owner string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPlaylistNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": playlistPatchSet(patch, owner, time.Now().UTC())})
	if err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

func playlistPatchSet(patch domain.PlaylistPatch, owner string, now time.Time) bson.M {
	set := bson.M{"owner": owner, "updated_at": now}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Tags != nil {
		set["tags"] = patch.Tags
	}
	if patch.Songs != nil {
		set["songs"] = toSongDocs(patch.Songs)
	}
	if patch.Attributes != nil {
		set["attributes"] = patch.Attributes
	}
	return set
}

func (r *PlaylistRepository) Replace(ctx context.Context, playlist *domain.Playlist) error {
	oid, ok := objectID(playlist.ID)
	if !ok {
		return domain.ErrPlaylistNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newPlaylistDoc(playlist)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("replace playlist: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPlaylistNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

func (r *PlaylistRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
