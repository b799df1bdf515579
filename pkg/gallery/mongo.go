package gallery

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jlaitio/kuvia/pkg/errors"
)

// albumsCollection is the collection holding one document per album.
const albumsCollection = "albums"

// MongoStore persists the album tree in MongoDB, one document per album
// keyed by path. Subalbum relationships are stored as ordered path
// lists and resolved to shallow child entries on Get.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

// albumDoc is the persisted form of an Album. The subtree is flattened:
// children are referenced by path, pictures are embedded.
type albumDoc struct {
	Path          string    `bson:"_id"`
	Slug          string    `bson:"slug"`
	Title         string    `bson:"title"`
	Description   string    `bson:"description,omitempty"`
	Body          string    `bson:"body,omitempty"`
	RedirectURL   string    `bson:"redirect_url,omitempty"`
	IsPublic      bool      `bson:"is_public"`
	IsVisible     bool      `bson:"is_visible"`
	Thumbnail     *Media    `bson:"thumbnail,omitempty"`
	SubalbumPaths []string  `bson:"subalbum_paths"`
	Pictures      []Picture `bson:"pictures"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and returns a store backed by the
// given database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		col:    client.Database(database).Collection(albumsCollection),
	}, nil
}

// Put replaces the stored tree: every album in the new tree is
// upserted, then documents for paths no longer present are removed.
func (s *MongoStore) Put(ctx context.Context, root *Album) error {
	var paths []string
	var putErr error

	root.Walk(func(a *Album) {
		if putErr != nil {
			return
		}
		paths = append(paths, a.Path)
		doc := docFromAlbum(a)
		opts := options.Replace().SetUpsert(true)
		if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": a.Path}, doc, opts); err != nil {
			putErr = errors.Wrap(errors.ErrCodeStore, err, "store album %s", a.Path)
		}
	})
	if putErr != nil {
		return putErr
	}

	_, err := s.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": paths}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "prune stale albums")
	}
	return nil
}

// Get resolves path to an album: by album path first, then by picture
// path. The result carries shallow subalbum entries and the breadcrumb
// trail.
func (s *MongoStore) Get(ctx context.Context, path string) (*Album, error) {
	var doc albumDoc
	err := s.col.FindOne(ctx, bson.M{"_id": path}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		// Maybe it is a picture path.
		err = s.col.FindOne(ctx, bson.M{"pictures.path": path}).Decode(&doc)
	}
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeAlbumNotFound, "no album at %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load album %s", path)
	}

	album := doc.toAlbum()

	if err := s.attachSubalbums(ctx, album, doc.SubalbumPaths); err != nil {
		return nil, err
	}
	if err := s.attachBreadcrumb(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

// Root returns the root album.
func (s *MongoStore) Root(ctx context.Context) (*Album, error) {
	return s.Get(ctx, "/")
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// attachSubalbums loads shallow child entries in the stored order.
func (s *MongoStore) attachSubalbums(ctx context.Context, album *Album, childPaths []string) error {
	if len(childPaths) == 0 {
		return nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": childPaths}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "load subalbums of %s", album.Path)
	}
	defer cursor.Close(ctx)

	byPath := make(map[string]*Album, len(childPaths))
	for cursor.Next(ctx) {
		var doc albumDoc
		if err := cursor.Decode(&doc); err != nil {
			return errors.Wrap(errors.ErrCodeStore, err, "decode subalbum of %s", album.Path)
		}
		child := doc.toAlbum()
		child.Pictures = nil // shallow entry: navigation tile only
		byPath[child.Path] = child
	}
	if err := cursor.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "iterate subalbums of %s", album.Path)
	}

	for _, p := range childPaths {
		if child, ok := byPath[p]; ok {
			album.Subalbums = append(album.Subalbums, child)
		}
	}
	return nil
}

// attachBreadcrumb loads ancestor titles for the breadcrumb trail.
func (s *MongoStore) attachBreadcrumb(ctx context.Context, album *Album) error {
	ancestorPaths := AncestorPaths(album.Path)
	if len(ancestorPaths) == 0 {
		return nil
	}

	cursor, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ancestorPaths}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "load ancestors of %s", album.Path)
	}
	defer cursor.Close(ctx)

	titles := make(map[string]string, len(ancestorPaths))
	for cursor.Next(ctx) {
		var doc albumDoc
		if err := cursor.Decode(&doc); err != nil {
			return errors.Wrap(errors.ErrCodeStore, err, "decode ancestor of %s", album.Path)
		}
		titles[doc.Path] = doc.Title
	}
	if err := cursor.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "iterate ancestors of %s", album.Path)
	}

	for _, p := range ancestorPaths {
		if title, ok := titles[p]; ok {
			album.Breadcrumb = append(album.Breadcrumb, Breadcrumb{Path: p, Title: title})
		}
	}
	return nil
}

func docFromAlbum(a *Album) albumDoc {
	doc := albumDoc{
		Path:        a.Path,
		Slug:        a.Slug,
		Title:       a.Title,
		Description: a.Description,
		Body:        a.Body,
		RedirectURL: a.RedirectURL,
		IsPublic:    a.IsPublic,
		IsVisible:   a.IsVisible,
		Thumbnail:   a.Thumbnail,
		Pictures:    a.Pictures,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	for _, sub := range a.Subalbums {
		doc.SubalbumPaths = append(doc.SubalbumPaths, sub.Path)
	}
	return doc
}

func (d albumDoc) toAlbum() *Album {
	return &Album{
		Slug:        d.Slug,
		Path:        d.Path,
		Title:       d.Title,
		Description: d.Description,
		Body:        d.Body,
		RedirectURL: d.RedirectURL,
		IsPublic:    d.IsPublic,
		IsVisible:   d.IsVisible,
		Thumbnail:   d.Thumbnail,
		Pictures:    d.Pictures,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
