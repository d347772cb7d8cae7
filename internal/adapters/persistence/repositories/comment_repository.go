package repositories

import (
	"io"
	"path/filepath"

	"aquamarket/internal/adapters/persistence/csvstore"
	"aquamarket/internal/core/domain"
)

// CommentsSchema is the fixed column layout of the comments collection.
var CommentsSchema = []string{"OfferId", "AuthorEmail", "Text", "Timestamp"}

// commentRepository implements CommentRepository over a CSV store. Like
// ratings, a damaged comments store degrades to an empty view on read.
type commentRepository struct {
	store *csvstore.Store[domain.Comment]
}

// NewCommentRepository creates a comment repository backed by comments.csv in
// dataDir.
func NewCommentRepository(dataDir string) CommentRepository {
	return &commentRepository{
		store: csvstore.New(
			filepath.Join(dataDir, "comments.csv"),
			CommentsSchema,
			encodeComment,
			decodeComment,
		),
	}
}

func encodeComment(c domain.Comment) []string {
	return []string{c.OfferID, c.AuthorEmail, c.Text, c.Timestamp}
}

func decodeComment(row []string) (domain.Comment, error) {
	return domain.Comment{OfferID: row[0], AuthorEmail: row[1], Text: row[2], Timestamp: row[3]}, nil
}

func (r *commentRepository) Append(c domain.Comment) error {
	return r.store.Append(c)
}

func (r *commentRepository) ByOffer(offerID string) ([]domain.Comment, error) {
	comments, err := r.store.Scan(func(rec domain.Comment) bool {
		return rec.OfferID == offerID
	})
	if recoverableSocialError(err) {
		return nil, nil
	}
	return comments, err
}

func (r *commentRepository) Name() string { return r.store.Name() }

func (r *commentRepository) Export(w io.Writer) error { return r.store.Export(w) }
