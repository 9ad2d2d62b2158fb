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

	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/infrastructure/credentials"
)

const credentialCollection = "credentials"

// ErrCredentialExists is returned by Create when the username is taken.
var ErrCredentialExists = errors.New("credential already exists")

// CredentialStore verifies logins against bcrypt hashes stored in MongoDB.
type CredentialStore struct {
	coll *mongo.Collection
}

func NewCredentialStore(db *mongo.Database) *CredentialStore {
	return &CredentialStore{coll: db.Collection(credentialCollection)}
}

type mongoCredential struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

// EnsureIndexes creates the unique username index.
func (s *CredentialStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create credential index: %w", err)
	}
	return nil
}

// Verify looks up username and compares password against its hash. Unknown
// users still pay for a bcrypt comparison.
func (s *CredentialStore) Verify(ctx context.Context, username, password string) (bool, error) {
	cred, err := s.find(ctx, username)
	if err != nil {
		return false, err
	}
	var hash []byte
	if cred != nil {
		hash = []byte(cred.PasswordHash)
	}
	return credentials.Compare(hash, password)
}

// Create inserts a credential with an already computed bcrypt hash.
func (s *CredentialStore) Create(ctx context.Context, cred domain.Credential) error {
	now := time.Now().UTC().Unix()
	_, err := s.coll.InsertOne(ctx, mongoCredential{
		Username:     cred.Username,
		PasswordHash: cred.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCredentialExists
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) find(ctx context.Context, username string) (*domain.Credential, error) {
	var mc mongoCredential
	if err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return &domain.Credential{Username: mc.Username, PasswordHash: mc.PasswordHash}, nil
}
