// Package mongodb provides document-store operations for the auth service.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayushsinghtech/Personalized-Learning-Path-Recommendation-System/internal/sdk/models"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrDuplicatedEntry = errors.New("duplicated entry")
	ErrInvalidID       = errors.New("invalid document id")
)

// Service represents a service that interacts with the document store.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the store connection.
	Close() error

	// User operations
	GetUserByID(ctx context.Context, userID string) (models.User, error)
	GetUserWithPassword(ctx context.Context, userID string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, user models.NewUser) (models.User, error)
	UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error
	UpdateUserAvatar(ctx context.Context, userID string, avatarURL string) error

	// Password reset token operations
	CreatePasswordResetToken(ctx context.Context, token models.NewPasswordResetToken) (models.PasswordResetToken, error)
	GetPasswordResetToken(ctx context.Context, token string) (models.PasswordResetToken, error)
	MarkPasswordResetTokenUsed(ctx context.Context, tokenID primitive.ObjectID) error
}

type service struct {
	client *mongo.Client
	db     *mongo.Database
}

var (
	uri        = os.Getenv("MONGODB_URI")
	database   = os.Getenv("MONGODB_DATABASE")
	dbInstance *service
)

const (
	usersCollection       = "users"
	resetTokensCollection = "password_reset_tokens"
)

func New() Service {
	// Reuse connection
	if dbInstance != nil {
		return dbInstance
	}

	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	if database == "" {
		database = "learning_path"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal(err)
	}

	dbInstance = &service{
		client: client,
		db:     client.Database(database),
	}

	if err := dbInstance.ensureIndexes(ctx); err != nil {
		log.Fatalf("creating indexes: %v", err)
	}

	return dbInstance
}

// ensureIndexes creates the unique email index that backs the
// insert-if-absent semantics for registration, plus the reset token lookup
// index. Duplicate registrations surface as ErrDuplicatedEntry.
func (s *service) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	_, err = s.db.Collection(resetTokensCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("reset token index: %w", err)
	}

	return nil
}

// Health checks the health of the store connection by pinging the server.
// It returns a map with keys indicating various health statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.client.Ping(ctx, nil); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	stats["database"] = database

	if n, err := s.db.Collection(usersCollection).EstimatedDocumentCount(ctx); err == nil {
		stats["users"] = strconv.FormatInt(n, 10)
	}

	return stats
}

func (s *service) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Printf("Disconnected from database: %s", database)
	return s.client.Disconnect(ctx)
}

// =============================================================================
// User operations
// =============================================================================

// GetUserByID fetches a user by hex ID with the password hash projected out.
// This is the lookup the authorization middleware uses.
func (s *service) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, ErrInvalidID
	}

	var user models.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	err = s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// GetUserWithPassword fetches a user by hex ID including the password hash.
// Only the change-password flow needs this.
func (s *service) GetUserWithPassword(ctx context.Context, userID string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, ErrInvalidID
	}

	var user models.User
	err = s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("get user with password: %w", err)
	}

	return user, nil
}

// GetUserByEmail fetches a user by email including the password hash.
// Login and password recovery are the only callers.
func (s *service) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

func (s *service) CreateUser(ctx context.Context, nu models.NewUser) (models.User, error) {
	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      nu.Name,
		Email:     nu.Email,
		Password:  nu.Password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.Collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrDuplicatedEntry
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *service) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"password":  hashedPassword,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *service) UpdateUserAvatar(ctx context.Context, userID string, avatarURL string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrInvalidID
	}

	res, err := s.db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"avatar":    avatarURL,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update user avatar: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// =============================================================================
// Password reset token operations
// =============================================================================

func (s *service) CreatePasswordResetToken(ctx context.Context, nt models.NewPasswordResetToken) (models.PasswordResetToken, error) {
	token := models.PasswordResetToken{
		ID:        primitive.NewObjectID(),
		UserID:    nt.UserID,
		Token:     nt.Token,
		ExpiresAt: nt.ExpiresAt,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.Collection(resetTokensCollection).InsertOne(ctx, token)
	if err != nil {
		return models.PasswordResetToken{}, fmt.Errorf("create reset token: %w", err)
	}

	return token, nil
}

func (s *service) GetPasswordResetToken(ctx context.Context, token string) (models.PasswordResetToken, error) {
	var rt models.PasswordResetToken
	err := s.db.Collection(resetTokensCollection).FindOne(ctx, bson.M{"token": token}).Decode(&rt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.PasswordResetToken{}, ErrNotFound
		}
		return models.PasswordResetToken{}, fmt.Errorf("get reset token: %w", err)
	}

	return rt, nil
}

func (s *service) MarkPasswordResetTokenUsed(ctx context.Context, tokenID primitive.ObjectID) error {
	res, err := s.db.Collection(resetTokensCollection).UpdateOne(ctx,
		bson.M{"_id": tokenID},
		bson.M{"$set": bson.M{"usedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
