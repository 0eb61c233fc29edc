// Package models defines data models shared between the store and the handlers.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user in the system. The password hash is persisted
// but never serialized into a response body.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Avatar    *string            `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// NewUser carries the fields required to create a user. Password must
// already be hashed by the caller before it reaches the store.
type NewUser struct {
	Name     string
	Email    string
	Password string
}

// PasswordResetToken represents a single-use password recovery token.
type PasswordResetToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Token     string             `bson:"token"`
	ExpiresAt time.Time          `bson:"expiresAt"`
	UsedAt    *time.Time         `bson:"usedAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// NewPasswordResetToken carries the fields required to create a reset token.
type NewPasswordResetToken struct {
	UserID    primitive.ObjectID
	Token     string
	ExpiresAt time.Time
}
