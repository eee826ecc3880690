package services

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/friendbook/backend/internal/models"
)

// BlobStore keeps uploaded media. Paths returned by Save are what the entities store.
type BlobStore interface {
	Save(ctx context.Context, folder string, data []byte, suggestedName string) (string, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// IDTokenVerifier is satisfied by *auth.Client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Upload is one file received with a request.
type Upload struct {
	Name string
	Data []byte
}
