package auth

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Identity is what a verified Google ID token says about its holder.
type Identity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// IDTokenVerifier verifies third-party sign-in tokens and can end the
// provider-side session of a user we refuse.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
	RevokeSessions(ctx context.Context, uid string) error
}

type FirebaseVerifier struct {
	client    *fbauth.Client
	projectID string
}

// NewFirebaseVerifier initializes Firebase from the service-account JSON
// itself rather than a file path.
func NewFirebaseVerifier(ctx context.Context, credsJSON, projectID string) (*FirebaseVerifier, error) {
	if credsJSON == "" || projectID == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_JSON and FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client, projectID: projectID}, nil
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	// Verify the token AND check for revocation
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if token.Audience != v.projectID {
		return nil, fmt.Errorf("%w: audience %q", ErrInvalidToken, token.Audience)
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: email not found in token", ErrInvalidToken)
	}
	verified, _ := token.Claims["email_verified"].(bool)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	return &Identity{UID: token.UID, Email: email, EmailVerified: verified, Name: name, Picture: picture}, nil
}

func (v *FirebaseVerifier) RevokeSessions(ctx context.Context, uid string) error {
	return v.client.RevokeRefreshTokens(ctx, uid)
}
