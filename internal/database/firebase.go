package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"amigo-admin/internal/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// Firebase bundles the clients of the managed backend the panel operates on
type Firebase struct {
	App       *firebase.App
	Firestore *firestore.Client
	Auth      *auth.Client
	Messaging *messaging.Client
}

// NewFirebase initializes the Firebase app and its clients with lifecycle management
func NewFirebase(lc fx.Lifecycle, cfg *config.Config) (*Firebase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, credentialOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	store, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("get auth client: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("get messaging client: %w", err)
	}

	log.Printf("Connected to Firebase project %q", cfg.FirebaseProjectID)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Closing Firestore client...")
			return store.Close()
		},
	})

	return &Firebase{
		App:       app,
		Firestore: store,
		Auth:      authClient,
		Messaging: messagingClient,
	}, nil
}

// credentialOptions prefers a credentials file, then inline service account
// values. With neither set, application default credentials are used.
func credentialOptions(cfg *config.Config) []option.ClientOption {
	if cfg.FirebaseCredentialsFile != "" {
		return []option.ClientOption{option.WithCredentialsFile(cfg.FirebaseCredentialsFile)}
	}
	if cfg.FirebaseClientEmail != "" && cfg.FirebasePrivateKey != "" {
		creds := fmt.Sprintf(`{
	"type": "service_account",
	"project_id": %q,
	"private_key": %q,
	"client_email": %q,
	"token_uri": "https://oauth2.googleapis.com/token"
}`, cfg.FirebaseProjectID, cfg.FirebasePrivateKey, cfg.FirebaseClientEmail)
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return nil
}
