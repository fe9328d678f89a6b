// Package firestore is the Cloud Firestore docstore backend. Transforms map
// directly onto Firestore's native sentinels.
package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-jobboard-backend/internal/docstore"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Config carries service-account fields as they appear in the environment.
// When ProjectID is set without a PrivateKey, application default credentials are used.
type Config struct {
	ProjectID    string
	PrivateKeyID string
	PrivateKey   string
	ClientEmail  string
	ClientID     string
	ClientCert   string
}

type Store struct {
	client *firestore.Client
}

var _ docstore.Store = (*Store)(nil)

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firebase project id is required")
	}

	var opts []option.ClientOption
	if cfg.PrivateKey != "" {
		creds, err := CredentialsJSON(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

// CredentialsJSON renders cfg as a service-account key file. Escaped newlines
// in the private key are expanded so keys can be passed through a single env var.
func CredentialsJSON(cfg Config) ([]byte, error) {
	key := map[string]string{
		"type":                        "service_account",
		"project_id":                  cfg.ProjectID,
		"private_key_id":              cfg.PrivateKeyID,
		"private_key":                 strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n"),
		"client_email":                cfg.ClientEmail,
		"client_id":                   cfg.ClientID,
		"auth_uri":                    "https://accounts.google.com/o/oauth2/auth",
		"token_uri":                   "https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
		"client_x509_cert_url":        cfg.ClientCert,
	}
	raw, err := json.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("encode firebase credentials: %w", err)
	}
	return raw, nil
}

// validID rejects ids that Firestore would interpret as a path.
func validID(id string) bool {
	return id != "" && !strings.Contains(id, "/")
}

func (s *Store) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if !validID(id) {
		return docstore.Document{}, docstore.ErrNotFound
	}

	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return toDocument(snap), nil
}

func (s *Store) Where(ctx context.Context, collection, field string, value any) ([]docstore.Document, error) {
	q := s.client.Collection(collection).WhereEntity(firestore.PropertyFilter{
		Path:     field,
		Operator: "==",
		Value:    value,
	})
	return collect(q.Documents(ctx))
}

func (s *Store) All(ctx context.Context, collection string) ([]docstore.Document, error) {
	return collect(s.client.Collection(collection).Documents(ctx))
}

func collect(it *firestore.DocumentIterator) ([]docstore.Document, error) {
	defer it.Stop()

	docs := []docstore.Document{}
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query documents: %w", err)
		}
		docs = append(docs, toDocument(snap))
	}
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	plan, err := docstore.PlanCreate(data)
	if err != nil {
		return "", err
	}

	fields := make(map[string]any, len(plan.Set)+len(plan.Timestamps))
	for k, v := range plan.Set {
		fields[k] = v
	}
	for _, k := range plan.Timestamps {
		fields[k] = firestore.ServerTimestamp
	}

	ref, _, err := s.client.Collection(collection).Add(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return ref.ID, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if !validID(id) {
		return docstore.ErrNotFound
	}
	plan, err := docstore.PlanUpdate(fields)
	if err != nil {
		return err
	}

	ref := s.client.Collection(collection).Doc(id)
	ops := updates(plan)
	if len(ops) == 0 {
		_, err := s.Get(ctx, collection, id)
		return err
	}

	_, err = ref.Update(ctx, ops)
	if status.Code(err) == codes.NotFound {
		return docstore.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	return nil
}

// updates uses FieldPath so keys containing dots are not split into nested paths.
func updates(plan docstore.Plan) []firestore.Update {
	var out []firestore.Update
	for _, k := range plan.SetKeys() {
		out = append(out, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: plan.Set[k]})
	}
	for _, k := range plan.UnionKeys() {
		out = append(out, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: firestore.ArrayUnion(plan.Union[k]...)})
	}
	for _, k := range plan.RemoveKeys() {
		out = append(out, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: firestore.ArrayRemove(plan.Remove[k]...)})
	}
	for _, k := range plan.Timestamps {
		out = append(out, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: firestore.ServerTimestamp})
	}
	return out
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if !validID(id) {
		return docstore.ErrNotFound
	}

	_, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return docstore.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Ping lists a single collection id, which needs no document reads.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("ping firestore: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func toDocument(snap *firestore.DocumentSnapshot) docstore.Document {
	return docstore.Document{ID: snap.Ref.ID, Data: docstore.NormalizeMap(snap.Data())}
}
