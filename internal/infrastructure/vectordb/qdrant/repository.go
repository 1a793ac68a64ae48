// Package qdrant provides a FormIndex implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ersonp/legends-codex/internal/domain/entities"
	"github.com/ersonp/legends-codex/internal/domain/ports"
	"github.com/ersonp/legends-codex/internal/infrastructure/config"
)

// formNamespace seeds the deterministic point ids of indexed forms.
var formNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("legends-codex/poetic-form"))

// Payload keys stored with every form.
const (
	payloadFormID      = "form_id"
	payloadDescription = "description"
	payloadWorld       = "world"
)

// Repository implements ports.FormIndex using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository for the configured collection.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("qdrant collection name is required")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if cfg.APIKey != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(apiKeyCredentials(cfg.APIKey)))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: cfg.Collection,
		conn:       conn,
	}, nil
}

// Collection returns the collection this repository writes to.
func (r *Repository) Collection() string {
	return r.collection
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// EnsureCollection creates the collection if it doesn't exist.
func (r *Repository) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	_, err = r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// DeleteCollection removes the collection and all its data.
func (r *Repository) DeleteCollection(ctx context.Context) error {
	_, err := r.client.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// SaveForms upserts forms with their embeddings. Re-indexing a world
// overwrites its earlier points.
func (r *Repository) SaveForms(ctx context.Context, forms []ports.IndexedForm) error {
	if len(forms) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, 0, len(forms))
	for i := range forms {
		points = append(points, formPoint(&forms[i]))
	}

	wait := true
	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Search returns the forms closest to the embedding, best match first.
func (r *Repository) Search(ctx context.Context, embedding []float32, limit int) ([]ports.FormMatch, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	matches := make([]ports.FormMatch, 0, len(resp.Result))
	for _, point := range resp.Result {
		matches = append(matches, scoredPointToMatch(point))
	}

	return matches, nil
}

// PointID returns the stable point id of a form within a world.
func PointID(world string, formID int) string {
	return uuid.NewSHA1(formNamespace, []byte(world+"/"+strconv.Itoa(formID))).String()
}

func formPoint(form *ports.IndexedForm) *pb.PointStruct {
	return &pb.PointStruct{
		Id: &pb.PointId{
			PointIdOptions: &pb.PointId_Uuid{
				Uuid: PointID(form.World, form.Form.ID),
			},
		},
		Vectors: &pb.Vectors{
			VectorsOptions: &pb.Vectors_Vector{
				Vector: &pb.Vector{
					Data: form.Embedding,
				},
			},
		},
		Payload: map[string]*pb.Value{
			payloadFormID:      {Kind: &pb.Value_IntegerValue{IntegerValue: int64(form.Form.ID)}},
			payloadDescription: {Kind: &pb.Value_StringValue{StringValue: form.Form.Description}},
			payloadWorld:       {Kind: &pb.Value_StringValue{StringValue: form.World}},
		},
	}
}

func scoredPointToMatch(point *pb.ScoredPoint) ports.FormMatch {
	return ports.FormMatch{
		Form: entities.PoeticForm{
			ID:          int(getIntValue(point.Payload, payloadFormID)),
			Description: getStringValue(point.Payload, payloadDescription),
		},
		Score: point.Score,
	}
}

func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func getIntValue(payload map[string]*pb.Value, key string) int64 {
	if v, ok := payload[key]; ok {
		return v.GetIntegerValue()
	}
	return 0
}

// apiKeyCredentials sends the Qdrant api-key header on every call.
type apiKeyCredentials string

func (k apiKeyCredentials) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"api-key": string(k)}, nil
}

func (k apiKeyCredentials) RequireTransportSecurity() bool {
	return false
}
