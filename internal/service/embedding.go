package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"
	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/culinary-compass/backend/internal/logging"
	"github.com/culinary-compass/backend/internal/metrics"
)

// Sentence-transformer models the recipe dataset ships embeddings for.
const (
	ModelMiniLM     = "all-MiniLM-L6-v2"
	ModelMPNet      = "all-mpnet-base-v2"
	ModelParaphrase = "paraphrase-MiniLM-L6-v2"
)

// SupportedEmbeddingModels lists the models a deployment may be configured with.
var SupportedEmbeddingModels = []string{ModelMiniLM, ModelMPNet, ModelParaphrase}

// IsSupportedEmbeddingModel reports whether name is one of SupportedEmbeddingModels.
func IsSupportedEmbeddingModel(name string) bool {
	for _, m := range SupportedEmbeddingModels {
		if m == name {
			return true
		}
	}
	return false
}

// HTTPEmbeddingService calls a feature-extraction endpoint that accepts
// {"inputs": text} and answers with the embedding as a JSON array.
type HTTPEmbeddingService struct {
	url        string
	token      string
	model      string
	dimensions int
	client     *http.Client
	cb         *gobreaker.CircuitBreaker[pgvector.Vector]
}

// HTTPEmbeddingConfig configures NewHTTPEmbeddingService.
type HTTPEmbeddingConfig struct {
	URL   string
	Token string
	Model string
	// Dimensions, when positive, is enforced on every response.
	Dimensions int
	Timeout    time.Duration
}

func NewHTTPEmbeddingService(cfg HTTPEmbeddingConfig) *HTTPEmbeddingService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	name := "embedding-" + cfg.Model
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[pgvector.Vector](gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// A cancelled caller says nothing about backend health.
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("embedding circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &HTTPEmbeddingService{
		url:        cfg.URL,
		token:      cfg.Token,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		client:     &http.Client{Timeout: cfg.Timeout},
		cb:         cb,
	}
}

func (s *HTTPEmbeddingService) ModelName() string {
	return s.model
}

// GenerateEmbedding embeds text through the remote model.
func (s *HTTPEmbeddingService) GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	start := time.Now()
	vec, err := s.cb.Execute(func() (pgvector.Vector, error) {
		return s.request(ctx, text)
	})
	metrics.EmbeddingRequestDuration.Observe(time.Since(start).Seconds())

	name := "embedding-" + s.model
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	}
	return vec, err
}

func (s *HTTPEmbeddingService) request(ctx context.Context, text string) (pgvector.Vector, error) {
	body, err := json.Marshal(map[string]any{"inputs": text})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("failed to create embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	req.Header.Set("x-wait-for-model", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("failed to send embedding request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("failed to read embedding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return pgvector.Vector{}, fmt.Errorf("embedding api error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return pgvector.Vector{}, fmt.Errorf("embedding api error (%d): %s", resp.StatusCode, truncate(string(raw), 200))
	}

	vec, err := decodeEmbedding(raw)
	if err != nil {
		return pgvector.Vector{}, err
	}
	if s.dimensions > 0 && len(vec) != s.dimensions {
		return pgvector.Vector{}, fmt.Errorf("embedding has %d dimensions, want %d", len(vec), s.dimensions)
	}
	return pgvector.NewVector(vec), nil
}

// decodeEmbedding accepts a flat array or a single-row batch.
func decodeEmbedding(raw []byte) ([]float32, error) {
	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	var batch [][]float32
	if err := json.Unmarshal(raw, &batch); err == nil && len(batch) > 0 && len(batch[0]) > 0 {
		return batch[0], nil
	}
	return nil, fmt.Errorf("failed to decode embedding response: %s", truncate(string(raw), 200))
}

// Close releases idle connections held by the client.
func (s *HTTPEmbeddingService) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// CachedEmbeddingService memoizes another EmbeddingService in Redis.
type CachedEmbeddingService struct {
	next  EmbeddingService
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedEmbeddingService(next EmbeddingService, client *redis.Client, ttl time.Duration) *CachedEmbeddingService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedEmbeddingService{next: next, redis: client, ttl: ttl}
}

func (s *CachedEmbeddingService) ModelName() string {
	return s.next.ModelName()
}

// GenerateEmbedding serves from Redis when possible. Redis failures fall
// through to the wrapped service.
func (s *CachedEmbeddingService) GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	key := s.key(text)

	cached, err := s.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		var vec pgvector.Vector
		if scanErr := vec.Scan(cached); scanErr == nil && len(vec.Slice()) > 0 {
			metrics.EmbeddingCacheHits.Inc()
			return vec, nil
		}
		logging.Ctx(ctx).Warn().Str("key", key).Msg("discarding malformed cached embedding")
	case !errors.Is(err, redis.Nil):
		logging.Ctx(ctx).Warn().Err(err).Msg("embedding cache unavailable")
	}
	metrics.EmbeddingCacheMisses.Inc()

	vec, err := s.next.GenerateEmbedding(ctx, text)
	if err != nil {
		return vec, err
	}
	if err := s.redis.Set(ctx, key, vec.String(), s.ttl).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("failed to cache embedding")
	}
	return vec, nil
}

func (s *CachedEmbeddingService) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("embedding:%s:%s", s.next.ModelName(), hex.EncodeToString(sum[:]))
}

// HashingEmbeddingService is a deterministic, offline embedder. Tokens are
// hashed into a fixed number of buckets and the counts are L2-normalized, so
// texts sharing words have positive cosine similarity.
type HashingEmbeddingService struct {
	model      string
	dimensions int
}

func NewHashingEmbeddingService(model string, dimensions int) *HashingEmbeddingService {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &HashingEmbeddingService{model: model, dimensions: dimensions}
}

func (s *HashingEmbeddingService) ModelName() string {
	return s.model
}

func (s *HashingEmbeddingService) GenerateEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	if err := ctx.Err(); err != nil {
		return pgvector.Vector{}, err
	}
	return pgvector.NewVector(HashEmbed(text, s.dimensions)), nil
}

// HashEmbed returns the hashing embedding of text with the given width.
func HashEmbed(text string, dimensions int) []float32 {
	vec := make([]float32, dimensions)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, tok := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		vec[h.Sum32()%uint32(dimensions)]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
