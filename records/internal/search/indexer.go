// Package search maintains a full-text index of case records in
// OpenSearch. Indexing is best effort: the database row is the source
// of truth and index failures are only logged.
package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// Document is what gets indexed for every searchable record.
type Document struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Hit is one search result.
type Hit struct {
	Document
	Score float64 `json:"score"`
}

type Config struct {
	URL      string
	Index    string
	Username string
	Password string
	Insecure bool
}

type Indexer struct {
	client *opensearch.Client
	index  string
	log    *slog.Logger
}

func NewIndexer(cfg Config, log *slog.Logger) (*Indexer, error) {
	httpClient := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.Insecure,
			},
		},
	}

	osCfg := opensearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: httpClient.Transport,
	}

	client, err := opensearch.NewClient(osCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create opensearch client: %w", err)
	}

	info, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to ping opensearch: %w", err)
	}
	defer info.Body.Close()

	if info.IsError() {
		return nil, fmt.Errorf("opensearch returned error: %s", info.Status())
	}

	return &Indexer{
		client: client,
		index:  cfg.Index,
		log:    log,
	}, nil
}

// Index writes one document asynchronously.
func (i *Indexer) Index(doc Document) {
	if i == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		payload, err := json.Marshal(doc)
		if err != nil {
			i.log.Warn("failed to marshal search document", slog.String("error", err.Error()))
			return
		}

		req := opensearchapi.IndexRequest{
			Index:      i.index,
			DocumentID: doc.ID,
			Body:       bytes.NewReader(payload),
		}

		res, err := req.Do(ctx, i.client)
		if err != nil {
			i.log.Warn("failed to index document",
				slog.String("id", doc.ID),
				slog.String("error", err.Error()),
			)
			return
		}
		defer res.Body.Close()

		if res.IsError() {
			i.log.Warn("opensearch rejected document",
				slog.String("id", doc.ID),
				slog.String("status", res.Status()),
			)
		}
	}()
}

// Search runs a match query over title and body.
func (i *Indexer) Search(ctx context.Context, q string, limit int) ([]Hit, error) {
	if i == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q,
				"fields": []string{"title^2", "body"},
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.index),
		i.client.Search.WithBody(&buf),
		i.client.Search.WithSize(limit),
		i.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		// An index that does not exist yet means nothing was indexed.
		if strings.Contains(res.String(), "index_not_found_exception") {
			return nil, nil
		}
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Score  float64  `json:"_score"`
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hits := make([]Hit, 0, len(searchResult.Hits.Hits))
	for _, h := range searchResult.Hits.Hits {
		hits = append(hits, Hit{Document: h.Source, Score: h.Score})
	}

	return hits, nil
}
