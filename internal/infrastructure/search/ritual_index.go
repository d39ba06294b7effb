package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/rituday/internal/domain/entity"
)

const (
	requestTimeout    = 3 * time.Second
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// RitualIndex mirrors rituals into an Elasticsearch index for full-text search
// over category and content. The primary store stays the source of truth.
type RitualIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewRitualIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *RitualIndex {
	return &RitualIndex{ES: es, Index: index, Logger: logger}
}

type ritualDoc struct {
	Category  string `json:"category"`
	Content   string `json:"content"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	UserEmail string `json:"userEmail"`
}

func (x *RitualIndex) Put(ctx context.Context, r *entity.Ritual) error {
	b, err := json.Marshal(ritualDoc{
		Category:  r.Category,
		Content:   r.Content,
		Year:      r.Year,
		Month:     r.Month,
		Day:       r.Day,
		UserEmail: r.UserEmail,
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: r.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", r.ID, res.Status())
	}
	return nil
}

func (x *RitualIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// a document that was never indexed is already gone
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over category and content and returns the hits
// in relevance order.
func (x *RitualIndex) Search(ctx context.Context, q string, size int) ([]entity.Ritual, error) {
	body, err := json.Marshal(searchQuery(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		if x.Logger != nil {
			x.Logger.WithField("status", res.Status()).Warn("es search response error")
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}
	return decodeHits(res.Body)
}

func searchQuery(q string, size int) map[string]any {
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"category^2", "content"},
			},
		},
		"size": size,
	}
}

func decodeHits(r io.Reader) ([]entity.Ritual, error) {
	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string    `json:"_id"`
				Source ritualDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Ritual, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, entity.Ritual{
			ID:        h.ID,
			Category:  h.Source.Category,
			Content:   h.Source.Content,
			Year:      h.Source.Year,
			Month:     h.Source.Month,
			Day:       h.Source.Day,
			UserEmail: h.Source.UserEmail,
		})
	}
	return out, nil
}
