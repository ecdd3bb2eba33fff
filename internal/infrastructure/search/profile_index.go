// Package search mirrors profiles into Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/pkg/errors"

	"github.com/oksasatya/devconnector-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

type ProfileIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewProfileIndex(es *elasticsearch.Client, index string) *ProfileIndex {
	return &ProfileIndex{ES: es, IndexName: index}
}

// Document is the indexed shape of a profile.
func Document(p *entity.Profile) map[string]any {
	doc := map[string]any{
		"user_id":        p.UserID,
		"status":         p.Status,
		"company":        p.Company,
		"location":       p.Location,
		"bio":            p.Bio,
		"skills":         p.Skills,
		"githubusername": p.GithubUsername,
		"updated_at":     p.UpdatedAt.Format(time.RFC3339Nano),
	}
	if p.User != nil {
		doc["name"] = p.User.Name
		doc["avatar"] = p.User.AvatarURL
	}
	return doc
}

func (x *ProfileIndex) Index(ctx context.Context, p *entity.Profile) error {
	b, err := json.Marshal(Document(p))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: p.UserID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return errors.Wrap(err, "es index")
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (x *ProfileIndex) Delete(ctx context.Context, userID string) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: userID}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return errors.Wrap(err, "es delete")
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Query builds the multi_match body used by Search.
func Query(q string, size int) map[string]any {
	if size <= 0 || size > 50 {
		size = 10
	}
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "skills^2", "status", "company", "location", "bio"},
			},
		},
		"size": size,
	}
}

// Search performs a multi_match search over names, skills and the descriptive fields.
func (x *ProfileIndex) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	b, err := json.Marshal(Query(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.IndexName), x.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, errors.Wrap(err, "es search")
	}
	defer func() { _ = res.Body.Close() }()
	// no profile indexed yet
	if res.StatusCode == http.StatusNotFound {
		return []map[string]any{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
