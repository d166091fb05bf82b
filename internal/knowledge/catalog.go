package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CatalogExercise describes one exercise: the muscles it works and the
// equipment it needs.
type CatalogExercise struct {
	Name             string   `json:"name"`
	PrimaryMuscles   []string `json:"primaryMuscles"`
	SecondaryMuscles []string `json:"secondaryMuscles,omitempty"`
	Equipment        []string `json:"equipment"`
}

// UsesEquipment reports whether the exercise needs the given (canonical)
// equipment term.
func (e CatalogExercise) UsesEquipment(equipment string) bool {
	for _, eq := range e.Equipment {
		if NormalizeEquipment(eq) == equipment {
			return true
		}
	}
	return false
}

// Contraindication is a block-list of exercises to avoid for one medical
// condition.
type Contraindication struct {
	Condition        string   `json:"condition"`
	ExercisesToAvoid []string `json:"exercisesToAvoid"`
}

// Catalog is the external exercise-knowledge port. Lookup returns
// (nil, nil) when the catalog has no entry for the name; errors mean the
// catalog itself was unreachable and the caller should fall back to the
// local heuristics.
type Catalog interface {
	Lookup(ctx context.Context, name string) (*CatalogExercise, error)
	ByEquipment(ctx context.Context, equipment []string) ([]CatalogExercise, error)
	Contraindications(ctx context.Context, conditions []string) ([]Contraindication, error)
}

// RESTCatalog implements Catalog against the exercise catalog HTTP API.
type RESTCatalog struct {
	baseURL    string
	httpClient *http.Client
}

var _ Catalog = (*RESTCatalog)(nil)

// NewRESTCatalog creates a catalog client targeting the given base URL.
func NewRESTCatalog(baseURL string) *RESTCatalog {
	return &RESTCatalog{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *RESTCatalog) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// Lookup fetches a single exercise by name.
func (c *RESTCatalog) Lookup(ctx context.Context, name string) (*CatalogExercise, error) {
	params := url.Values{}
	params.Set("name", name)

	body, err := c.get(ctx, "/api/v1/exercises/lookup", params)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}

	var ex CatalogExercise
	if err := json.Unmarshal(body, &ex); err != nil {
		return nil, fmt.Errorf("catalog: decode exercise: %w", err)
	}
	return &ex, nil
}

// ByEquipment fetches all exercises doable with the given equipment.
func (c *RESTCatalog) ByEquipment(ctx context.Context, equipment []string) ([]CatalogExercise, error) {
	params := url.Values{}
	params.Set("equipment", strings.Join(equipment, ","))

	body, err := c.get(ctx, "/api/v1/exercises", params)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}

	var out []CatalogExercise
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("catalog: decode exercises: %w", err)
	}
	return out, nil
}

// Contraindications fetches exercise block-lists for the given conditions.
func (c *RESTCatalog) Contraindications(ctx context.Context, conditions []string) ([]Contraindication, error) {
	params := url.Values{}
	params.Set("conditions", strings.Join(conditions, ","))

	body, err := c.get(ctx, "/api/v1/contraindications", params)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}

	var out []Contraindication
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("catalog: decode contraindications: %w", err)
	}
	return out, nil
}
