package knowledge

import (
	"context"
	"log/slog"
	"strings"
)

// Service answers exercise/equipment questions, preferring the remote
// catalog and degrading to the local keyword tables when the catalog is
// unavailable or has no match. Lookup failures are logged, never fatal.
type Service struct {
	catalog Catalog
	cache   *Cache
	log     *slog.Logger
}

// NewService creates a knowledge service. Both catalog and cache may be
// nil; with no catalog the service runs entirely on the local tables.
func NewService(catalog Catalog, cache *Cache, log *slog.Logger) *Service {
	return &Service{catalog: catalog, cache: cache, log: log}
}

// lookup resolves an exercise profile: cache, then catalog, then the
// built-in table. Returns nil when nothing matches.
func (s *Service) lookup(ctx context.Context, name string) *CatalogExercise {
	if s.cache != nil {
		ex, ok, err := s.cache.Get(name)
		if err != nil {
			s.log.Warn("catalog cache read failed", "exercise", name, "error", err)
		} else if ok {
			return ex
		}
	}

	if s.catalog != nil {
		ex, err := s.catalog.Lookup(ctx, name)
		if err != nil {
			s.log.Warn("catalog lookup failed, using local tables", "exercise", name, "error", err)
		} else if ex != nil {
			if s.cache != nil {
				if err := s.cache.Put(name, ex); err != nil {
					s.log.Warn("catalog cache write failed", "exercise", name, "error", err)
				}
			}
			return ex
		}
	}

	return localLookup(name)
}

// localLookup finds the best built-in table match for a name: exact
// (case-insensitive) first, then substring containment either way.
func localLookup(name string) *CatalogExercise {
	for i := range localExercises {
		if strings.EqualFold(localExercises[i].Name, name) {
			return &localExercises[i]
		}
	}
	lower := strings.ToLower(name)
	for i := range localExercises {
		tableName := strings.ToLower(localExercises[i].Name)
		if strings.Contains(lower, tableName) || strings.Contains(tableName, lower) {
			return &localExercises[i]
		}
	}
	return nil
}

// RequiresEquipment reports whether the exercise needs the given equipment.
func (s *Service) RequiresEquipment(ctx context.Context, exercise, equipment string) bool {
	equipment = NormalizeEquipment(equipment)

	if ex := s.lookup(ctx, exercise); ex != nil {
		return ex.UsesEquipment(equipment)
	}

	// Unknown exercise: fall back to name hints.
	name := strings.ToLower(exercise)
	for _, hint := range equipmentNameHints[equipment] {
		if strings.Contains(name, hint) {
			return true
		}
	}
	return false
}

// FindSubstitute picks a replacement for an exercise whose equipment is
// unavailable. Candidates are restricted to the available equipment and
// scored by muscle overlap (primary ×3, secondary ×1) plus a
// name-similarity bonus; the fallback table covers common pairs when
// scoring finds nothing. Returns ("", false) when no substitute exists.
func (s *Service) FindSubstitute(ctx context.Context, exercise, unavailable, available string) (string, bool) {
	unavailable = NormalizeEquipment(unavailable)
	availList := SplitEquipmentList(available)
	if len(availList) == 0 {
		availList = []string{"bodyweight"}
	}

	target := s.lookup(ctx, exercise)
	if target != nil {
		if best := s.bestCandidate(ctx, exercise, target, unavailable, availList); best != "" {
			return best, true
		}
	}

	if sub, ok := tableSubstitute(exercise, unavailable); ok {
		return sub, true
	}
	return "", false
}

func (s *Service) bestCandidate(ctx context.Context, exerciseName string, target *CatalogExercise, unavailable string, availList []string) string {
	pool := s.candidatePool(ctx, availList)

	var best string
	bestScore := 0
	for _, cand := range pool {
		if strings.EqualFold(cand.Name, exerciseName) || strings.EqualFold(cand.Name, target.Name) {
			continue
		}
		if cand.UsesEquipment(unavailable) {
			continue
		}
		if !compatibleEquipment(cand, availList) {
			continue
		}
		score := substituteScore(target, cand)
		if score > bestScore {
			bestScore = score
			best = cand.Name
		}
	}
	return best
}

func (s *Service) candidatePool(ctx context.Context, availList []string) []CatalogExercise {
	if s.catalog != nil {
		pool, err := s.catalog.ByEquipment(ctx, availList)
		if err != nil {
			s.log.Warn("catalog pool fetch failed, using local tables", "error", err)
		} else if len(pool) > 0 {
			return pool
		}
	}
	return localExercises
}

// compatibleEquipment requires every piece of the candidate's equipment to
// be available; bodyweight is always available.
func compatibleEquipment(ex CatalogExercise, available []string) bool {
	for _, need := range ex.Equipment {
		need = NormalizeEquipment(need)
		if need == "bodyweight" {
			continue
		}
		found := false
		for _, have := range available {
			if have == need {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// substituteScore weights primary-muscle overlap 3×, secondary overlap 1×,
// and adds one point per shared name word.
func substituteScore(target *CatalogExercise, cand CatalogExercise) int {
	score := 3 * overlap(target.PrimaryMuscles, cand.PrimaryMuscles)
	score += overlap(target.SecondaryMuscles, cand.SecondaryMuscles)
	score += nameSimilarity(target.Name, cand.Name)
	return score
}

func overlap(a, b []string) int {
	n := 0
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(x, y) {
				n++
				break
			}
		}
	}
	return n
}

func nameSimilarity(a, b string) int {
	aWords := strings.Fields(strings.ToLower(a))
	n := 0
	for _, w := range aWords {
		if len(w) < 3 {
			continue
		}
		if strings.Contains(strings.ToLower(b), w) {
			n++
		}
	}
	return n
}

func tableSubstitute(exercise, unavailable string) (string, bool) {
	name := strings.ToLower(exercise)
	for key, sub := range fallbackSubstitutes {
		parts := strings.SplitN(key, "|", 2)
		if parts[0] == unavailable && strings.Contains(name, parts[1]) {
			return sub, true
		}
	}
	return "", false
}

// ContraindicationsFor returns exercise block-lists for the user's medical
// conditions, from the catalog when reachable, else the local table.
// Condition matching against the local table is a substring test.
func (s *Service) ContraindicationsFor(ctx context.Context, conditions []string) []Contraindication {
	if len(conditions) == 0 {
		return nil
	}

	if s.catalog != nil {
		rules, err := s.catalog.Contraindications(ctx, conditions)
		if err != nil {
			s.log.Warn("contraindication fetch failed, using local tables", "error", err)
		} else if rules != nil {
			return rules
		}
	}

	var rules []Contraindication
	for _, cond := range conditions {
		lower := strings.ToLower(cond)
		for key, avoid := range fallbackContraindications {
			if strings.Contains(lower, key) {
				rules = append(rules, Contraindication{
					Condition:        cond,
					ExercisesToAvoid: append([]string(nil), avoid...),
				})
			}
		}
	}
	return rules
}
