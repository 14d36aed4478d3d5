// Copyright 2025 The Pathfinder Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pathfinder

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/bikemaster2331/pathfinder/ai"
	"github.com/bikemaster2331/pathfinder/ai/openai"
	"github.com/bikemaster2331/pathfinder/cache"
	"github.com/bikemaster2331/pathfinder/config"
	"github.com/bikemaster2331/pathfinder/core"
	"github.com/bikemaster2331/pathfinder/enhance"
	"github.com/bikemaster2331/pathfinder/extract"
	"github.com/bikemaster2331/pathfinder/geo"
	"github.com/bikemaster2331/pathfinder/ingest"
	"github.com/bikemaster2331/pathfinder/intent"
	"github.com/bikemaster2331/pathfinder/ratelimit"
	"github.com/bikemaster2331/pathfinder/storage"
	storagebadger "github.com/bikemaster2331/pathfinder/storage/badger"
	"github.com/bikemaster2331/pathfinder/translate"
)

// Pipeline is the synchronous query orchestrator. It owns no persistent
// state itself; it coordinates the admission gates, the cache, retrieval,
// and the background enhancer. Safe for concurrent use.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger

	backend   *storagebadger.Backend
	facts     storage.FactRepository
	cacheRepo storage.CacheRepository

	provider  ai.Provider
	limiter   *ratelimit.Limiter
	profanity *profanityFilter
	gate      *intent.Gate
	extractor *extract.Extractor
	places    *geo.Lookup
	answers   *cache.SemanticCache
	enhancer  *enhance.Enhancer
	protector *translate.Protector
	ingestor  *ingest.Ingestor
}

// Option configures a Pipeline.
type Option func(*pipelineOptions)

type pipelineOptions struct {
	provider   ai.Provider
	translator translate.Translator
	logger     *slog.Logger
}

// WithProvider injects an AI provider, replacing the OpenAI-compatible
// default built from the configuration.
func WithProvider(provider ai.Provider) Option {
	return func(o *pipelineOptions) { o.provider = provider }
}

// WithTranslator injects a translator, replacing the one selected by the
// configuration.
func WithTranslator(translator translate.Translator) Option {
	return func(o *pipelineOptions) { o.translator = translator }
}

// WithLogger sets the logger used by the pipeline and its components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *pipelineOptions) { o.logger = logger }
}

// New constructs the pipeline. Any failure here is fatal to startup:
// there is no degraded mode without a knowledge base. When the stored
// dataset fingerprint differs from the dataset file, the fact collection
// is rebuilt before New returns.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &pipelineOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	backend, err := storagebadger.OpenBackend(cfg.Storage.Path, cfg.Storage.InMemory)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage backend: %w", err)
	}

	p := &Pipeline{
		cfg:       cfg,
		logger:    logger.With("component", "pipeline"),
		backend:   backend,
		facts:     storagebadger.NewFactRepository(backend),
		cacheRepo: storagebadger.NewCacheRepository(backend),
		limiter:   ratelimit.New(cfg.Security.RateLimit.MaxRequests, time.Duration(cfg.Security.RateLimit.PeriodSeconds)*time.Second),
		profanity: newProfanityFilter(cfg.Profanity),
	}

	p.provider = options.provider
	if p.provider == nil {
		aiCfg := ai.NewConfig(
			ai.WithEmbeddingHost(cfg.AI.EmbeddingHost),
			ai.WithRewriteHost(cfg.AI.RewriteHost),
			ai.WithEmbeddingModel(cfg.AI.EmbeddingModel),
			ai.WithRewriteModel(cfg.AI.RewriteModel),
			ai.WithToken(cfg.AI.Token),
		)
		p.provider, err = openai.NewProvider(aiCfg)
		if err != nil {
			backend.Close()
			return nil, fmt.Errorf("failed to create AI provider: %w", err)
		}
	}

	p.gate, err = intent.NewGate(ctx, p.provider.Embedder(), cfg.Keywords,
		intent.WithLogger(logger.With("component", "intent")),
		intent.WithKeywordThresholds(float64(cfg.Intent.KeywordThreshold), float64(cfg.Intent.KeywordThresholdShort)),
		intent.WithMaxConsonantRun(cfg.Intent.MaxConsonantRun),
	)
	if err != nil {
		p.closePartial()
		return nil, err
	}

	placeNames := make([]string, 0, len(cfg.Places))
	gazetteer := make(map[string]core.Place, len(cfg.Places))
	for name, pc := range cfg.Places {
		placeNames = append(placeNames, name)
		gazetteer[name] = core.Place{
			Name:         name,
			Lat:          pc.Lat,
			Lng:          pc.Lng,
			Category:     pc.Category,
			Municipality: pc.Municipality,
		}
	}

	p.extractor = extract.NewExtractor(extract.Lexicons{
		PlaceNames:     placeNames,
		Municipalities: config.Municipalities,
		Keywords:       cfg.Keywords,
		TownHints:      config.TownHints,
	})

	p.places, err = geo.NewLookup(ctx, p.provider.Embedder(), gazetteer,
		geo.WithLogger(logger.With("component", "geo")),
		geo.WithThresholds(cfg.Geo.SemanticThreshold, cfg.Geo.FuzzyThreshold),
	)
	if err != nil {
		p.closePartial()
		return nil, err
	}

	p.answers = cache.New(p.cacheRepo, p.provider.Embedder(),
		cache.WithLogger(logger.With("component", "cache")),
		cache.WithThreshold(cfg.Cache.SimilarityThreshold),
	)

	p.enhancer = enhance.New(p.answers, p.provider.Rewriter(),
		enhance.WithLogger(logger.With("component", "enhancer")),
		enhance.WithQueueSize(cfg.Enhancer.QueueSize),
		enhance.WithTimeout(time.Duration(cfg.Enhancer.TimeoutSeconds)*time.Second),
	)

	translator := options.translator
	if translator == nil {
		if cfg.Translate.Enabled {
			var googleOpts []translate.GoogleOption
			if cfg.Translate.Host != "" {
				googleOpts = append(googleOpts, translate.WithHost(cfg.Translate.Host))
			}
			translator = translate.NewGoogle(googleOpts...)
		} else {
			translator = translate.Noop{}
		}
	}
	p.protector = translate.NewProtector(translator, cfg.ProtectedPlaces)

	p.ingestor, err = ingest.NewIngestor(p.facts, p.provider.Embedder(),
		ingest.WithLogger(logger.With("component", "ingest")),
	)
	if err != nil {
		p.closePartial()
		return nil, err
	}

	if err := p.ensureIndex(ctx); err != nil {
		p.closePartial()
		return nil, err
	}

	p.enhancer.Start()
	return p, nil
}

// ensureIndex rebuilds the fact collection when the dataset fingerprint
// changed. A missing dataset file is tolerated as long as the store
// already holds records.
func (p *Pipeline) ensureIndex(ctx context.Context) error {
	needs, err := p.ingestor.NeedsRebuild(ctx, p.cfg.Dataset.Path)
	if err != nil {
		count, countErr := p.facts.Count(ctx)
		if countErr == nil && count > 0 {
			p.logger.Warn("dataset unavailable, keeping existing fact collection",
				"dataset", p.cfg.Dataset.Path, "records", count, "error", err)
			return nil
		}
		return fmt.Errorf("no usable knowledge base: %w", err)
	}
	if !needs {
		count, _ := p.facts.Count(ctx)
		p.logger.Info("fact collection up to date", "records", count)
		return nil
	}

	n, err := p.ingestor.Build(ctx, p.cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("failed to build fact collection: %w", err)
	}
	p.logger.Info("fact collection built", "records", n)
	return nil
}

// Ask answers one user utterance. It always returns an answer: admission
// rejections and classification failures produce canned messages, and
// unexpected per-request errors degrade to a safe fallback.
func (p *Pipeline) Ask(ctx context.Context, input string) (string, []core.Place) {
	return p.AskWithMonitor(ctx, input, nil)
}

// AskWithMonitor is Ask with observation hooks. A nil monitor is valid.
func (p *Pipeline) AskWithMonitor(ctx context.Context, input string, monitor AskMonitor) (answer string, places []core.Place) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic during ask, returning fallback", "panic", r)
			answer = p.cfg.Messages.Fallback
			places = nil
		}
	}()

	start := time.Now()
	monitor.Start(input)

	if !p.limiter.Allow() {
		wait := p.limiter.RemainingWait()
		monitor.RateLimited(wait)
		seconds := int(math.Ceil(wait.Seconds()))
		return fmt.Sprintf(p.cfg.Messages.RateLimited, seconds), nil
	}

	if p.profanity.Contains(input) {
		monitor.ProfanityBlocked()
		return p.cfg.Messages.Profanity, nil
	}

	normalized := intent.Normalize(input)

	result := p.gate.Classify(ctx, input)
	monitor.Classified(result)
	p.logger.Debug("intent classified",
		"intent", result.Intent.String(), "confidence", result.Confidence, "reason", result.Reason)

	switch {
	case result.Intent == core.IntentNonsense || !result.IsValid:
		return p.cfg.Messages.Nonsense, nil
	case result.Intent == core.IntentGreeting:
		return p.cfg.Messages.Greeting, nil
	}

	if entry, err := p.answers.Get(ctx, normalized); err != nil {
		p.logger.Warn("cache lookup failed, proceeding to retrieval", "error", err)
	} else if entry != nil {
		if entry.Revision == core.RevisionRaw {
			// Re-enqueueing is idempotent: worst case duplicate work.
			p.enhancer.Enqueue(entry.Query, entry.Answer, entry.Answer)
		}
		monitor.CacheHit(entry)
		p.logger.Debug("served from cache", "elapsed", time.Since(start).Round(time.Millisecond))
		return entry.Answer, entry.Places
	}
	monitor.CacheMiss(normalized)

	translated := p.protector.Run(ctx, input)
	monitor.Translated(translated)

	bundle := p.extractor.Extract(translated)
	monitor.Extracted(bundle)

	results, err := p.retrieve(ctx, translated, bundle)
	if err != nil {
		p.logger.Error("retrieval failed", "error", err)
		return p.cfg.Messages.Fallback, nil
	}
	monitor.Retrieved(results)

	if len(results) == 0 {
		// "No information" answers are not cached: the knowledge base may
		// grow and the miss should be retried next time.
		return p.cfg.Messages.NoInfo, nil
	}

	rawAnswer := composeAnswer(results)
	places = p.resolvePlaces(ctx, results, bundle)

	if err := p.answers.Set(ctx, normalized, rawAnswer, places); err != nil {
		p.logger.Warn("failed to cache answer", "error", err)
	}
	p.enhancer.Enqueue(normalized, rawAnswer, rawAnswer)

	monitor.Finish(rawAnswer, places)
	p.logger.Debug("served raw answer",
		"facts", len(results), "elapsed", time.Since(start).Round(time.Millisecond))
	return rawAnswer, places
}

// retrieve runs the tiered retrieval policy. Two or more specific places
// produce one lookup per place unioned into a checklist; otherwise a
// single search sized and thresholded by listing intent, with an
// unfiltered fallback when the filtered search comes up empty.
func (p *Pipeline) retrieve(ctx context.Context, query string, bundle core.EntityBundle) ([]*core.SearchResult, error) {
	vector, err := p.provider.Embedder().EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	specific := specificPlaces(bundle.Places)
	if len(specific) >= 2 {
		return p.retrievePerPlace(ctx, vector, specific)
	}

	minSim := p.cfg.Retrieval.MinSimilaritySpecific
	limit := p.cfg.Retrieval.SpecificCandidates
	keep := p.cfg.Retrieval.SpecificKeep
	if bundle.IsListing {
		minSim = p.cfg.Retrieval.MinSimilarityListing
		limit = p.cfg.Retrieval.ListingCandidates
		keep = p.cfg.Retrieval.ListingKeep
	}

	filter := buildFilter(bundle)
	results, err := p.facts.Query(ctx, vector, minSim, limit, filter)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 && !filter.Empty() {
		// The filter may be over-constrained; better a looser answer
		// than none.
		results, err = p.facts.Query(ctx, vector, minSim, limit, nil)
		if err != nil {
			return nil, err
		}
	}
	return dedupeByPlace(results, keep), nil
}

// retrievePerPlace answers "compare A and B" style queries: the top fact
// per named place, in the order the places were mentioned.
func (p *Pipeline) retrievePerPlace(ctx context.Context, vector []float32, places []string) ([]*core.SearchResult, error) {
	var out []*core.SearchResult
	seen := make(map[string]bool)

	for _, place := range places {
		results, err := p.facts.Query(ctx, vector, p.cfg.Retrieval.MinSimilarityListing, 1,
			&storage.Filter{Places: []string{place}})
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			continue
		}
		key := strings.ToLower(results[0].Record.PlaceName)
		if key == "" {
			key = strings.ToLower(place)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, results[0])
	}
	return out, nil
}

// specificPlaces drops bare municipality names: "Virac" alone is a
// region, not a checklist item.
func specificPlaces(places []string) []string {
	var out []string
	for _, p := range places {
		lower := strings.ToLower(p)
		isMunicipality := false
		for _, m := range config.Municipalities {
			if lower == m {
				isMunicipality = true
				break
			}
		}
		if !isMunicipality {
			out = append(out, p)
		}
	}
	return out
}

// buildFilter maps extracted slots to a retrieval filter. Slot priority
// follows extraction quality: places constrain hardest, then activities,
// then the categorical attributes.
func buildFilter(bundle core.EntityBundle) *storage.Filter {
	filter := &storage.Filter{
		Activities: bundle.Activities,
		Budget:     bundle.Budget,
		GroupType:  bundle.GroupType,
		SkillLevel: bundle.SkillLevel,
	}
	if len(bundle.Places) > 0 {
		filter.Places = bundle.Places
	} else if bundle.InferredTown != "" {
		filter.Places = []string{bundle.InferredTown}
	}
	return filter
}

// dedupeByPlace keeps the most relevant fact per place tag, preserving
// relevance order, and truncates to keep.
func dedupeByPlace(results []*core.SearchResult, keep int) []*core.SearchResult {
	var out []*core.SearchResult
	seen := make(map[string]bool)

	for _, r := range results {
		key := strings.ToLower(r.Record.PlaceName)
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, r)
		if len(out) == keep {
			break
		}
	}
	return out
}

// composeAnswer concatenates the kept facts, most relevant first. The
// short summary is preferred over the full answer text.
func composeAnswer(results []*core.SearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		text := r.Record.Summary
		if text == "" {
			text = r.Record.Answer
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}

// resolvePlaces maps the answer's place tags to map pins. Fact tags come
// first, then places the user named; unresolvable tags are skipped.
func (p *Pipeline) resolvePlaces(ctx context.Context, results []*core.SearchResult, bundle core.EntityBundle) []core.Place {
	var tags []string
	for _, r := range results {
		if r.Record.PlaceName != "" {
			tags = append(tags, r.Record.PlaceName)
		}
	}
	tags = append(tags, bundle.Places...)

	var out []core.Place
	seen := make(map[string]bool)
	for _, tag := range tags {
		if len(out) == p.cfg.Retrieval.MaxPlaces {
			break
		}
		place := p.places.Resolve(ctx, tag)
		if place == nil || seen[strings.ToLower(place.Name)] {
			continue
		}
		seen[strings.ToLower(place.Name)] = true
		out = append(out, *place)
	}
	return out
}

// Rebuild wipes and reloads the fact collection from the dataset file.
// Returns the number of records loaded.
func (p *Pipeline) Rebuild(ctx context.Context) (int, error) {
	return p.ingestor.Build(ctx, p.cfg.Dataset.Path)
}

// Status reports health and collection sizes.
type Status struct {
	FactCount          int
	CacheCount         int
	DatasetFingerprint string
}

// Status returns collection counts and the stored dataset fingerprint.
func (p *Pipeline) Status(ctx context.Context) (*Status, error) {
	factCount, err := p.facts.Count(ctx)
	if err != nil {
		return nil, err
	}
	cacheCount, err := p.answers.Count(ctx)
	if err != nil {
		return nil, err
	}
	fp, err := p.facts.Fingerprint(ctx)
	if err != nil {
		return nil, err
	}
	return &Status{FactCount: factCount, CacheCount: cacheCount, DatasetFingerprint: fp}, nil
}

// Close stops the background worker and releases every resource.
func (p *Pipeline) Close() error {
	if p.enhancer != nil {
		p.enhancer.Stop()
	}
	return p.closePartial()
}

// closePartial releases whatever has been constructed so far.
func (p *Pipeline) closePartial() error {
	if p.ingestor != nil {
		p.ingestor.Release()
	}
	if p.provider != nil {
		if err := p.provider.Close(); err != nil {
			p.logger.Error("error closing AI provider", "err", err)
		}
	}
	if p.facts != nil {
		if err := p.facts.Close(); err != nil {
			p.logger.Error("error closing fact repository", "err", err)
		}
	}
	if p.cacheRepo != nil {
		if err := p.cacheRepo.Close(); err != nil {
			p.logger.Error("error closing cache repository", "err", err)
		}
	}
	if p.backend != nil {
		return p.backend.Close()
	}
	return nil
}
