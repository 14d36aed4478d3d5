package pathfinder

import (
	"time"

	"github.com/bikemaster2331/pathfinder/core"
)

// AskMonitor provides hooks to observe one pass through the pipeline.
// Implement this interface to track which stage produced the answer.
type AskMonitor interface {
	Start(input string)
	RateLimited(wait time.Duration)
	ProfanityBlocked()
	Classified(result core.IntentResult)
	CacheHit(entry *core.CacheEntry)
	CacheMiss(normalized string)
	Translated(query string)
	Extracted(bundle core.EntityBundle)
	Retrieved(results []*core.SearchResult)
	Finish(answer string, places []core.Place)
}

// noopMonitor is a no-op implementation of AskMonitor.
type noopMonitor struct{}

var _ AskMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) RateLimited(_ time.Duration)          {}
func (n *noopMonitor) ProfanityBlocked()                    {}
func (n *noopMonitor) Classified(_ core.IntentResult)       {}
func (n *noopMonitor) CacheHit(_ *core.CacheEntry)          {}
func (n *noopMonitor) CacheMiss(_ string)                   {}
func (n *noopMonitor) Translated(_ string)                  {}
func (n *noopMonitor) Extracted(_ core.EntityBundle)        {}
func (n *noopMonitor) Retrieved(_ []*core.SearchResult)     {}
func (n *noopMonitor) Finish(_ string, _ []core.Place)      {}
