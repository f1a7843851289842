package extService

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/logger"

	"megaDeOuro/models/external"
	"megaDeOuro/services/common"
)

const DefaultBaseURL = "https://loteriascaixa-api.herokuapp.com/api/mega-sena"

// Cache windows: the latest contest changes twice a week, past contests
// never change.
const (
	latestTTL  = time.Hour
	contestTTL = 24 * time.Hour
)

type cached struct {
	result    *external.MegaSenaResult
	fetchedAt time.Time
}

// Client reads Mega-Sena results from the public loterias-caixa feed with a
// bounded in-memory cache. All lookups degrade gracefully: a feed outage
// returns nil, never an error that blocks a core flow.
type Client struct {
	baseURL string

	mu        sync.Mutex
	latest    *cached
	byContest map[int]*cached
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		byContest: make(map[int]*cached),
	}
}

// Latest returns the most recent published contest, or nil when the feed is
// unavailable.
func (c *Client) Latest() *external.MegaSenaResult {
	c.mu.Lock()
	if c.latest != nil && time.Since(c.latest.fetchedAt) < latestTTL {
		res := c.latest.result
		c.mu.Unlock()
		return res
	}
	c.mu.Unlock()

	var result external.MegaSenaResult
	if err := common.GetJSON(c.baseURL+"/latest", &result); err != nil {
		logger.Warningf("falha ao buscar último sorteio: %v", err)
		return nil
	}

	c.mu.Lock()
	c.latest = &cached{result: &result, fetchedAt: time.Now()}
	c.byContest[result.Concurso] = c.latest
	c.mu.Unlock()
	return &result
}

// ByContest returns one contest's result, or nil when unknown or the feed is
// unavailable.
func (c *Client) ByContest(contest int) *external.MegaSenaResult {
	c.mu.Lock()
	if entry, ok := c.byContest[contest]; ok && time.Since(entry.fetchedAt) < contestTTL {
		res := entry.result
		c.mu.Unlock()
		return res
	}
	c.mu.Unlock()

	var result external.MegaSenaResult
	if err := common.GetJSON(fmt.Sprintf("%s/%d", c.baseURL, contest), &result); err != nil {
		logger.Warningf("falha ao buscar concurso %d: %v", contest, err)
		return nil
	}

	c.mu.Lock()
	c.byContest[contest] = &cached{result: &result, fetchedAt: time.Now()}
	c.mu.Unlock()
	return &result
}
