package application

import (
	"context"
	"strings"
	"sync"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultEmptyMessage = "Sin resultados"
	DefaultErrorMessage = "Error: Sin resultados."

	defaultPerPage     = 6
	defaultConcurrency = 6
)

// Outcome is how a fetch cycle ended.
type Outcome int

const (
	// OutcomeNoop means the event did not start a fetch.
	OutcomeNoop Outcome = iota
	OutcomeRendered
	OutcomeEmpty
	OutcomeError
	// OutcomeStale means a newer fetch started before this one resolved,
	// so its result was discarded.
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRendered:
		return "rendered"
	case OutcomeEmpty:
		return "empty"
	case OutcomeError:
		return "error"
	case OutcomeStale:
		return "stale"
	default:
		return "noop"
	}
}

type Options struct {
	PerPage      int
	EmptyMessage string
	ErrorMessage string
	// Concurrency bounds the featured-image lookups of one page.
	Concurrency int
	// RefetchOnNavigate reloads the gallery every time the news section is
	// shown; otherwise only when the gallery is still empty.
	RefetchOnNavigate bool
}

func (o Options) withDefaults() Options {
	if o.PerPage <= 0 {
		o.PerPage = defaultPerPage
	}
	if o.EmptyMessage == "" {
		o.EmptyMessage = DefaultEmptyMessage
	}
	if o.ErrorMessage == "" {
		o.ErrorMessage = DefaultErrorMessage
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	return o
}

// Controller runs the fetch/paginate/search cycle of one gallery page.
//
// Every fetch takes a generation number when it starts. Only the fetch
// holding the latest generation may render when it resolves, so a slow
// response can never overwrite a newer one.
type Controller struct {
	source   domain.ContentSource
	resolver *MediaResolver
	view     domain.View
	opts     Options

	mu         sync.Mutex
	state      domain.PageState
	generation uint64
	inflight   int
}

func NewController(source domain.ContentSource, resolver *MediaResolver, view domain.View, opts Options) *Controller {
	return &Controller{
		source:   source,
		resolver: resolver,
		view:     view,
		opts:     opts.withDefaults(),
		state:    domain.NewPageState(),
	}
}

// State returns a copy of the current page state.
func (c *Controller) State() domain.PageState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Load fetches the page the controller is currently positioned on.
func (c *Controller) Load(ctx context.Context) Outcome {
	s := c.State()
	return c.FetchPosts(ctx, s.CurrentPage, s.ActiveQuery)
}

// FetchPosts loads one page of posts and renders it. Failures are logged and
// rendered as a message; they are never returned.
func (c *Controller) FetchPosts(ctx context.Context, page int, query string) Outcome {
	q := domain.PageState{CurrentPage: page, ActiveQuery: query}.Normalize()

	gen := c.begin(q)
	defer c.finish()

	result, err := c.source.ListPosts(ctx, domain.PostQuery{
		Page:    q.CurrentPage,
		PerPage: c.opts.PerPage,
		Search:  q.ActiveQuery,
	})
	if err != nil {
		log.Error().Err(err).Int("page", q.CurrentPage).Str("query", q.ActiveQuery).Msg("Error fetching posts")
		return c.commit(gen, OutcomeError, func() {
			c.view.SetPagination(true, true)
			c.view.RenderMessage(c.opts.ErrorMessage)
		})
	}

	if len(result.Posts) == 0 {
		return c.commit(gen, OutcomeEmpty, func() {
			c.view.RenderMessage(c.opts.EmptyMessage)
			c.view.SetPagination(true, true)
		})
	}

	items := c.resolveAll(ctx, result.Posts)

	return c.commit(gen, OutcomeRendered, func() {
		c.view.RenderGallery(items)
		c.view.SetPagination(q.CurrentPage <= 1, q.CurrentPage >= result.TotalPages)
	})
}

// resolveAll resolves every post concurrently; items keep the order of posts.
func (c *Controller) resolveAll(ctx context.Context, posts []domain.Post) []domain.GalleryItem {
	items := make([]domain.GalleryItem, len(posts))

	var g errgroup.Group
	g.SetLimit(c.opts.Concurrency)
	for i, post := range posts {
		g.Go(func() error {
			items[i] = c.resolver.ResolveGalleryItem(ctx, post)
			return nil
		})
	}
	_ = g.Wait()

	return items
}

func (c *Controller) begin(q domain.PageState) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.inflight++
	c.view.ShowSpinner()
	if q.Filtered() {
		c.view.ShowSearchResults(q.ActiveQuery)
	} else {
		c.view.HideSearchResults()
	}
	return c.generation
}

func (c *Controller) commit(gen uint64, outcome Outcome, render func()) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		log.Debug().Uint64("generation", gen).Uint64("latest", c.generation).Msg("Discarding stale gallery fetch")
		return OutcomeStale
	}
	render()
	return outcome
}

func (c *Controller) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight--
	if c.inflight == 0 {
		c.view.HideSpinner()
	}
}

// NextPage advances one page and fetches it. There is no upper bound here;
// the next control is disabled on the last page.
func (c *Controller) NextPage(ctx context.Context) Outcome {
	c.mu.Lock()
	c.state.CurrentPage++
	s := c.state
	c.mu.Unlock()

	return c.FetchPosts(ctx, s.CurrentPage, s.ActiveQuery)
}

// PrevPage goes back one page and fetches it. It does nothing on page 1.
func (c *Controller) PrevPage(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.state.CurrentPage <= 1 {
		c.mu.Unlock()
		return OutcomeNoop
	}
	c.state.CurrentPage--
	s := c.state
	c.mu.Unlock()

	return c.FetchPosts(ctx, s.CurrentPage, s.ActiveQuery)
}

// Search filters the gallery by query starting from page 1 and closes the
// search modal. A blank query returns domain.ErrEmptyQuery and leaves the
// modal open.
func (c *Controller) Search(ctx context.Context, query string) (Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return OutcomeNoop, domain.ErrEmptyQuery
	}

	c.mu.Lock()
	c.state = domain.PageState{CurrentPage: 1, ActiveQuery: query}
	c.mu.Unlock()

	c.view.SetSearchModal(false)
	return c.FetchPosts(ctx, 1, query), nil
}

// ClearSearch drops the active query and fetches page 1 unfiltered.
func (c *Controller) ClearSearch(ctx context.Context) Outcome {
	c.mu.Lock()
	c.state = domain.NewPageState()
	c.mu.Unlock()

	c.view.SetSearchModal(false)
	return c.FetchPosts(ctx, 1, "")
}

func (c *Controller) OpenSearch() {
	c.view.SetSearchModal(true)
}

func (c *Controller) CloseSearch() {
	c.view.SetSearchModal(false)
}

// ShowSection displays the named section and hides the others. Showing the
// news section loads page 1 when the gallery is empty, or always when
// RefetchOnNavigate is set.
func (c *Controller) ShowSection(ctx context.Context, name string) (Outcome, error) {
	if !domain.IsSection(name) {
		return OutcomeNoop, domain.ErrUnknownSection
	}

	c.view.ShowSection(name)

	if name != domain.SectionNews {
		return OutcomeNoop, nil
	}
	if !c.opts.RefetchOnNavigate && !c.view.GalleryEmpty() {
		return OutcomeNoop, nil
	}

	c.mu.Lock()
	c.state = domain.NewPageState()
	c.mu.Unlock()

	return c.FetchPosts(ctx, 1, ""), nil
}
