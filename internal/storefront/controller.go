package storefront

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"kloth-be/internal/carousel"
	"kloth-be/internal/category"
	"kloth-be/internal/logger"
	"kloth-be/internal/product"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Shopper-facing notification texts.
const (
	MsgCategoriesFailed = "Error loading categories"
	MsgCarouselFailed   = "Error loading carousel"
	MsgCountFailed      = "Error fetching total products count"
	MsgProductsFailed   = "Error fetching products"
	MsgLoadMoreFailed   = "Error loading more products"
	MsgFilterFailed     = "Error applying filters"
	MsgCartSaved        = "Item Added to cart"
	MsgCartSaveFailed   = "Item added, but the cart could not be saved"
)

type filterRequest struct {
	seq     uint64
	filters FilterState
}

// Controller drives the catalog page: facets, pagination and the cart.
//
// Two counters order concurrent work. seq increases on every filter
// mutation and tags debounced queries; a filtered response is applied
// only when its seq is still the latest. epoch increases whenever the
// owner of the product list changes; a page response is applied only
// when issued in the current epoch.
//
// The product list is replaced only by a successful fetch. owner records
// which mode produced it, so a failed mode switch leaves the previous
// list on screen without letting pagination extend a filtered result.
type Controller struct {
	svc    CatalogService
	cart   *Cart
	notify Notifier
	log    *zap.Logger
	views  *ViewBuilder

	debounce *Debouncer[filterRequest]
	inflight sync.WaitGroup

	mu         sync.Mutex
	base       context.Context
	cancel     context.CancelFunc
	state      State
	filters    FilterState
	page       PageState
	categories []*category.Category
	carousel   []*carousel.Item
	owner      Mode
	seq        uint64
	epoch      uint64
}

// NewController wires a controller; quiet <= 0 uses DefaultQuietPeriod.
func NewController(svc CatalogService, cart *Cart, notify Notifier, log *zap.Logger, quiet time.Duration) *Controller {
	if log == nil {
		log = logger.Named("storefront")
	}
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}

	c := &Controller{
		svc:    svc,
		cart:   cart,
		notify: notify,
		log:    log,
		views:  NewViewBuilder(svc.ProductImageURL),
		state:  StateIdle,
		page:   PageState{Page: 1},
	}
	c.debounce = NewDebouncer(quiet, c.runFilter)
	return c
}

// Mount fetches facets, carousel, count and the first page in parallel.
// Each failure is notified on its own and never blocks the others.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.base, c.cancel = context.WithCancel(ctx)
	base := c.base
	c.filters = FilterState{}
	c.page = PageState{Page: 1}
	c.owner = ModePaginated
	c.state = StateLoadingInitial
	c.seq++
	c.epoch++
	epoch := c.epoch
	c.mu.Unlock()

	var g errgroup.Group

	g.Go(func() error {
		cats, err := c.svc.ListCategories(base)
		if err != nil {
			c.log.Warn("list categories failed", zap.Error(err))
			c.notify.Error(MsgCategoriesFailed)
			return nil
		}
		c.mu.Lock()
		c.categories = cats
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		items, err := c.svc.ListCarouselItems(base)
		if err != nil {
			c.log.Warn("list carousel failed", zap.Error(err))
			c.notify.Error(MsgCarouselFailed)
			return nil
		}
		c.mu.Lock()
		c.carousel = items
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		total, err := c.svc.CountProducts(base)
		if err != nil {
			c.log.Warn("count products failed", zap.Error(err))
			c.notify.Error(MsgCountFailed)
			return nil
		}
		c.mu.Lock()
		c.page.Total = total
		c.page.TotalKnown = true
		c.clampLocked()
		c.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		c.loadFirstPage(base, epoch)
		return nil
	})

	_ = g.Wait()
}

// Unmount stops pending and in-flight work. Late responses are discarded.
func (c *Controller) Unmount() {
	c.mu.Lock()
	c.seq++
	c.epoch++
	if c.cancel != nil {
		c.cancel()
	}
	c.base, c.cancel = nil, nil
	c.debounce.CancelPending()
	c.mu.Unlock()

	c.inflight.Wait()
}

func (c *Controller) ToggleCategory(ctx context.Context, id string, checked bool) error {
	c.mu.Lock()
	next := c.filters.withCategory(id, checked)
	c.mu.Unlock()
	return c.applyFilters(ctx, next)
}

func (c *Controller) SelectPriceRange(ctx context.Context, r PriceRange) error {
	c.mu.Lock()
	next := c.filters.withPrice(&r)
	c.mu.Unlock()
	return c.applyFilters(ctx, next)
}

func (c *Controller) ClearPriceRange(ctx context.Context) error {
	c.mu.Lock()
	next := c.filters.withPrice(nil)
	c.mu.Unlock()
	return c.applyFilters(ctx, next)
}

// FlushFilters sends a pending filtered query now instead of after the quiet period.
func (c *Controller) FlushFilters() bool {
	return c.debounce.Flush()
}

// applyFilters installs next. Active filters schedule a debounced query;
// an empty filter set returns to pagination at page 1.
func (c *Controller) applyFilters(ctx context.Context, next FilterState) error {
	c.mu.Lock()
	if c.base == nil {
		c.mu.Unlock()
		return ErrNotMounted
	}

	c.filters = next
	c.seq++
	c.epoch++

	if next.Active() {
		c.state = StateLoadingFiltered
		c.debounce.Schedule(filterRequest{seq: c.seq, filters: next.clone()})
		c.mu.Unlock()
		return nil
	}

	c.debounce.CancelPending()
	c.state = StateLoadingInitial
	epoch := c.epoch
	c.mu.Unlock()

	c.loadFirstPage(ctx, epoch)
	return nil
}

// Reset clears every facet and reloads the first unfiltered page.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	if c.base == nil {
		c.mu.Unlock()
		return ErrNotMounted
	}
	c.debounce.CancelPending()
	c.filters = FilterState{}
	c.seq++
	c.epoch++
	c.state = StateLoadingInitial
	epoch := c.epoch
	c.mu.Unlock()

	c.loadFirstPage(ctx, epoch)
	return nil
}

// LoadMore appends the next page. It is refused while loading, in
// filtered mode, while a filtered list is still shown, or once every
// product is loaded.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if err := c.loadMoreGuardLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	next := c.page.Page + 1
	c.state = StateLoadingMore
	epoch := c.epoch
	c.mu.Unlock()

	products, err := c.svc.ListProducts(ctx, next)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		c.log.Debug("discarding superseded page", zap.Int("page", next))
		return nil
	}
	if err != nil {
		c.settleLocked()
		c.mu.Unlock()
		c.log.Warn("load more failed", zap.Int("page", next), zap.Error(err))
		c.notify.Error(MsgLoadMoreFailed)
		return nil
	}
	c.page.Page = next
	c.page.Products = slices.Concat(c.page.Products, products)
	c.clampLocked()
	c.settleLocked()
	c.mu.Unlock()
	return nil
}

// CanLoadMore reports whether the load-more control is offered and enabled.
func (c *Controller) CanLoadMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadMoreGuardLocked() == nil
}

// AddToCart appends p to the cart. A storage failure is notified and
// returned; the entry stays in the in-memory cart.
func (c *Controller) AddToCart(ctx context.Context, p *product.Product) error {
	if err := c.cart.Add(ctx, p); err != nil {
		c.log.Error("cart write failed", zap.String("product_id", p.ID), zap.Error(err))
		c.notify.Error(MsgCartSaveFailed)
		return err
	}
	c.notify.Success(MsgCartSaved)
	return nil
}

func (c *Controller) Cart() *Cart { return c.cart }

// Mode is derived from the filter state alone.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return modeOf(c.filters)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	State      State
	Mode       Mode
	Filters    FilterState
	Page       PageState
	Categories []*category.Category
	Carousel   []*carousel.Item
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	page := c.page
	page.Products = slices.Clone(c.page.Products)
	return Snapshot{
		State:      c.state,
		Mode:       modeOf(c.filters),
		Filters:    c.filters.clone(),
		Page:       page,
		Categories: slices.Clone(c.categories),
		Carousel:   slices.Clone(c.carousel),
	}
}

// View builds the render model of the current state.
func (c *Controller) View() PageView {
	s := c.Snapshot()
	canLoadMore := c.CanLoadMore()

	v := PageView{
		State:      s.State.String(),
		Mode:       s.Mode.String(),
		Slides:     make([]CarouselSlide, 0, len(s.Carousel)),
		Categories: make([]FilterOption, 0, len(s.Categories)),
		Prices:     make([]FilterOption, 0, len(Prices)),
		CartCount:  c.cart.Len(),
	}

	for _, item := range s.Carousel {
		v.Slides = append(v.Slides, CarouselSlide{ID: item.ID, ImageURL: c.svc.CarouselImageURL(item.ID)})
	}
	if len(v.Slides) == 0 {
		v.Banner = BannerImage
	}

	for _, cat := range s.Categories {
		v.Categories = append(v.Categories, FilterOption{ID: cat.ID, Name: cat.Name, Selected: s.Filters.HasCategory(cat.ID)})
	}
	selected, hasPrice := s.Filters.Price()
	for _, p := range Prices {
		v.Prices = append(v.Prices, FilterOption{ID: p.ID, Name: p.Name, Selected: hasPrice && selected.ID == p.ID})
	}

	switch s.State {
	case StateLoadingInitial, StateLoadingFiltered:
		v.Placeholders = SkeletonCount
	case StateEmpty:
		v.EmptyMessage = EmptyMessage
	default:
		v.Cards = c.views.Cards(s.Page.Products, c.cart.Entries())
	}

	switch {
	case s.State == StateLoadingMore:
		v.ShowLoadMore = true
		v.LoadMoreDisabled = true
		v.LoadMoreLabel = "Loading ..."
	case canLoadMore:
		v.ShowLoadMore = true
		v.LoadMoreLabel = "Load More"
	}
	return v
}

func (c *Controller) loadFirstPage(ctx context.Context, epoch uint64) {
	products, err := c.svc.ListProducts(ctx, 1)

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		c.log.Debug("discarding superseded first page")
		return
	}
	if err == nil {
		c.page.Page = 1
		c.page.Products = products
		c.owner = ModePaginated
		c.clampLocked()
	}
	c.settleLocked()
	c.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		c.log.Warn("list products failed", zap.Error(err))
		c.notify.Error(MsgProductsFailed)
	}
}

func (c *Controller) runFilter(req filterRequest) {
	c.mu.Lock()
	if req.seq != c.seq || c.base == nil {
		c.mu.Unlock()
		return
	}
	ctx := c.base
	c.inflight.Add(1)
	c.mu.Unlock()
	defer c.inflight.Done()

	var price *product.PriceRange
	if r, ok := req.filters.Price(); ok {
		interval := r.Interval()
		price = &interval
	}

	products, err := c.svc.FilterProducts(ctx, req.filters.CategoryIDs(), price)

	c.mu.Lock()
	if req.seq != c.seq {
		c.mu.Unlock()
		c.log.Debug("discarding stale filter response", zap.Uint64("seq", req.seq))
		return
	}
	if err == nil {
		if products == nil {
			products = []*product.Product{}
		}
		c.page.Products = products
		c.owner = ModeFiltered
	}
	c.settleLocked()
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("filter products failed", zap.Error(err))
		c.notify.Error(MsgFilterFailed)
	}
}

func (c *Controller) loadMoreGuardLocked() error {
	switch {
	case c.base == nil:
		return ErrNotMounted
	case c.state.Loading():
		return ErrLoadInProgress
	case c.filters.Active():
		return ErrFilteredMode
	case c.owner != ModePaginated:
		return ErrStaleList
	case !c.page.TotalKnown || len(c.page.Products) >= c.page.Total:
		return ErrNoMorePages
	}
	return nil
}

// clampLocked keeps the paginated list within the known total.
func (c *Controller) clampLocked() {
	if c.owner != ModePaginated || !c.page.TotalKnown {
		return
	}
	if len(c.page.Products) > c.page.Total {
		c.page.Products = c.page.Products[:c.page.Total]
	}
}

// settleLocked clears any loading state. The list it inspects is the
// fetched one on success and the untouched previous one on failure.
func (c *Controller) settleLocked() {
	if !c.state.Loading() {
		return
	}
	if len(c.page.Products) > 0 {
		c.state = StateLoaded
	} else {
		c.state = StateEmpty
	}
}

func modeOf(f FilterState) Mode {
	if f.Active() {
		return ModeFiltered
	}
	return ModePaginated
}
