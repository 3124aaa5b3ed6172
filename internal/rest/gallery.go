package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dfryer1193/wpgallery/api"
	"github.com/dfryer1193/wpgallery/gallery/application"
	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/gin-gonic/gin"
)

const (
	galleryAnchor     = "gallery"
	emptySearchNotice = "Please enter a search query"
)

func (s *Site) PostNextPage(c *gin.Context) {
	sess := s.session(c)
	ctx, cancel := s.fetchContext(c)
	defer cancel()

	sess.controller.NextPage(ctx)
	redirectHome(c, galleryAnchor)
}

func (s *Site) PostPrevPage(c *gin.Context) {
	sess := s.session(c)
	ctx, cancel := s.fetchContext(c)
	defer cancel()

	sess.controller.PrevPage(ctx)
	redirectHome(c, galleryAnchor)
}

// PostSearch filters the gallery by the submitted query and shows the news
// section. A blank query keeps the search modal open with a notice.
func (s *Site) PostSearch(c *gin.Context) {
	sess := s.session(c)
	ctx, cancel := s.fetchContext(c)
	defer cancel()

	if _, err := sess.controller.Search(ctx, c.PostForm("q")); err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			sess.controller.OpenSearch()
			sess.setNotice(emptySearchNotice, true)
			redirectHome(c, "")
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	sess.doc.ShowSection(domain.SectionNews)
	redirectHome(c, galleryAnchor)
}

func (s *Site) PostClearSearch(c *gin.Context) {
	sess := s.session(c)
	ctx, cancel := s.fetchContext(c)
	defer cancel()

	sess.controller.ClearSearch(ctx)
	redirectHome(c, galleryAnchor)
}

func (s *Site) GetOpenSearch(c *gin.Context) {
	s.session(c).controller.OpenSearch()
	redirectHome(c, "")
}

func (s *Site) GetCloseSearch(c *gin.Context) {
	s.session(c).controller.CloseSearch()
	redirectHome(c, "")
}

// GetGalleryPage renders one gallery page as JSON without touching any
// visitor session.
func (s *Site) GetGalleryPage(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, api.Error{Error: "page must be a positive integer"})
			return
		}
		page = n
	}
	query := c.Query("search")

	doc := application.NewDocument()
	ctx, cancel := s.fetchContext(c)
	defer cancel()

	outcome := s.newController(doc).FetchPosts(ctx, page, query)
	resp := NewGalleryPage(page, outcome, doc.Snapshot())

	status := http.StatusOK
	if outcome == application.OutcomeError {
		status = http.StatusBadGateway
	}
	c.JSON(status, resp)
}

// NewGalleryPage converts a rendered document into its JSON form.
func NewGalleryPage(page int, outcome application.Outcome, snap application.Snapshot) api.GalleryPage {
	out := api.GalleryPage{
		Page:         page,
		Query:        snap.SearchQuery,
		Status:       outcome.String(),
		Items:        make([]api.GalleryItem, 0, len(snap.Items)),
		Message:      snap.Message,
		PrevDisabled: snap.PrevDisabled,
		NextDisabled: snap.NextDisabled,
	}
	for _, item := range snap.Items {
		out.Items = append(out.Items, api.GalleryItem{
			Title: item.Title,
			Link:  item.Link,
			Image: item.Image,
		})
	}
	return out
}
