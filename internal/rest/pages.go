package rest

import (
	"errors"
	"net/http"

	"github.com/dfryer1193/wpgallery/gallery/application"
	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type pageData struct {
	Page     application.Snapshot
	Sections map[string]*application.SectionContent
	Menu     []string
	Notice   *notice
}

func (s *Site) render(c *gin.Context, status int, sess *session) {
	c.HTML(status, "index.html", pageData{
		Page:     sess.doc.Snapshot(),
		Sections: s.sections,
		Menu:     domain.Sections,
		Notice:   sess.takeNotice(),
	})
}

// redirectHome sends the visitor back to the page after an action.
func redirectHome(c *gin.Context, anchor string) {
	target := "/"
	if anchor != "" {
		target += "#" + anchor
	}
	c.Redirect(http.StatusSeeOther, target)
}

// GetIndex renders the visitor's page, switching to ?section= first if given.
func (s *Site) GetIndex(c *gin.Context) {
	sess := s.session(c)

	status := http.StatusOK
	if name := c.Query("section"); name != "" {
		if err := s.showSection(c, sess, name); err != nil {
			status = http.StatusNotFound
		}
	}
	s.render(c, status, sess)
}

func (s *Site) GetSection(c *gin.Context) {
	sess := s.session(c)

	if err := s.showSection(c, sess, c.Param("name")); err != nil {
		s.render(c, http.StatusNotFound, sess)
		return
	}
	redirectHome(c, "")
}

func (s *Site) showSection(c *gin.Context, sess *session, name string) error {
	ctx, cancel := s.fetchContext(c)
	defer cancel()

	outcome, err := sess.controller.ShowSection(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSection) {
			log.Debug().Str("section", name).Msg("Unknown section requested")
		}
		return err
	}
	if outcome != application.OutcomeNoop {
		log.Debug().Str("session", sess.id).Stringer("outcome", outcome).Msg("Loaded news section")
	}
	return nil
}
