package rest

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/application"
	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const defaultFetchTimeout = 30 * time.Second

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var sectionLabels = map[string]string{
	domain.SectionHome:     "Inicio",
	domain.SectionAbout:    "Nosotros",
	domain.SectionServices: "Servicios",
	domain.SectionNews:     "Noticias",
	domain.SectionContact:  "Contacto",
}

type SiteConfig struct {
	Source   domain.ContentSource
	Resolver *application.MediaResolver
	Gallery  application.Options
	// Contact may be nil, in which case the contact form is rejected.
	Contact  *application.ContactService
	Sections map[string]*application.SectionContent

	SessionTTL   time.Duration
	FetchTimeout time.Duration
	// StaticDir serves assets from disk instead of the built-in ones.
	StaticDir string
}

// Site serves the gallery pages. Each visitor gets their own page state,
// kept in a session.
type Site struct {
	source       domain.ContentSource
	resolver     *application.MediaResolver
	opts         application.Options
	contact      *application.ContactService
	sections     map[string]*application.SectionContent
	fetchTimeout time.Duration
	staticDir    string

	sessions *SessionRegistry
}

func NewSite(cfg SiteConfig) *Site {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.Sections == nil {
		cfg.Sections = map[string]*application.SectionContent{}
	}

	s := &Site{
		source:       cfg.Source,
		resolver:     cfg.Resolver,
		opts:         cfg.Gallery,
		contact:      cfg.Contact,
		sections:     cfg.Sections,
		fetchTimeout: cfg.FetchTimeout,
		staticDir:    cfg.StaticDir,
	}
	s.sessions = NewSessionRegistry(cfg.SessionTTL, s.newSession)
	return s
}

// Close stops background session cleanup.
func (s *Site) Close() error {
	return s.sessions.Close()
}

func (s *Site) newController(view domain.View) *application.Controller {
	return application.NewController(s.source, s.resolver, view, s.opts)
}

func (s *Site) newSession(id string) *session {
	doc := application.NewDocument()
	return &session{
		id:         id,
		doc:        doc,
		controller: s.newController(doc),
	}
}

// session returns the visitor's session. A new session loads its first
// gallery page before it is used.
func (s *Site) session(c *gin.Context) *session {
	sess, created := s.sessions.Lookup(c)
	if created {
		ctx, cancel := s.fetchContext(c)
		defer cancel()
		outcome := sess.controller.Load(ctx)
		log.Debug().Str("session", sess.id).Stringer("outcome", outcome).Msg("Started session")
	}
	return sess
}

// fetchContext bounds a fetch cycle. It outlives a disconnecting client so
// the session's page is never left half rendered.
func (s *Site) fetchContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(c.Request.Context()), s.fetchTimeout)
}

func NewApi(router *gin.Engine, site *Site) {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"label": func(name string) string { return sectionLabels[name] },
	}).ParseFS(templateFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	if site.staticDir != "" {
		router.Static("/static", site.staticDir)
	} else {
		assets, err := fs.Sub(staticFS, "static")
		if err != nil {
			panic(err)
		}
		router.StaticFS("/static", http.FS(assets))
	}

	router.GET("/", site.GetIndex)
	router.GET("/healthz", GetHealth)
	router.GET("/section/:name", site.GetSection)

	galleryActions := router.Group("gallery")
	{
		galleryActions.POST("/next", site.PostNextPage)
		galleryActions.POST("/prev", site.PostPrevPage)
	}

	search := router.Group("search")
	{
		search.POST("", site.PostSearch)
		search.POST("/clear", site.PostClearSearch)
		search.GET("/open", site.GetOpenSearch)
		search.GET("/close", site.GetCloseSearch)
	}

	router.POST("/contact", site.PostContact)

	v1 := router.Group("api/v1")
	{
		v1.GET("/gallery", site.GetGalleryPage)
		v1.POST("/contact", site.PostContactJSON)
	}
}

func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
